package handlers

import (
	"errors"
	"net/http"

	"alertwatch/internal/api/dto/common"
	"alertwatch/internal/config/firebase"
	"alertwatch/internal/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if firebase.GetFirestoreClient() == nil {
		utils.HandleAPIError(c, errors.New("firestore client not initialized"), http.StatusInternalServerError, common.ErrCodeInternalServer, "Datastore not initialized")
		return
	}
	c.JSON(http.StatusOK, common.NewMessageResponse("Health check OK"))
}
