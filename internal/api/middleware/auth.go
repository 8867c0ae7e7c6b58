package middleware

import (
	"net/http"
	"strings"

	"alertwatch/internal/api/constants"
	"alertwatch/internal/api/dto/common"
	"alertwatch/internal/config/firebase"
	"alertwatch/internal/service"

	"github.com/gin-gonic/gin"
)

// RequireAuth verifies the Bearer token, resolves the caller's effective role
// and stores both on the request context.
func RequireAuth(roles *service.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response := common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil)
			c.JSON(http.StatusUnauthorized, response)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response := common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid authorization header format", nil)
			c.JSON(http.StatusUnauthorized, response)
			c.Abort()
			return
		}

		token := parts[1]
		if len(token) < 20 {
			response := common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid token format: token too short", nil)
			c.JSON(http.StatusUnauthorized, response)
			c.Abort()
			return
		}

		principal, err := firebase.VerifyToken(c.Request.Context(), token)
		if err != nil {
			response := common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid token: "+err.Error(), nil)
			c.JSON(http.StatusUnauthorized, response)
			c.Abort()
			return
		}

		resolution := roles.Resolve(c.Request.Context(), principal)

		c.Set(constants.ContextKeyPrincipal, principal)
		c.Set(constants.ContextKeyResolution, resolution)
		c.Set(constants.ContextKeyUserID, principal.UID)
		c.Next()
	}
}
