package middleware

import (
	"net/http"

	"alertwatch/internal/api/constants"
	"alertwatch/internal/api/dto/common"
	"alertwatch/internal/models"

	"github.com/gin-gonic/gin"
)

// ResolutionFromContext returns the role resolution stored by RequireAuth.
func ResolutionFromContext(c *gin.Context) (*models.RoleResolution, bool) {
	val, exists := c.Get(constants.ContextKeyResolution)
	if !exists {
		return nil, false
	}
	res, ok := val.(*models.RoleResolution)
	return res, ok
}

// PrincipalFromContext returns the verified identity stored by RequireAuth.
func PrincipalFromContext(c *gin.Context) (*models.Principal, bool) {
	val, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return nil, false
	}
	p, ok := val.(*models.Principal)
	return p, ok
}

// RequireAdmin allows admins and the superadmin through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := ResolutionFromContext(c)
		if !ok {
			response := common.NewErrorResponse(common.ErrCodeUnauthorized, "Role not resolved for request", nil)
			c.JSON(http.StatusUnauthorized, response)
			c.Abort()
			return
		}

		if !res.IsAdmin {
			response := common.NewErrorResponse(common.ErrCodeForbidden, "Admin access required", nil)
			c.JSON(http.StatusForbidden, response)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSuperAdmin allows only the superadmin through.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := ResolutionFromContext(c)
		if !ok {
			response := common.NewErrorResponse(common.ErrCodeUnauthorized, "Role not resolved for request", nil)
			c.JSON(http.StatusUnauthorized, response)
			c.Abort()
			return
		}

		if !res.IsSuperAdmin {
			response := common.NewErrorResponse(common.ErrCodeForbidden, "Superadmin access required", nil)
			c.JSON(http.StatusForbidden, response)
			c.Abort()
			return
		}

		c.Next()
	}
}
