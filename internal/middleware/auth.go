package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneta/internal/models"
	"moneta/internal/services"
)

// TokenCookie is the name of the cookie carrying the admin session token.
const TokenCookie = "admin_token"

// adminKey is the context key holding the authenticated admin account.
const adminKey = "admin"

// AdminAuth guards admin-only routes. It reads the session cookie, resolves
// the opaque token against the admin token table, and stores the owning admin
// account in the request context. A missing cookie or an unknown token ends
// the request with 401.
func AdminAuth(adminService services.AdminServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(TokenCookie)
		if err != nil || token == "" {
			unauthorized(c)
			return
		}

		adminToken, err := adminService.GetTokenByValue(token)
		if err != nil {
			unauthorized(c)
			return
		}

		admin, err := adminService.GetAdminByID(adminToken.UserID)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(adminKey, admin)
		c.Next()
	}
}

// CurrentAdmin returns the admin account resolved by AdminAuth, if any.
func CurrentAdmin(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(adminKey)
	if !exists {
		return nil, false
	}
	admin, ok := value.(*models.User)
	return admin, ok
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Invalid token or missing",
		},
	})
}
