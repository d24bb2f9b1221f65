package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pawsitivecheck/backend/services/common/auth"
	apperrors "github.com/pawsitivecheck/backend/services/common/errors"
	"github.com/pawsitivecheck/backend/services/common/middleware"
)

// JWTMiddleware verifies the bearer access token and stores the caller's
// identity on the context for the forwarder.
func JWTMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.Abort(c, apperrors.ErrTokenRequired)
			return
		}
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			apperrors.Abort(c, apperrors.ErrInvalidToken)
			return
		}

		claims, err := auth.ParseAndValidateToken(secret, tokenString, "access")
		if err != nil {
			apperrors.Abort(c, apperrors.ErrInvalidToken.Wrap(err))
			return
		}

		c.Set(middleware.UserContextKey, claims.UserID)
		c.Set(middleware.RoleContextKey, claims.Role)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// AdminRoleMiddleware must run after JWTMiddleware.
func AdminRoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !middleware.IsAdmin(c) {
			apperrors.Abort(c, apperrors.ErrAdminRequired)
			return
		}
		c.Next()
	}
}
