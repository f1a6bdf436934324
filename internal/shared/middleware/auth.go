package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/jwt"
)

const UserIDKey = "userID"

// AuthMiddleware - Middleware xác thực JWT access token
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, 401, "UNAUTHORIZED", "missing authorization header")
			return
		}

		// 2. Extract token từ "Bearer <token>"
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Abort(c, 401, "UNAUTHORIZED", "invalid authorization header format")
			return
		}

		// 3. Verify và parse JWT
		claims, err := manager.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			response.Abort(c, 401, "UNAUTHORIZED", "invalid token")
			return
		}

		// 4. Caller identity cho service layer
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// GetUserID trả về user id đã được AuthMiddleware set
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(UserIDKey)
	return userID, userID != ""
}
