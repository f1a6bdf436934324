package middleware

import (
	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/utils"
)

const ClientIPKey = "client_ip"

// ClientIP set IP thật của client vào gin context, dùng bởi Logger và RateLimit
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ClientIPKey, utils.ExtractClientIP(c))
		c.Next()
	}
}

func clientIPOf(c *gin.Context) string {
	if ip := c.GetString(ClientIPKey); ip != "" {
		return ip
	}
	return utils.ExtractClientIP(c)
}
