package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware 日志中间件
// 在请求完成后记录一行访问日志，带上认证中间件写入的用户ID
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		userID, _ := GetUserID(c)
		if userID == "" {
			userID = "-"
		}

		log.Printf("[%s] %s %s | Status: %d | Latency: %v | User: %s",
			c.Request.Method,
			path,
			query,
			c.Writer.Status(),
			time.Since(start),
			userID,
		)
	}
}
