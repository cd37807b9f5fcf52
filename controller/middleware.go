package controller

import (
	"strings"
	"time"

	"github/itish2003/filesearch/logger"

	"github.com/gin-gonic/gin"
)

const APIKeyHeader = "x-api-key"

// CORS allows the browser UI to call the API from another origin.
func CORS(allowedOrigins string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigins)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+APIKeyHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequestLogger logs one line per request. Headers are never logged, so the
// forwarded API key stays out of the log file.
func RequestLogger(log logger.ILogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		details := map[string]interface{}{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}
		if c.Writer.Status() >= 500 {
			log.Error("HTTP", "Request failed", details)
			return
		}
		log.Info("HTTP", "Request handled", details)
	}
}

// apiKeyFrom reads the caller's key. A blank header counts as missing.
func apiKeyFrom(ctx *gin.Context) (string, bool) {
	key := strings.TrimSpace(ctx.GetHeader(APIKeyHeader))
	return key, key != ""
}
