package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"devinv/internal/httpx"
)

// RequestIDHeader carries the per-request id in and out
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request an id, honoring one supplied upstream
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs each completed request
func RequestLogger(logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id":  c.GetString("request_id"),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("request completed")
	}
}

// Recovery renders panics as a 500 envelope so an unexpected fault never
// crashes the process. Expected failure modes are typed AppErrors and do
// not reach this handler.
func Recovery(logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithField("request_id", c.GetString("request_id")).
					Errorf("panic recovered: %v", r)
				httpx.Fail(c, http.StatusInternalServerError, fmt.Sprintf("%v", r), "")
				c.Abort()
			}
		}()
		c.Next()
	}
}
