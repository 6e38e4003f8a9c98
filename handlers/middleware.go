package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID stamps every request with a short correlation id (stored in the
// gin context as "request_id") and, once the request has been handled, logs
// its method, path, status and duration prefixed with that id. The
// key-exchange handlers' own log lines do not carry the id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()[:8]
		c.Set("request_id", id)

		start := time.Now()
		c.Next()

		log.Printf("[%s] %s %s -> %d (%s)", id, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}
