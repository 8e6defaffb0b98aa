package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"thooral.backend/pkg/logger"
)

// RequestIDHeader is the header a caller may use to supply its own ID
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware attaches a request ID to the request context and
// echoes it back in the response so clients can correlate log lines.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Header(RequestIDHeader, id)

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
