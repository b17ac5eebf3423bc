package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"aptbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger logs every request and recovers from panics. 5xx responses,
// gin errors and panics are logged at error level.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := requestID(c)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, rid)

		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				log.Error("request_panic",
					append(requestFields(c, start, rid),
						zap.Error(err),
						zap.ByteString("stack", debug.Stack()),
					)...,
				)
				response.Abort(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
				return
			}

			fields := requestFields(c, start, rid)
			switch {
			case len(c.Errors) > 0:
				for _, e := range c.Errors {
					log.Error("request_error", append(fields, zap.Error(e.Err))...)
				}
			case c.Writer.Status() >= http.StatusInternalServerError:
				log.Error("request", fields...)
			default:
				log.Info("request", fields...)
			}
		}()

		c.Next()
	}
}

func requestFields(c *gin.Context, start time.Time, rid string) []zap.Field {
	fields := []zap.Field{
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("query", c.Request.URL.RawQuery),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", rid),
		zap.Duration("latency", time.Since(start)),
	}
	if id, ok := IdentityFrom(c); ok {
		fields = append(fields,
			zap.String("user_id", id.ID),
			zap.String("role", string(id.Role)),
		)
	}
	return fields
}

func requestID(c *gin.Context) string {
	return c.GetHeader(requestIDHeader)
}
