package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SessionIDKey is where the session middleware leaves the session id for
// request logging.
const SessionIDKey = "session_id"

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event = event.
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status_code", status).
			Dur("latency", time.Since(start)).
			Str("user_agent", c.Request.UserAgent())

		if id := c.GetString(SessionIDKey); id != "" {
			event = event.Str("session_id", id)
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny).String(); errs != "" {
			event = event.Str("error", errs)
		}

		event.Msg("HTTP Request")
	}
}
