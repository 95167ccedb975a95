package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rowjay/scissors/internal/dto"
	"github.com/rs/zerolog/log"
)

// Recovery logs the panic and answers 500 in the format the caller asked
// for: JSON for API clients, plain text for the browser.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Str("method", c.Request.Method).
			Str("path", c.Request.RequestURI).
			Str("client_ip", c.ClientIP()).
			Interface("panic", recovered).
			Msg("Panic recovered")

		if strings.Contains(c.GetHeader("Accept"), "application/json") {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal server error",
				Message: "An unexpected error occurred",
				Code:    http.StatusInternalServerError,
			})
			return
		}
		c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("Something went wrong. Please reload the page."))
		c.Abort()
	})
}
