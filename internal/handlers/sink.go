package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// attachmentSink answers the current request with the saved file, which the
// browser turns into a download.
type attachmentSink struct {
	c *gin.Context
}

func (s *attachmentSink) Save(_ context.Context, name string, data []byte) error {
	s.c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	s.c.Data(http.StatusOK, http.DetectContentType(data), data)
	return nil
}
