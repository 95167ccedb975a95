package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/rowjay/scissors/internal/middleware"
)

func NewRouter(h *ViewHandler, tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", h.Health)

	pages := r.Group("/")
	pages.Use(h.Session())
	{
		pages.GET("/", h.Index)
		pages.GET("/history", h.History)
	}

	actions := r.Group("/")
	actions.Use(h.RequireSession())
	{
		actions.POST("/shorten", h.Shorten)
		actions.POST("/another", h.CreateAnother)
		actions.POST("/copy", h.Copy)
		actions.POST("/recent/:id/copy", h.CopyRecent)
		actions.GET("/qrcode", h.DownloadQR)
		actions.POST("/theme", h.ToggleTheme)
		actions.POST("/toasts/:id/dismiss", h.DismissToast)

		actions.POST("/history/next", h.NextPage)
		actions.POST("/history/prev", h.PreviousPage)
		actions.GET("/history/:id/qrcode", h.DownloadHistoryQR)
	}

	return r
}
