package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rowjay/scissors/internal/constants"
	"github.com/rowjay/scissors/internal/dto"
	"github.com/rowjay/scissors/internal/middleware"
	"github.com/rowjay/scissors/internal/session"
	"github.com/rowjay/scissors/internal/view"
	"github.com/rs/zerolog/log"
)

const sessionKey = "session"

type pageData struct {
	State       view.State
	HistoryOpen bool
	Clipboard   string
}

// ViewHandler renders the shortener UI. Every handler works on the calling
// browser's own view controller, found through the session cookie.
type ViewHandler struct {
	store        *session.Store
	secureCookie bool
	cookieMaxAge int
}

func NewViewHandler(store *session.Store, secureCookie bool, cookieMaxAge int) *ViewHandler {
	return &ViewHandler{
		store:        store,
		secureCookie: secureCookie,
		cookieMaxAge: cookieMaxAge,
	}
}

// Session attaches the caller's session, creating one (and loading its
// recent links) when the cookie is missing or stale. Only page views use it.
func (h *ViewHandler) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(constants.SessionCookieName)
		sess, created := h.store.Get(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(constants.SessionCookieName, sess.ID, h.cookieMaxAge, "/", "", h.secureCookie, true)
			_ = sess.Controller.Refresh(c.Request.Context())
		}

		c.Set(sessionKey, sess)
		c.Set(middleware.SessionIDKey, sess.ID)
		c.Next()
	}
}

// RequireSession attaches an existing session. Actions arriving without one
// are sent to the home page, which opens a session.
func (h *ViewHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(constants.SessionCookieName)
		sess, ok := h.store.Lookup(id)
		if !ok {
			log.Debug().Str("path", c.Request.URL.Path).Msg("Action without a session")
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Set(middleware.SessionIDKey, sess.ID)
		c.Next()
	}
}

func current(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

func (h *ViewHandler) render(c *gin.Context, historyOpen bool) {
	sess := current(c)
	c.HTML(http.StatusOK, "index.html", pageData{
		State:       sess.Controller.Snapshot(),
		HistoryOpen: historyOpen,
		Clipboard:   sess.Clipboard.Take(),
	})
}

func (h *ViewHandler) Index(c *gin.Context) {
	h.render(c, false)
}

func (h *ViewHandler) Shorten(c *gin.Context) {
	var form dto.ShortenForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn().Err(err).Msg("Invalid shorten form")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	ctrl := current(c).Controller
	ctrl.SetURL(form.URL)
	ctrl.SetAlias(form.Alias)
	_ = ctrl.Submit(c.Request.Context())

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *ViewHandler) CreateAnother(c *gin.Context) {
	current(c).Controller.CreateAnother()
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *ViewHandler) Copy(c *gin.Context) {
	_ = current(c).Controller.Copy(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *ViewHandler) CopyRecent(c *gin.Context) {
	_ = current(c).Controller.CopyRecent(c.Request.Context(), c.Param("id"))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *ViewHandler) DownloadQR(c *gin.Context) {
	ctrl := current(c).Controller
	h.download(c, "/", func(ctx context.Context, sink view.Sink) error {
		return ctrl.DownloadResultQR(ctx, sink)
	})
}

func (h *ViewHandler) History(c *gin.Context) {
	_ = current(c).Controller.ShowHistory(c.Request.Context())
	h.render(c, true)
}

func (h *ViewHandler) NextPage(c *gin.Context) {
	_ = current(c).Controller.NextPage(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/history")
}

func (h *ViewHandler) PreviousPage(c *gin.Context) {
	_ = current(c).Controller.PreviousPage(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/history")
}

func (h *ViewHandler) DownloadHistoryQR(c *gin.Context) {
	ctrl := current(c).Controller
	id := c.Param("id")
	h.download(c, "/history", func(ctx context.Context, sink view.Sink) error {
		return ctrl.DownloadHistoryQR(ctx, id, sink)
	})
}

func (h *ViewHandler) ToggleTheme(c *gin.Context) {
	current(c).Controller.ToggleTheme()
	redirectBack(c)
}

func (h *ViewHandler) DismissToast(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err == nil {
		current(c).Controller.DismissToast(id)
	}
	redirectBack(c)
}

// redirectBack returns to the page named by the form's "return" field, which
// may only be one of the UI's own pages.
func redirectBack(c *gin.Context) {
	switch back := c.PostForm("return"); back {
	case "/", "/history":
		c.Redirect(http.StatusSeeOther, back)
	default:
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func (h *ViewHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// download runs fn with a sink that answers the request with the file as an
// attachment. When fn fails nothing was written and the browser is sent back
// to fallback.
func (h *ViewHandler) download(c *gin.Context, fallback string, fn func(ctx context.Context, sink view.Sink) error) {
	if err := fn(c.Request.Context(), &attachmentSink{c: c}); err != nil {
		c.Redirect(http.StatusSeeOther, fallback)
	}
}
