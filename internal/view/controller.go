// Package view holds the link shortener's view state and the transitions
// between its two modes, composer and result, together with the history
// panel and the recent-links summary.
//
// A Controller is front-end agnostic: the web server keeps one per browser
// session and the terminal client keeps one per process. Its lock is never
// held across a call to the Link Service.
package view

import (
	"context"
	"sync"
	"time"

	"github.com/rowjay/scissors/internal/constants"
	serviceErrors "github.com/rowjay/scissors/internal/errors"
	"github.com/rowjay/scissors/internal/models"
	"github.com/rowjay/scissors/internal/notify"
	"github.com/rowjay/scissors/internal/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Sink receives a downloaded file.
type Sink interface {
	Save(ctx context.Context, name string, data []byte) error
}

type QRResolver interface {
	Resolve(ctx context.Context, src string) ([]byte, error)
}

type Options struct {
	RecentCount        int
	CopyConfirmDelay   time.Duration
	DownloadToastDelay time.Duration
	ErrorToastDelay    time.Duration
	Theme              Theme
	Clock              notify.Clock
	Logger             *zerolog.Logger
}

func (o *Options) setDefaults() {
	if o.RecentCount <= 0 {
		o.RecentCount = constants.DefaultRecentCount
	}
	if o.CopyConfirmDelay <= 0 {
		o.CopyConfirmDelay = constants.CopyConfirmDelay
	}
	if o.DownloadToastDelay <= 0 {
		o.DownloadToastDelay = constants.DownloadToastDelay
	}
	if o.ErrorToastDelay <= 0 {
		o.ErrorToastDelay = constants.ErrorToastDelay
	}
	if o.Theme == "" {
		o.Theme = ThemeLight
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
}

type Controller struct {
	links     services.LinkService
	qr        QRResolver
	clipboard Clipboard
	toasts    *notify.Center
	opts      Options
	logger    zerolog.Logger

	mu          sync.Mutex
	mode        Mode
	url         string
	alias       string
	shortURL    string
	qrcode      string
	copiedUntil time.Time
	loading     bool
	theme       Theme

	recent            []models.Link
	recentCopiedUntil map[string]time.Time

	history        []models.Link
	currentPage    int
	totalPages     int
	historyLoading bool
	// historyFresh is set when a page turn has just loaded the rows for
	// currentPage; ShowHistory consumes it instead of fetching again.
	historyFresh bool
}

func NewController(links services.LinkService, qr QRResolver, clipboard Clipboard, opts Options) *Controller {
	opts.setDefaults()

	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Controller{
		links:             links,
		qr:                qr,
		clipboard:         clipboard,
		toasts:            notify.NewCenter(opts.Clock),
		opts:              opts,
		logger:            logger,
		mode:              ModeComposer,
		loading:           true,
		theme:             opts.Theme,
		recentCopiedUntil: make(map[string]time.Time),
		currentPage:       constants.FirstPage,
	}
}

func (c *Controller) SetURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeComposer {
		c.url = url
	}
}

func (c *Controller) SetAlias(alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeComposer {
		c.alias = alias
	}
}

// Submit asks the Link Service for a short link built from the composer
// inputs. On success the controller switches to result mode and refreshes the
// recent list. A rejection stays in composer mode with the inputs kept and the
// service's message shown; transport failures are only logged. Nothing is
// retried.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.mode != ModeComposer {
		c.mu.Unlock()
		return nil
	}
	url, alias := c.url, c.alias
	c.mu.Unlock()

	link, err := c.links.Shorten(ctx, url, alias)
	if err != nil {
		code := serviceErrors.CodeOf(err).String()
		if serviceErrors.IsUserFacing(err) {
			c.logger.Warn().Err(err).Str("code", code).Int("status", serviceErrors.StatusOf(err)).Msg("Short link not created")
			c.toasts.Error(serviceErrors.MessageOf(err), c.opts.ErrorToastDelay)
		} else {
			c.logger.Error().Err(err).Str("code", code).Msg("Failed to create short link")
		}
		return err
	}

	c.mu.Lock()
	c.shortURL = link.ShortURL
	c.qrcode = link.QRCode
	c.copiedUntil = time.Time{}
	c.mode = ModeResult
	c.mu.Unlock()

	c.logger.Info().Str("short_url", link.ShortURL).Msg("Short link ready")

	_ = c.Refresh(ctx)
	return nil
}

// CreateAnother leaves result mode and clears every transient field.
func (c *Controller) CreateAnother() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.url = ""
	c.alias = ""
	c.shortURL = ""
	c.qrcode = ""
	c.copiedUntil = time.Time{}
	c.mode = ModeComposer
}

// Copy writes the current short URL to the clipboard. The copy label reads
// "Copied" until CopyConfirmDelay has passed.
func (c *Controller) Copy(ctx context.Context) error {
	c.mu.Lock()
	text := c.shortURL
	c.mu.Unlock()

	if text == "" {
		return serviceErrors.NewNotFoundError("view.Copy", "no short URL to copy")
	}

	if err := c.clipboard.WriteText(ctx, text); err != nil {
		c.logger.Error().Err(err).Msg("Failed to copy text")
		return serviceErrors.NewClipboardError("view.Copy", err)
	}

	c.mu.Lock()
	c.copiedUntil = c.opts.Clock().Add(c.opts.CopyConfirmDelay)
	c.mu.Unlock()
	return nil
}

// DownloadQR resolves src and hands the image to sink as qrcode.png.
func (c *Controller) DownloadQR(ctx context.Context, src string, sink Sink) error {
	data, err := c.qr.Resolve(ctx, src)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to resolve QR code")
		return err
	}

	if err := sink.Save(ctx, constants.QRCodeFileName, data); err != nil {
		c.logger.Error().Err(err).Msg("Failed to save QR code")
		return serviceErrors.NewInternalError("view.DownloadQR", "failed to save QR code", err)
	}

	c.toasts.Info(constants.QRCodeDownloaded, c.opts.DownloadToastDelay)
	return nil
}

// DownloadResultQR downloads the QR code of the link shown in result mode.
func (c *Controller) DownloadResultQR(ctx context.Context, sink Sink) error {
	c.mu.Lock()
	src := c.qrcode
	c.mu.Unlock()

	if src == "" {
		return serviceErrors.NewNotFoundError("view.DownloadResultQR", "no QR code to download")
	}
	return c.DownloadQR(ctx, src, sink)
}

// DismissToast closes a notification before its delay runs out.
func (c *Controller) DismissToast(id uint64) {
	c.toasts.Dismiss(id)
}

func (c *Controller) ToggleTheme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = c.theme.Toggled()
	return c.theme
}

// Snapshot evaluates the current state at the controller's clock.
func (c *Controller) Snapshot() State {
	toasts := c.toasts.Active()

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.Clock()

	copyLabel := constants.CopyLabel
	var copiedFor time.Duration
	if now.Before(c.copiedUntil) {
		copyLabel = constants.CopiedLabel
		copiedFor = c.copiedUntil.Sub(now)
	}

	recent := make([]RecentItem, len(c.recent))
	for i, link := range c.recent {
		item := RecentItem{Link: link}
		if until := c.recentCopiedUntil[link.ID]; now.Before(until) {
			item.Copied = true
			item.CopiedFor = until.Sub(now)
		}
		recent[i] = item
	}

	rows := make([]models.Link, len(c.history))
	copy(rows, c.history)

	return State{
		Mode:      c.mode,
		URL:       c.url,
		Alias:     c.alias,
		ShortURL:  c.shortURL,
		QRCode:    c.qrcode,
		CopyLabel: copyLabel,
		CopiedFor: copiedFor,
		Loading:   c.loading,
		Theme:     c.theme,
		Recent:    recent,
		History: HistoryState{
			Rows:        rows,
			CurrentPage: c.currentPage,
			TotalPages:  c.totalPages,
			HasNext:     c.currentPage < c.totalPages,
			HasPrevious: c.currentPage > constants.FirstPage,
			Loading:     c.historyLoading,
		},
		Toasts: toasts,
	}
}
