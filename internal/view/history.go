package view

import (
	"context"

	"github.com/rowjay/scissors/internal/constants"
	serviceErrors "github.com/rowjay/scissors/internal/errors"
	"github.com/rowjay/scissors/internal/models"
)

// HasNext reports whether a page after the current one exists.
func (c *Controller) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage < c.totalPages
}

// HasPrevious reports whether a page before the current one exists.
func (c *Controller) HasPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage > constants.FirstPage
}

func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage
}

// OpenHistory loads the page the panel is currently on.
func (c *Controller) OpenHistory(ctx context.Context) error {
	c.mu.Lock()
	page := c.currentPage
	c.historyLoading = true
	c.historyFresh = false
	c.mu.Unlock()

	return c.loadHistory(ctx, page)
}

// ShowHistory displays the panel. Rows a page turn has just loaded are shown
// as they are; otherwise it behaves like OpenHistory.
func (c *Controller) ShowHistory(ctx context.Context) error {
	c.mu.Lock()
	fresh := c.historyFresh
	c.historyFresh = false
	c.mu.Unlock()

	if fresh {
		return nil
	}
	return c.OpenHistory(ctx)
}

// NextPage advances the page counter by one and fetches that page. It does
// nothing when there is no next page.
func (c *Controller) NextPage(ctx context.Context) error {
	return c.turnPage(ctx, 1)
}

// PreviousPage moves the page counter back by one and fetches that page. It
// does nothing on the first page.
func (c *Controller) PreviousPage(ctx context.Context) error {
	return c.turnPage(ctx, -1)
}

func (c *Controller) turnPage(ctx context.Context, delta int) error {
	c.mu.Lock()
	target := c.currentPage + delta
	if target < constants.FirstPage || (delta > 0 && c.currentPage >= c.totalPages) {
		c.mu.Unlock()
		return nil
	}
	c.currentPage = target
	c.historyLoading = true
	c.historyFresh = false
	c.mu.Unlock()

	if err := c.loadHistory(ctx, target); err != nil {
		return err
	}

	c.mu.Lock()
	c.historyFresh = c.currentPage == target && !c.historyLoading
	c.mu.Unlock()
	return nil
}

// loadHistory fetches page and applies it only if page is still the one the
// panel wants. A slower response for a page the user already left is
// dropped; a failed fetch leaves the previous rows on screen.
func (c *Controller) loadHistory(ctx context.Context, page int) error {
	result, err := c.links.Page(ctx, page)

	c.mu.Lock()
	defer c.mu.Unlock()

	if page != c.currentPage {
		c.logger.Debug().Int("page", page).Int("current_page", c.currentPage).Msg("Discarding superseded history page")
		return nil
	}
	c.historyLoading = false

	if err != nil {
		c.logger.Error().Err(err).Int("page", page).Msg("Failed to load history")
		return err
	}

	c.history = result.Data
	c.totalPages = result.TotalPages
	return nil
}

// DownloadHistoryQR downloads the QR code of a row on the displayed page.
func (c *Controller) DownloadHistoryQR(ctx context.Context, id string, sink Sink) error {
	c.mu.Lock()
	page := models.LinkPage{Data: c.history}
	link, ok := page.Find(id)
	c.mu.Unlock()

	if !ok {
		return serviceErrors.NewNotFoundError("view.DownloadHistoryQR", "link is not on the current page")
	}
	return c.DownloadQR(ctx, link.QRCode, sink)
}
