package view

import (
	"context"

	"github.com/rowjay/scissors/internal/constants"
	serviceErrors "github.com/rowjay/scissors/internal/errors"
	"github.com/rowjay/scissors/internal/models"
)

// Refresh reloads the first page of links. It feeds the recent summary, the
// page count, and the history rows when the panel is on the first page. The
// initial loading flag clears once the attempt finishes, whatever its outcome.
func (c *Controller) Refresh(ctx context.Context) error {
	result, err := c.links.Page(ctx, constants.FirstPage)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load recent links")
		return err
	}

	c.recent = result.Head(c.opts.RecentCount)
	c.totalPages = result.TotalPages
	if c.currentPage == constants.FirstPage {
		c.history = result.Data
	}

	kept := make(map[string]bool, len(c.recent))
	for _, link := range c.recent {
		kept[link.ID] = true
	}
	for id := range c.recentCopiedUntil {
		if !kept[id] {
			delete(c.recentCopiedUntil, id)
		}
	}
	return nil
}

// CopyRecent copies one recent link's short URL and confirms it both with a
// toast and with that item's own copied flag.
func (c *Controller) CopyRecent(ctx context.Context, id string) error {
	c.mu.Lock()
	page := models.LinkPage{Data: c.recent}
	link, ok := page.Find(id)
	c.mu.Unlock()

	if !ok {
		return serviceErrors.NewNotFoundError("view.CopyRecent", "link is not among the recent links")
	}

	if err := c.clipboard.WriteText(ctx, link.ShortURL); err != nil {
		c.logger.Error().Err(err).Str("id", id).Msg("Failed to copy text")
		return serviceErrors.NewClipboardError("view.CopyRecent", err)
	}

	c.mu.Lock()
	c.recentCopiedUntil[id] = c.opts.Clock().Add(c.opts.CopyConfirmDelay)
	c.mu.Unlock()

	c.toasts.Info(constants.CopiedToClipboard, c.opts.CopyConfirmDelay)
	return nil
}
