package session

import (
	"context"
	"sync"
)

// BrowserClipboard cannot reach the user's clipboard itself. It holds the
// text until the next page render hands it to navigator.clipboard.
type BrowserClipboard struct {
	mu      sync.Mutex
	pending string
}

func (b *BrowserClipboard) WriteText(_ context.Context, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = text
	return nil
}

// Take returns the pending text once and clears it.
func (b *BrowserClipboard) Take() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	text := b.pending
	b.pending = ""
	return text
}
