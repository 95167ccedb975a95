package view

import (
	"time"

	"github.com/rowjay/scissors/internal/models"
	"github.com/rowjay/scissors/internal/notify"
)

type Mode string

const (
	ModeComposer Mode = "composer"
	ModeResult   Mode = "result"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// State is a point-in-time copy of everything a front-end needs to render.
// Time-dependent parts (toasts, copy labels) are already evaluated.
type State struct {
	Mode      Mode
	URL       string
	Alias     string
	ShortURL  string
	QRCode    string
	CopyLabel string
	// CopiedFor is how long CopyLabel keeps reading "Copied"; zero otherwise.
	CopiedFor time.Duration
	Loading   bool
	Theme     Theme
	Recent    []RecentItem
	History   HistoryState
	Toasts    []notify.Toast
}

type RecentItem struct {
	models.Link
	Copied    bool
	CopiedFor time.Duration
}

type HistoryState struct {
	Rows        []models.Link
	CurrentPage int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
	Loading     bool
}

func (s State) InComposer() bool { return s.Mode == ModeComposer }

func (s State) InResult() bool { return s.Mode == ModeResult }
