package view

import (
	"context"
	"errors"
	"testing"
	"time"

	serviceErrors "github.com/rowjay/scissors/internal/errors"
	"github.com/rowjay/scissors/internal/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshFillsRecentAndFirstHistoryPage(t *testing.T) {
	tests := []struct {
		name        string
		recentCount int
		want        []string
	}{
		{"Compact layout", 2, []string{"p1-0", "p1-1"}},
		{"Wide layout", 4, []string{"p1-0", "p1-1", "p1-2", "p1-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := newFakeLinks(3)
			ctrl := NewController(links, qrcode.NewResolver(nil, 0), &fakeClipboard{}, Options{RecentCount: tt.recentCount})

			require.NoError(t, ctrl.Refresh(context.Background()))

			s := ctrl.Snapshot()
			ids := make([]string, len(s.Recent))
			for i, item := range s.Recent {
				ids[i] = item.ID
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, 3, s.History.TotalPages)
			assert.Len(t, s.History.Rows, 5)
			assert.False(t, s.Loading)
		})
	}
}

func TestRefreshLeavesOtherHistoryPageAlone(t *testing.T) {
	h := newHarness(t, 3)
	ctx := context.Background()
	require.NoError(t, h.ctrl.OpenHistory(ctx))
	require.NoError(t, h.ctrl.NextPage(ctx))

	require.NoError(t, h.ctrl.Refresh(ctx))

	s := h.ctrl.Snapshot().History
	assert.Equal(t, 2, s.CurrentPage)
	assert.Equal(t, "p2-0", s.Rows[0].ID)
}

func TestRefreshFailureClearsLoading(t *testing.T) {
	h := newHarness(t, 3)
	h.links.pageErr[1] = serviceErrors.NewDecodeError("repository.List", "failed to decode response", errors.New("bad json"))

	require.Error(t, h.ctrl.Refresh(context.Background()))

	s := h.ctrl.Snapshot()
	assert.False(t, s.Loading)
	assert.Empty(t, s.Recent)
	assert.Empty(t, s.Toasts)
}

func TestCopyRecent(t *testing.T) {
	h := newHarness(t, 1)
	ctx := context.Background()
	require.NoError(t, h.ctrl.Refresh(ctx))

	require.NoError(t, h.ctrl.CopyRecent(ctx, "p1-1"))
	assert.Equal(t, []string{"https://s.example/p1-1"}, h.clipboard.texts)

	s := h.ctrl.Snapshot()
	assert.False(t, s.Recent[0].Copied)
	assert.True(t, s.Recent[1].Copied)
	assert.Equal(t, 1500*time.Millisecond, s.Recent[1].CopiedFor)
	require.Len(t, s.Toasts, 1)
	assert.Equal(t, "Copied to clipboard", s.Toasts[0].Message)

	h.clock.Advance(1500 * time.Millisecond)
	s = h.ctrl.Snapshot()
	assert.False(t, s.Recent[1].Copied)
	assert.Zero(t, s.Recent[1].CopiedFor)
	assert.Empty(t, s.Toasts)
}

func TestCopyRecentFailures(t *testing.T) {
	h := newHarness(t, 1)
	ctx := context.Background()
	require.NoError(t, h.ctrl.Refresh(ctx))

	err := h.ctrl.CopyRecent(ctx, "p1-4")
	assert.Equal(t, serviceErrors.ErrorCodeNotFound, serviceErrors.CodeOf(err), "only the summary items can be copied")

	h.clipboard.err = errors.New("denied")
	err = h.ctrl.CopyRecent(ctx, "p1-0")
	assert.Equal(t, serviceErrors.ErrorCodeClipboard, serviceErrors.CodeOf(err))
	assert.Empty(t, h.ctrl.Snapshot().Toasts)
}
