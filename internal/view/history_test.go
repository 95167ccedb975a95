package view

import (
	"context"
	"errors"
	"testing"

	serviceErrors "github.com/rowjay/scissors/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationControls(t *testing.T) {
	h := newHarness(t, 3)
	ctx := context.Background()
	require.NoError(t, h.ctrl.OpenHistory(ctx))

	tests := []struct {
		page         int
		wantPrevious bool
		wantNext     bool
	}{
		{1, false, true},
		{2, true, true},
		{3, true, false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.page, h.ctrl.CurrentPage())
		s := h.ctrl.Snapshot().History
		assert.Equal(t, tt.wantPrevious, s.HasPrevious, "page %d previous", tt.page)
		assert.Equal(t, tt.wantNext, s.HasNext, "page %d next", tt.page)
		assert.Equal(t, tt.wantPrevious, h.ctrl.HasPrevious())
		assert.Equal(t, tt.wantNext, h.ctrl.HasNext())
		if tt.wantNext {
			require.NoError(t, h.ctrl.NextPage(ctx))
		}
	}
}

func TestNextPageFetchesExactlyOnce(t *testing.T) {
	h := newHarness(t, 3)
	ctx := context.Background()
	require.NoError(t, h.ctrl.OpenHistory(ctx))

	require.NoError(t, h.ctrl.NextPage(ctx))

	assert.Equal(t, 2, h.ctrl.CurrentPage())
	assert.Equal(t, []int{1, 2}, h.links.fetchedPages())

	s := h.ctrl.Snapshot().History
	require.NotEmpty(t, s.Rows)
	assert.Equal(t, "p2-0", s.Rows[0].ID)
	assert.False(t, s.Loading)
}

func TestShowHistory(t *testing.T) {
	h := newHarness(t, 3)
	ctx := context.Background()

	require.NoError(t, h.ctrl.ShowHistory(ctx))
	assert.Equal(t, []int{1}, h.links.fetchedPages(), "first display fetches")

	require.NoError(t, h.ctrl.NextPage(ctx))
	require.NoError(t, h.ctrl.ShowHistory(ctx))
	assert.Equal(t, []int{1, 2}, h.links.fetchedPages(), "rows from the page turn are reused")

	require.NoError(t, h.ctrl.ShowHistory(ctx))
	assert.Equal(t, []int{1, 2, 2}, h.links.fetchedPages(), "later displays fetch again")
}

func TestPageChangesOutOfRangeAreNoOps(t *testing.T) {
	h := newHarness(t, 2)
	ctx := context.Background()
	require.NoError(t, h.ctrl.OpenHistory(ctx))

	require.NoError(t, h.ctrl.PreviousPage(ctx))
	assert.Equal(t, 1, h.ctrl.CurrentPage())

	require.NoError(t, h.ctrl.NextPage(ctx))
	require.NoError(t, h.ctrl.NextPage(ctx))
	assert.Equal(t, 2, h.ctrl.CurrentPage())

	require.NoError(t, h.ctrl.PreviousPage(ctx))
	assert.Equal(t, 1, h.ctrl.CurrentPage())
	assert.Equal(t, []int{1, 2, 1}, h.links.fetchedPages())
}

func TestHistoryFetchFailureKeepsRows(t *testing.T) {
	h := newHarness(t, 3)
	ctx := context.Background()
	require.NoError(t, h.ctrl.OpenHistory(ctx))
	h.links.pageErr[2] = serviceErrors.NewTransportError("repository.List", "failed to send request", errors.New("timeout"))

	err := h.ctrl.NextPage(ctx)
	require.Error(t, err)

	s := h.ctrl.Snapshot()
	assert.Equal(t, 2, s.History.CurrentPage)
	require.NotEmpty(t, s.History.Rows)
	assert.Equal(t, "p1-0", s.History.Rows[0].ID, "stale rows stay visible")
	assert.False(t, s.History.Loading)
	assert.Empty(t, s.Toasts)
	assert.Equal(t, []int{1, 2}, h.links.fetchedPages(), "no retry")
}

func TestSupersededPageResponseIsDiscarded(t *testing.T) {
	h := newHarness(t, 5)
	ctx := context.Background()
	require.NoError(t, h.ctrl.OpenHistory(ctx))

	gate := make(chan struct{})
	h.links.mu.Lock()
	h.links.gates[2] = gate
	h.links.started = make(chan int, 4)
	h.links.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- h.ctrl.NextPage(ctx) }()
	require.Equal(t, 2, <-h.links.started)

	assert.True(t, h.ctrl.Snapshot().History.Loading)

	// the user moves on before page 2 answers
	require.NoError(t, h.ctrl.NextPage(ctx))
	require.Equal(t, 3, <-h.links.started)

	close(gate)
	require.NoError(t, <-done)

	s := h.ctrl.Snapshot().History
	assert.Equal(t, 3, s.CurrentPage)
	require.NotEmpty(t, s.Rows)
	assert.Equal(t, "p3-0", s.Rows[0].ID)
	assert.False(t, s.Loading)
}

func TestDownloadHistoryQR(t *testing.T) {
	h := newHarness(t, 2)
	ctx := context.Background()
	require.NoError(t, h.ctrl.OpenHistory(ctx))

	sink := &memorySink{}
	require.NoError(t, h.ctrl.DownloadHistoryQR(ctx, "p1-3", sink))
	assert.Equal(t, "qrcode.png", sink.name)

	err := h.ctrl.DownloadHistoryQR(ctx, "p2-0", &memorySink{})
	assert.Equal(t, serviceErrors.ErrorCodeNotFound, serviceErrors.CodeOf(err))
}
