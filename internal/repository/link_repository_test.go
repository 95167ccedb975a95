package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rowjay/scissors/internal/client"
	"github.com/rowjay/scissors/internal/dto"
	serviceErrors "github.com/rowjay/scissors/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, h http.HandlerFunc) LinkRepository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewLinkRepository(client.New(srv.URL, time.Second))
}

func TestCreate(t *testing.T) {
	var got dto.CreateLinkRequest
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/links", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"1","originalUrl":"https://example.com/long","shortUrl":"https://s.example/abc","qrcode":"data:image/png;base64,AAAA","clicks":0,"extra":true}`))
	})

	link, err := repo.Create(context.Background(), &dto.CreateLinkRequest{Alias: "abc", OriginalURL: "https://example.com/long"})
	require.NoError(t, err)

	assert.Equal(t, "abc", got.Alias)
	assert.Equal(t, "https://example.com/long", got.OriginalURL)
	assert.Equal(t, "https://s.example/abc", link.ShortURL)
	assert.Equal(t, "data:image/png;base64,AAAA", link.QRCode)
}

func TestCreateOmitsEmptyAlias(t *testing.T) {
	var raw map[string]any
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"shortUrl":"https://s.example/x"}`))
	})

	_, err := repo.Create(context.Background(), &dto.CreateLinkRequest{OriginalURL: "https://example.com"})
	require.NoError(t, err)
	assert.NotContains(t, raw, "alias")
}

func TestCreateToleratesOddFields(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantID      string
		wantClicks  int64
		wantCreated time.Time
	}{
		{
			name:        "PocketBase timestamp",
			body:        `{"shortUrl":"https://s.example/abc","qrcode":"data:x","createdAt":"2024-06-01 10:00:00.123Z"}`,
			wantCreated: time.Date(2024, 6, 1, 10, 0, 0, 123000000, time.UTC),
		},
		{
			name:        "RFC 3339 timestamp",
			body:        `{"id":"a1","shortUrl":"https://s.example/abc","qrcode":"data:x","createdAt":"2024-06-01T10:00:00Z"}`,
			wantID:      "a1",
			wantCreated: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:        "Unix millis and numeric id",
			body:        `{"id":42,"shortUrl":"https://s.example/abc","qrcode":"data:x","createdAt":1717236000000}`,
			wantID:      "42",
			wantCreated: time.UnixMilli(1717236000000).UTC(),
		},
		{
			name:       "Clicks as string, unreadable timestamp",
			body:       `{"shortUrl":"https://s.example/abc","qrcode":"data:x","clicks":"12","createdAt":"yesterday"}`,
			wantClicks: 12,
		},
		{
			name: "Object where a value was expected",
			body: `{"id":{"n":1},"shortUrl":"https://s.example/abc","qrcode":"data:x","clicks":true,"createdAt":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(tt.body))
			})

			link, err := repo.Create(context.Background(), &dto.CreateLinkRequest{OriginalURL: "https://example.com"})
			require.NoError(t, err)
			assert.Equal(t, "https://s.example/abc", link.ShortURL)
			assert.Equal(t, "data:x", link.QRCode)
			assert.Equal(t, tt.wantID, link.ID)
			assert.Equal(t, tt.wantClicks, link.Clicks)
			assert.True(t, tt.wantCreated.Equal(link.CreatedAt), "created at %v", link.CreatedAt)
		})
	}
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode serviceErrors.ErrorCode
		wantMsg  string
	}{
		{"Alias taken", http.StatusConflict, `{"message":"Alias already in use"}`, serviceErrors.ErrorCodeRejected, "Alias already in use"},
		{"Bad request", http.StatusBadRequest, `{"message":"Invalid URL"}`, serviceErrors.ErrorCodeRejected, "Invalid URL"},
		{"OK is not created", http.StatusOK, `{"message":"exists"}`, serviceErrors.ErrorCodeRejected, "exists"},
		{"Garbage error body", http.StatusInternalServerError, `<html>`, serviceErrors.ErrorCodeDecode, ""},
		{"Garbage created body", http.StatusCreated, `not json`, serviceErrors.ErrorCodeDecode, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := repo.Create(context.Background(), &dto.CreateLinkRequest{OriginalURL: "https://example.com"})
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, serviceErrors.CodeOf(err))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, serviceErrors.MessageOf(err))
			}
		})
	}
}

func TestCreateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	repo := NewLinkRepository(client.New(srv.URL, time.Second))

	_, err := repo.Create(context.Background(), &dto.CreateLinkRequest{OriginalURL: "https://example.com"})
	assert.Equal(t, serviceErrors.ErrorCodeTransport, serviceErrors.CodeOf(err))
	assert.False(t, serviceErrors.IsUserFacing(err))
}

func TestList(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		wantQuery string
	}{
		{"First page is implicit", 1, ""},
		{"Zero page is implicit", 0, ""},
		{"Third page", 3, "page=3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var query string
			repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
				query = r.URL.RawQuery
				w.Write([]byte(`{"data":[{"id":"a","shortUrl":"https://s.example/a","clicks":7}],"totalPages":3}`))
			})

			page, err := repo.List(context.Background(), tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, 3, page.TotalPages)
			require.Len(t, page.Data, 1)
			assert.Equal(t, int64(7), page.Data[0].Clicks)
		})
	}
}

func TestListKeepsPageWithOddRow(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"shortUrl":"https://s.example/a","createdAt":"2024-06-01 10:00:00.000Z"},{"id":"b","shortUrl":"https://s.example/b","createdAt":"not a time"}],"totalPages":1}`))
	})

	page, err := repo.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "1", page.Data[0].ID)
	assert.Equal(t, 2024, page.Data[0].CreatedAt.Year())
	assert.Equal(t, "b", page.Data[1].ID)
	assert.True(t, page.Data[1].CreatedAt.IsZero())
}

func TestListErrors(t *testing.T) {
	t.Run("Bad status", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := repo.List(context.Background(), 2)
		assert.Equal(t, serviceErrors.ErrorCodeTransport, serviceErrors.CodeOf(err))
	})

	t.Run("Bad JSON", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":`))
		})
		_, err := repo.List(context.Background(), 2)
		assert.Equal(t, serviceErrors.ErrorCodeDecode, serviceErrors.CodeOf(err))
	})
}
