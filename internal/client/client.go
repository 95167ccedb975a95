package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rowjay/scissors/internal/constants"
	"github.com/rs/zerolog/log"
)

// LinkServiceClient is the shared HTTP plumbing for talking to the Link
// Service. Timeouts are applied per call through the request context.
type LinkServiceClient struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

func New(baseURL string, timeout time.Duration) *LinkServiceClient {
	if timeout <= 0 {
		timeout = constants.RequestTimeout
	}
	return &LinkServiceClient{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		HTTPClient:     &http.Client{},
		RequestTimeout: timeout,
	}
}

// Initialize builds the client and checks once that the Link Service answers.
// An unreachable service is only a warning: the UI still starts and every
// later call fails on its own.
func Initialize(ctx context.Context, baseURL string, timeout time.Duration) *LinkServiceClient {
	log.Info().Str("url", baseURL).Msg("Initializing Link Service client")

	c := New(baseURL, timeout)
	if err := c.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("Could not reach the Link Service - make sure it's running")
		return c
	}

	log.Info().Msg("Successfully connected to the Link Service")
	return c
}

func (c *LinkServiceClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(constants.LinksPath), nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// URL joins path onto the service base URL.
func (c *LinkServiceClient) URL(path string) string {
	return c.BaseURL + path
}
