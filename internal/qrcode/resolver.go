package qrcode

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rowjay/scissors/internal/constants"
	serviceErrors "github.com/rowjay/scissors/internal/errors"
	"github.com/rs/zerolog/log"
)

// Resolver turns the Link Service's QR reference into image bytes. A data
// URL is decoded in process; an http(s) URL is fetched.
type Resolver struct {
	HTTPClient *http.Client
	MaxBytes   int64
}

func NewResolver(httpClient *http.Client, maxBytes int64) *Resolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = constants.MaxQRCodeBytes
	}
	return &Resolver{HTTPClient: httpClient, MaxBytes: maxBytes}
}

func (r *Resolver) Resolve(ctx context.Context, src string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, serviceErrors.NewNotFoundError("qrcode.Resolve", "no QR code to download")
	}

	if strings.HasPrefix(src, "data:") {
		return r.decodeDataURL(src)
	}

	parsed, err := url.Parse(src)
	if err != nil {
		return nil, serviceErrors.NewUnsupportedError("qrcode.Resolve", "malformed QR code reference")
	}
	switch parsed.Scheme {
	case "http", "https":
		return r.fetch(ctx, parsed.String())
	default:
		return nil, serviceErrors.NewUnsupportedError("qrcode.Resolve", fmt.Sprintf("unsupported QR code scheme %q", parsed.Scheme))
	}
}

// decodeDataURL handles "data:[<mediatype>][;base64],<data>".
func (r *Resolver) decodeDataURL(src string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, serviceErrors.NewDecodeError("qrcode.decodeDataURL", "data URL has no payload", nil)
	}

	var data []byte
	if strings.HasSuffix(header, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			decoded, err = base64.RawStdEncoding.DecodeString(payload)
		}
		if err != nil {
			return nil, serviceErrors.NewDecodeError("qrcode.decodeDataURL", "invalid base64 payload", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, serviceErrors.NewDecodeError("qrcode.decodeDataURL", "invalid percent-encoded payload", err)
		}
		data = []byte(unescaped)
	}

	if int64(len(data)) > r.MaxBytes {
		return nil, serviceErrors.NewDecodeError("qrcode.decodeDataURL", "QR code image too large", nil)
	}
	return data, nil
}

func (r *Resolver) fetch(ctx context.Context, src string) ([]byte, error) {
	log.Debug().Str("src", src).Msg("Fetching QR code image")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, serviceErrors.NewInternalError("qrcode.fetch", "failed to create request", err)
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, serviceErrors.NewTransportError("qrcode.fetch", "failed to fetch QR code", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serviceErrors.NewTransportError("qrcode.fetch", "QR code fetch failed", fmt.Errorf("status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.MaxBytes+1))
	if err != nil {
		return nil, serviceErrors.NewTransportError("qrcode.fetch", "failed to read QR code", err)
	}
	if int64(len(data)) > r.MaxBytes {
		return nil, serviceErrors.NewDecodeError("qrcode.fetch", "QR code image too large", nil)
	}
	return data, nil
}
