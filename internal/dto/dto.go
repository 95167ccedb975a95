package dto

import "encoding/json"

// CreateLinkRequest is the body of POST /api/links.
type CreateLinkRequest struct {
	Alias       string `json:"alias,omitempty"`
	OriginalURL string `json:"originalUrl"`
}

// LinkRecord is a link as the Link Service sends it. Only shortUrl and
// qrcode are guaranteed; the other fields are kept raw and parsed leniently
// so an unexpected encoding never hides the link itself.
type LinkRecord struct {
	ID          json.RawMessage `json:"id"`
	OriginalURL string          `json:"originalUrl"`
	ShortURL    string          `json:"shortUrl"`
	Clicks      json.RawMessage `json:"clicks"`
	CreatedAt   json.RawMessage `json:"createdAt"`
	QRCode      string          `json:"qrcode"`
}

// CreateLinkResponse is the 201 body of POST /api/links.
type CreateLinkResponse struct {
	LinkRecord
}

// ListLinksResponse is the body of GET /api/links.
type ListLinksResponse struct {
	Data       []LinkRecord `json:"data"`
	TotalPages int          `json:"totalPages"`
}

// ServiceErrorResponse is the non-201 body of POST /api/links.
type ServiceErrorResponse struct {
	Message string `json:"message"`
}

// ShortenForm is the composer form posted by the browser.
type ShortenForm struct {
	URL   string `form:"url"`
	Alias string `form:"alias"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}
