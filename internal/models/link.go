package models

import (
	"time"
)

// Link is a short link as the Link Service reports it. The client never
// mutates one; updated click counts arrive by re-fetching.
type Link struct {
	ID          string    `json:"id"`
	OriginalURL string    `json:"originalUrl"`
	ShortURL    string    `json:"shortUrl"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"createdAt"`
	QRCode      string    `json:"qrcode"`
}

type LinkPage struct {
	Data       []Link `json:"data"`
	TotalPages int    `json:"totalPages"`
}

// Find returns the link with the given id from the page.
func (p *LinkPage) Find(id string) (Link, bool) {
	if p == nil {
		return Link{}, false
	}
	for _, link := range p.Data {
		if link.ID == id {
			return link, true
		}
	}
	return Link{}, false
}

// Head returns at most n links from the start of the page.
func (p *LinkPage) Head(n int) []Link {
	if p == nil || n <= 0 {
		return nil
	}
	if n > len(p.Data) {
		n = len(p.Data)
	}
	out := make([]Link, n)
	copy(out, p.Data[:n])
	return out
}
