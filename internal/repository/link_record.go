package repository

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rowjay/scissors/internal/dto"
	"github.com/rowjay/scissors/internal/models"
	"github.com/rs/zerolog/log"
)

func toLink(rec dto.LinkRecord) models.Link {
	return models.Link{
		ID:          parseID(rec.ID),
		OriginalURL: rec.OriginalURL,
		ShortURL:    rec.ShortURL,
		Clicks:      parseClicks(rec.Clicks),
		CreatedAt:   parseLinkTime(rec.CreatedAt),
		QRCode:      rec.QRCode,
	}
}

// parseID accepts string and numeric ids.
func parseID(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	log.Warn().RawJSON("id", raw).Msg("Ignoring unreadable link id")
	return ""
}

// parseClicks accepts numbers and numeric strings.
func parseClicks(raw json.RawMessage) int64 {
	if isNull(raw) {
		return 0
	}
	text := string(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		text = s
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int64(f)
	}
	log.Warn().RawJSON("clicks", raw).Msg("Ignoring unreadable click count")
	return 0
}

// parseLinkTime reads RFC 3339 and PocketBase style ("2006-01-02 15:04:05.000Z")
// timestamps as well as unix seconds or milliseconds. Anything else becomes
// the zero time.
func parseLinkTime(raw json.RawMessage) time.Time {
	if isNull(raw) {
		return time.Time{}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return time.Time{}
		}
		t, err := time.Parse(time.RFC3339Nano, strings.Replace(s, " ", "T", 1))
		if err != nil {
			log.Warn().Err(err).Str("time", s).Msg("Failed to parse link timestamp")
			return time.Time{}
		}
		return t
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if v, err := n.Int64(); err == nil {
			if v > 1e12 {
				return time.UnixMilli(v).UTC()
			}
			return time.Unix(v, 0).UTC()
		}
	}

	log.Warn().RawJSON("time", raw).Msg("Failed to parse link timestamp")
	return time.Time{}
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
