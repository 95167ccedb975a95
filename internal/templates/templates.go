package templates

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"imageSrc": ImageSrc,
	"millis":   Millis,
}

// Load parses the embedded page templates.
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "*.html")
}

// ImageSrc marks a QR reference as safe for an img src. html/template refuses
// data: URLs on its own, so image data URLs and http(s) URLs are let through
// explicitly and anything else renders as an empty src.
func ImageSrc(src string) template.URL {
	lower := strings.ToLower(strings.TrimSpace(src))
	switch {
	case strings.HasPrefix(lower, "data:image/"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "http://"):
		return template.URL(src)
	default:
		return ""
	}
}

// Millis renders a duration as whole milliseconds for the page's timers.
func Millis(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return d.Milliseconds()
}
