package constants

import "time"

const (
	LinksPath          = "/api/links"
	FirstPage          = 1
	DefaultRecentCount = 2
	WideRecentCount    = 4
	RequestTimeout     = 30 * time.Second
	CopyConfirmDelay   = 1500 * time.Millisecond
	DownloadToastDelay = 1500 * time.Millisecond
	ErrorToastDelay    = 2 * time.Second
	SessionTTL         = 30 * time.Minute
	SessionSweepEvery  = time.Minute
	MaxQRCodeBytes     = 2 << 20
	QRCodeFileName     = "qrcode.png"
	SessionCookieName  = "scissors_session"
	DefaultPort        = "3000"
	DefaultLinkService = "http://localhost:8080"
	DefaultEnvironment = "production"
	CopyLabel          = "Copy"
	CopiedLabel        = "Copied"
	CopiedToClipboard  = "Copied to clipboard"
	QRCodeDownloaded   = "QR code downloaded"
	EmptyURLMessage    = "Please enter a URL"
)

