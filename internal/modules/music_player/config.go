package music_player

import "time"

// Config holds the music player module configuration. Everything is
// optional; the defaults work for public tracks.
type Config struct {
	// Extraction knobs passed through to yt-dlp. Useful when a platform
	// starts gating anonymous requests.
	UserAgent          string `env:"HARMONY_YT_USER_AGENT"`
	Referer            string `env:"HARMONY_YT_REFERER"`
	Origin             string `env:"HARMONY_YT_ORIGIN"`
	AcceptLanguage     string `env:"HARMONY_YT_ACCEPT_LANGUAGE"`
	PlayerClient       string `env:"HARMONY_YT_PLAYER_CLIENT" envDefault:"android"`
	CookieFile         string `env:"HARMONY_YT_COOKIEFILE"`
	CookiesFromBrowser string `env:"HARMONY_YT_COOKIES_FROM_BROWSER"`

	// StreamCacheTTL is how long resolved stream URLs are trusted.
	StreamCacheTTL time.Duration `env:"HARMONY_STREAM_CACHE_TTL" envDefault:"15m"`

	// ExtractionDebug turns on verbose yt-dlp output.
	ExtractionDebug bool `env:"HARMONY_EXTRACTION_DEBUG"`
}
