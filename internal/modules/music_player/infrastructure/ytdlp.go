package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// extractionPrint asks yt-dlp for a single JSON object per entry holding the
// metadata and stream candidates the player needs.
const extractionPrint = "%(.{id,title,webpage_url,duration,thumbnail,abr,url,formats})j"

// ExtractionConfig carries the optional knobs passed through to yt-dlp.
// Everything is off by default; the values come from module configuration.
type ExtractionConfig struct {
	UserAgent          string
	Referer            string
	Origin             string
	AcceptLanguage     string
	PlayerClient       string
	CookieFile         string
	CookiesFromBrowser string
	Debug              bool
}

// ExtractedFormat is one stream candidate reported by yt-dlp.
type ExtractedFormat struct {
	URL      string  `json:"url"`
	ACodec   string  `json:"acodec"`
	ABR      float64 `json:"abr"`
	Protocol string  `json:"protocol"`
}

// ExtractedInfo is the subset of yt-dlp's entry JSON the player consumes.
type ExtractedInfo struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	WebpageURL string            `json:"webpage_url"`
	Duration   float64           `json:"duration"`
	Thumbnail  string            `json:"thumbnail"`
	ABR        float64           `json:"abr"`
	URL        string            `json:"url"`
	Formats    []ExtractedFormat `json:"formats"`
}

// YtdlpClient runs yt-dlp extractions with the configured options applied.
type YtdlpClient struct {
	config ExtractionConfig
}

// NewYtdlpClient creates a new YtdlpClient.
func NewYtdlpClient(config ExtractionConfig) *YtdlpClient {
	return &YtdlpClient{config: config}
}

// Extract resolves a URL or search expression into track metadata and stream
// candidates without downloading anything. Only the first entry of a search
// or playlist is considered.
func (c *YtdlpClient) Extract(ctx context.Context, query string) (*ExtractedInfo, error) {
	res, err := c.command().Run(ctx, "--skip-download", query)
	if err != nil {
		stderr := ""
		if res != nil {
			stderr = res.Stderr
		}
		return nil, classifyExtractionError(err, stderr)
	}

	line := firstNonEmptyLine(res.Stdout)
	if line == "" {
		return nil, domain.ErrNotFound
	}

	var info ExtractedInfo
	if err := json.Unmarshal([]byte(line), &info); err != nil {
		return nil, fmt.Errorf("failed to parse extraction output: %w", err)
	}
	return &info, nil
}

func (c *YtdlpClient) command() *ytdlp.Command {
	cmd := ytdlp.New().
		IgnoreConfig().
		NoWarnings().
		NoPlaylist().
		PlaylistItems("1").
		Format("bestaudio/best").
		Print(extractionPrint)

	if c.config.UserAgent != "" {
		cmd = cmd.UserAgent(c.config.UserAgent)
	}
	if c.config.Referer != "" {
		cmd = cmd.Referer(c.config.Referer)
	}
	if c.config.Origin != "" {
		cmd = cmd.AddHeaders("Origin:" + c.config.Origin)
	}
	if c.config.AcceptLanguage != "" {
		cmd = cmd.AddHeaders("Accept-Language:" + c.config.AcceptLanguage)
	}
	if c.config.PlayerClient != "" {
		cmd = cmd.ExtractorArgs("youtube:player_client=" + c.config.PlayerClient)
	}
	if c.config.CookieFile != "" {
		cmd = cmd.Cookies(c.config.CookieFile)
	}
	if c.config.CookiesFromBrowser != "" {
		cmd = cmd.CookiesFromBrowser(c.config.CookiesFromBrowser)
	}
	if c.config.Debug {
		cmd = cmd.Verbose()
	}

	return cmd
}

// classifyExtractionError maps yt-dlp failures onto domain sentinel errors
// where the cause is recognizable, so callers can distinguish "does not
// exist" from "exists but blocked".
func classifyExtractionError(err error, stderr string) error {
	msg := strings.ToLower(err.Error() + "\n" + stderr)

	switch {
	case strings.Contains(msg, "403") || strings.Contains(msg, "forbidden"):
		return fmt.Errorf("%w: %s", domain.ErrAccessDenied, firstNonEmptyLine(stderr))
	case strings.Contains(msg, "404") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "unavailable"):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, firstNonEmptyLine(stderr))
	default:
		return err
	}
}

func firstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
