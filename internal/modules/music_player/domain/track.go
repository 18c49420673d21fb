package domain

import (
	"strconv"
	"time"
)

// Track represents a user's resolved request for a specific piece of media,
// independent of whether it has been played yet. Tracks are immutable after
// creation except for the requester display fields, which the orchestrator
// sets once after a search.
type Track struct {
	ID            string        // provider-native identifier
	Title         string
	URL           string        // canonical webpage URL, used as the cache/dedup key
	Length        time.Duration // 0 means unknown
	Provider      Provider
	ThumbnailURL  string
	StreamBitrate int // advisory bitrate in kbps, 0 means unknown

	// Display metadata attached after creation.
	RequestedByName      string
	RequestedByAvatarURL string
}

// FormattedLength returns the track length as a human-readable string.
func (t *Track) FormattedLength() string {
	return FormatDuration(t.Length)
}

// FormatDuration renders a duration as m:ss or h:mm:ss.
// A zero duration means the length is unknown.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "Unknown"
	}

	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return strconv.Itoa(hours) + ":" + pad(minutes) + ":" + pad(seconds)
	}
	return strconv.Itoa(minutes) + ":" + pad(seconds)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
