package domain

import "strings"

// Provider identifies the audio platform a track originates from.
type Provider string

const (
	ProviderYouTube    Provider = "youtube"
	ProviderSoundCloud Provider = "soundcloud"
)

// Display returns the human-readable platform name.
func (p Provider) Display() string {
	switch p {
	case ProviderSoundCloud:
		return "SoundCloud"
	default:
		return "YouTube"
	}
}

// NormalizeProvider resolves a user-supplied provider name to a known
// Provider. "auto" inspects the query: SoundCloud links go to SoundCloud,
// everything else to YouTube. Unknown names fall back to YouTube.
func NormalizeProvider(name, query string) Provider {
	switch strings.ToLower(name) {
	case "soundcloud":
		return ProviderSoundCloud
	case "youtube":
		return ProviderYouTube
	case "auto":
		if strings.Contains(strings.ToLower(query), "soundcloud.com") {
			return ProviderSoundCloud
		}
		return ProviderYouTube
	default:
		return ProviderYouTube
	}
}
