package ports

import (
	"context"

	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// PlayableSource is what the voice transport plays: a stream locator plus the
// gain it should be played at.
type PlayableSource struct {
	StreamURL string
	Volume    float64 // 0.0 to 1.0
	Bitrate   int     // kbps, 0 means unknown
}

// AudioProvider defines the capability contract implemented by each audio
// platform backend.
type AudioProvider interface {
	// Search resolves a text query or URL into track metadata. Queries that
	// are not already URLs are prefixed as a provider-specific search
	// expression before being handed to the extraction backend.
	Search(ctx context.Context, query string) (*domain.Track, error)

	// ResolveStream returns a playable, time-bounded locator for a
	// previously-searched track. Implementations consult their stream cache
	// first, then join any in-flight resolution for the same URL, and only
	// then start a new resolution.
	ResolveStream(ctx context.Context, track *domain.Track) (domain.StreamInfo, error)

	// AudioSource builds a playable source at the given volume. If stream is
	// non-nil it is reused, avoiding a second resolution.
	AudioSource(
		ctx context.Context,
		track *domain.Track,
		volume float64,
		stream *domain.StreamInfo,
	) (PlayableSource, error)
}
