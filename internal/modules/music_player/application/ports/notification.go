package ports

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// Notifier defines the interface for sending playback notifications to
// Discord text channels.
type Notifier interface {
	// SendNowPlaying announces the track that just started playing.
	SendNowPlaying(channelID snowflake.ID, track *domain.Track) error

	// SendError sends a short, user-safe failure description.
	SendError(channelID snowflake.ID, title, description string) error
}
