package ports

import (
	"context"

	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// EventPublisher defines the interface for publishing playback events
// asynchronously. Publishing must be safe from any goroutine: transport
// completion callbacks run on foreign goroutines and are translated into
// events handled on the bus's own dispatch goroutines.
type EventPublisher interface {
	PublishPlaybackFinished(event domain.PlaybackFinishedEvent)
	PublishChannelEmptied(event domain.ChannelEmptiedEvent)
}

// EventSubscriber defines the interface for subscribing to playback events.
type EventSubscriber interface {
	OnPlaybackFinished(handler func(context.Context, domain.PlaybackFinishedEvent))
	OnChannelEmptied(handler func(context.Context, domain.ChannelEmptiedEvent))
}
