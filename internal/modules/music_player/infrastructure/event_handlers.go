package infrastructure

import (
	"context"
	"log/slog"

	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// PlaybackEventHandler drives queue advancement and occupancy teardown from
// bus events, keeping both off the voice transport's goroutines.
type PlaybackEventHandler struct {
	playback   *usecases.PlaybackService
	subscriber ports.EventSubscriber
}

// NewPlaybackEventHandler creates a new PlaybackEventHandler.
func NewPlaybackEventHandler(
	playback *usecases.PlaybackService,
	subscriber ports.EventSubscriber,
) *PlaybackEventHandler {
	return &PlaybackEventHandler{
		playback:   playback,
		subscriber: subscriber,
	}
}

// Start registers event handlers with the subscriber.
func (h *PlaybackEventHandler) Start() {
	h.subscriber.OnPlaybackFinished(h.handlePlaybackFinished)
	h.subscriber.OnChannelEmptied(h.handleChannelEmptied)

	slog.Debug("playback event handler started")
}

func (h *PlaybackEventHandler) handlePlaybackFinished(
	ctx context.Context,
	event domain.PlaybackFinishedEvent,
) {
	slog.Debug("playback finished, advancing queue",
		"guild", event.GuildID,
		"had_error", event.Err != nil,
	)

	h.playback.Advance(ctx, event.GuildID, event.NotificationChannelID)
}

func (h *PlaybackEventHandler) handleChannelEmptied(
	ctx context.Context,
	event domain.ChannelEmptiedEvent,
) {
	h.playback.TeardownIfEmpty(ctx, event.GuildID, event.ChannelID)
}
