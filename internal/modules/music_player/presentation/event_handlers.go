package presentation

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// EventHandlers handles Discord gateway events for the music player.
type EventHandlers struct {
	botID     snowflake.ID
	publisher ports.EventPublisher
}

// NewEventHandlers creates a new EventHandlers.
func NewEventHandlers(botID snowflake.ID, publisher ports.EventPublisher) *EventHandlers {
	return &EventHandlers{
		botID:     botID,
		publisher: publisher,
	}
}

// HandleVoiceStateUpdate publishes a ChannelEmptiedEvent whenever a user
// leaves a voice channel. Occupancy is re-checked on the consumer side, so
// over-publishing is harmless.
func (h *EventHandlers) HandleVoiceStateUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	if event.UserID == h.botID.String() {
		return
	}
	if event.BeforeUpdate == nil || event.BeforeUpdate.ChannelID == "" {
		return
	}
	if event.BeforeUpdate.ChannelID == event.ChannelID {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}
	channelID, err := snowflake.Parse(event.BeforeUpdate.ChannelID)
	if err != nil {
		slog.Error("failed to parse channel ID in voice state update", "error", err)
		return
	}

	h.publisher.PublishChannelEmptied(domain.ChannelEmptiedEvent{
		GuildID:   guildID,
		ChannelID: channelID,
	})
}
