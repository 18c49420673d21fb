package presentation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/bot"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

// queueListLimit caps how many tracks the /queue embed enumerates.
const queueListLimit = 10

// Handlers holds all the command handlers.
type Handlers struct {
	playback   *usecases.PlaybackService
	queue      *usecases.QueueService
	volume     *usecases.VolumeService
	voiceState ports.VoiceStateProvider
}

// NewHandlers creates new Handlers.
func NewHandlers(
	playback *usecases.PlaybackService,
	queue *usecases.QueueService,
	volume *usecases.VolumeService,
	voiceState ports.VoiceStateProvider,
) *Handlers {
	return &Handlers{
		playback:   playback,
		queue:      queue,
		volume:     volume,
		voiceState: voiceState,
	}
}

// HandlePlay handles the /play command. Search and stream resolution can take
// seconds, so the response is deferred.
func (h *Handlers) HandlePlay(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return respondError(r, "Invalid user")
	}

	notificationChannelID, err := snowflake.Parse(i.ChannelID)
	if err != nil {
		return respondError(r, "Invalid channel")
	}

	var query, providerName string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "query":
			query = opt.StringValue()
		case "provider":
			providerName = opt.StringValue()
		}
	}

	voiceChannelID, err := h.voiceState.GetUserVoiceChannel(guildID, userID)
	if err != nil || voiceChannelID == 0 {
		return respondError(r, usecases.ErrUserNotInVoice.Error())
	}

	if err := r.Defer(); err != nil {
		return err
	}

	output, err := h.playback.Play(context.Background(), voiceChannelID, usecases.PlayInput{
		GuildID:               guildID,
		UserID:                userID,
		NotificationChannelID: notificationChannelID,
		Query:                 query,
		ProviderName:          providerName,
		RequestedByName:       getDisplayName(i.Member),
		RequestedByAvatarURL:  i.Member.User.AvatarURL(""),
	})
	if err != nil {
		return followupError(r, userFacingMessage(err))
	}

	if output.Queued {
		return followupSuccess(r, fmt.Sprintf(
			"Added %s to the queue (position %d).",
			trackLink(output.Track),
			output.Position,
		))
	}
	return followupNowPlaying(r, output.Track)
}

// HandleSkip handles the /skip command.
func (h *Handlers) HandleSkip(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	output, err := h.playback.Skip(context.Background(), usecases.SkipInput{GuildID: guildID})
	if err != nil {
		return respondError(r, userFacingMessage(err))
	}

	if output.NextTrack != nil {
		return respondSuccess(r, fmt.Sprintf(
			"Skipped. Up next: %s.",
			trackLink(output.NextTrack),
		))
	}
	return respondSuccess(r, "Skipped.")
}

// HandlePause handles the /pause command.
func (h *Handlers) HandlePause(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.playback.Pause(context.Background(), guildID); err != nil {
		return respondError(r, userFacingMessage(err))
	}

	return respondSuccess(r, "Paused playback.")
}

// HandleResume handles the /resume command.
func (h *Handlers) HandleResume(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.playback.Resume(context.Background(), guildID); err != nil {
		return respondError(r, userFacingMessage(err))
	}

	return respondSuccess(r, "Resumed playback.")
}

// HandleStop handles the /stop command.
func (h *Handlers) HandleStop(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.playback.Stop(context.Background(), guildID); err != nil {
		return respondError(r, userFacingMessage(err))
	}

	return respondSuccess(r, "Stopped playback and cleared the queue.")
}

// HandleLeave handles the /leave command.
func (h *Handlers) HandleLeave(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.playback.Leave(context.Background(), guildID); err != nil {
		return respondError(r, userFacingMessage(err))
	}

	return respondSuccess(r, "Disconnected.")
}

// HandleQueue handles the /queue command.
func (h *Handlers) HandleQueue(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	tracks, err := h.queue.List(guildID)
	if err != nil {
		if errors.Is(err, usecases.ErrQueueEmpty) {
			return respondSuccess(r, "The queue is empty.")
		}
		return respondError(r, userFacingMessage(err))
	}

	var sb strings.Builder
	shown := tracks
	if len(shown) > queueListLimit {
		shown = shown[:queueListLimit]
	}
	for idx, track := range shown {
		// Escape the period so Discord does not render a markdown list.
		fmt.Fprintf(&sb, "%d\\. %s (%s)\n", idx+1, trackLink(track), track.FormattedLength())
	}
	if remaining := len(tracks) - len(shown); remaining > 0 {
		fmt.Fprintf(&sb, "...and %d more.\n", remaining)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       fmt.Sprintf("Queue (%d)", len(tracks)),
					Description: sb.String(),
				},
			},
		},
	})
}

// HandleVolume handles the /volume command.
func (h *Handlers) HandleVolume(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	level := -1
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "level" {
			level = int(opt.IntValue())
		}
	}

	if level < 0 {
		return respondSuccess(r, fmt.Sprintf("Volume is %d%%.", h.volume.Get(guildID)))
	}

	if err := h.volume.Set(guildID, level); err != nil {
		return respondError(r, userFacingMessage(err))
	}

	return respondSuccess(r, fmt.Sprintf(
		"Volume set to %d%%. Takes effect from the next track.",
		level,
	))
}

// getDisplayName returns the member's nickname if set, otherwise the global
// or username.
func getDisplayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return "Unknown"
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

// userFacingMessage maps errors onto messages safe to show in Discord.
func userFacingMessage(err error) string {
	var provErr *domain.ProviderError
	if errors.As(err, &provErr) {
		return provErr.Error()
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "No results found."
	case errors.Is(err, domain.ErrAccessDenied):
		return "Access to this track was denied by the platform."
	case errors.Is(err, domain.ErrStreamUnavailable):
		return "No playable audio stream was found for this track."
	case errors.Is(err, domain.ErrCannotJoin):
		return "Could not join the voice channel."
	default:
		return err.Error()
	}
}

func trackLink(track *domain.Track) string {
	title := domain.EscapeMarkdown(track.Title)
	if track.URL != "" {
		return fmt.Sprintf("[%s](%s)", title, track.URL)
	}
	return fmt.Sprintf("**%s**", title)
}

// Response helpers.

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Error",
					Description: message,
					Color:       colorError,
				},
			},
		},
	})
}

func respondSuccess(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: message,
					Color:       colorSuccess,
				},
			},
		},
	})
}

func followupError(r bot.Responder, message string) error {
	return r.Followup(&discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Error",
				Description: message,
				Color:       colorError,
			},
		},
	})
}

func followupSuccess(r bot.Responder, message string) error {
	return r.Followup(&discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{
			{
				Description: message,
				Color:       colorSuccess,
			},
		},
	})
}

func followupNowPlaying(r bot.Responder, track *domain.Track) error {
	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: "Now Playing",
		},
		Title: domain.EscapeMarkdown(track.Title),
		URL:   track.URL,
		Color: colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Duration", Value: track.FormattedLength(), Inline: true},
			{Name: "Source", Value: track.Provider.Display(), Inline: true},
		},
	}
	if track.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: track.ThumbnailURL}
	}
	if track.RequestedByName != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    fmt.Sprintf("Requested by %s", track.RequestedByName),
			IconURL: track.RequestedByAvatarURL,
		}
	}

	return r.Followup(&discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}
