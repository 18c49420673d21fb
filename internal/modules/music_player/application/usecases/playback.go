package usecases

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// maxAdvanceFailures bounds how many broken tracks Advance discards in a row
// before giving up, so a queue full of dead links cannot spin forever.
const maxAdvanceFailures = 5

// prefetchTimeout bounds background stream resolutions so an abandoned
// prefetch does not hold an extraction subprocess open indefinitely.
const prefetchTimeout = 2 * time.Minute

// PlayInput contains the input for the Play use case.
type PlayInput struct {
	GuildID               snowflake.ID
	UserID                snowflake.ID
	NotificationChannelID snowflake.ID
	Query                 string
	ProviderName          string
	RequestedByName       string
	RequestedByAvatarURL  string
}

// PlayOutput contains the result of the Play use case.
type PlayOutput struct {
	Track    *domain.Track
	Queued   bool // true if the track was added behind an active playback
	Position int  // 1-indexed queue position when Queued
}

// SkipInput contains the input for the Skip use case.
type SkipInput struct {
	GuildID snowflake.ID
}

// SkipOutput contains the result of the Skip use case.
type SkipOutput struct {
	NextTrack *domain.Track // nil if the queue is empty
}

// PlaybackService orchestrates queueing, stream resolution and voice
// playback for all guilds.
type PlaybackService struct {
	queues    ports.QueueRepository
	volumes   ports.VolumeRepository
	voice     ports.VoiceConnector
	occupancy ports.OccupancyProvider
	registry  *ProviderRegistry
	search    *TrackSearchService
	notifier  ports.Notifier
	publisher ports.EventPublisher
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(
	queues ports.QueueRepository,
	volumes ports.VolumeRepository,
	voice ports.VoiceConnector,
	occupancy ports.OccupancyProvider,
	registry *ProviderRegistry,
	search *TrackSearchService,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
) *PlaybackService {
	return &PlaybackService{
		queues:    queues,
		volumes:   volumes,
		voice:     voice,
		occupancy: occupancy,
		registry:  registry,
		search:    search,
		notifier:  notifier,
		publisher: publisher,
	}
}

// Play resolves the query and either starts playback immediately or appends
// the track behind whatever is already playing. The caller must supply the
// voice channel the user occupies; joining happens here.
func (p *PlaybackService) Play(
	ctx context.Context,
	voiceChannelID snowflake.ID,
	input PlayInput,
) (*PlayOutput, error) {
	track, err := p.search.Search(ctx, input.ProviderName, input.Query)
	if err != nil {
		return nil, err
	}
	track.RequestedByName = input.RequestedByName
	track.RequestedByAvatarURL = input.RequestedByAvatarURL

	session, err := p.voice.Join(ctx, input.GuildID, voiceChannelID)
	if err != nil {
		return nil, err
	}

	if session.IsPlaying() || session.IsPaused() {
		p.queues.Append(input.GuildID, track)
		p.prefetch(input.GuildID, track)
		return &PlayOutput{
			Track:    track,
			Queued:   true,
			Position: p.queues.Len(input.GuildID),
		}, nil
	}

	if err := p.startTrack(ctx, session, input.GuildID, input.NotificationChannelID, track); err != nil {
		return nil, err
	}
	return &PlayOutput{Track: track}, nil
}

// Skip aborts the current track. Queue advancement happens through the
// playback-finished event the abort triggers.
func (p *PlaybackService) Skip(ctx context.Context, input SkipInput) (*SkipOutput, error) {
	session := p.voice.Session(input.GuildID)
	if session == nil {
		return nil, domain.ErrNotConnected
	}
	if !session.IsPlaying() && !session.IsPaused() {
		return nil, domain.ErrNotPlaying
	}

	next := p.queues.Peek(input.GuildID)
	session.Stop()

	return &SkipOutput{NextTrack: next}, nil
}

// Pause suspends the current playback.
func (p *PlaybackService) Pause(ctx context.Context, guildID snowflake.ID) error {
	session := p.voice.Session(guildID)
	if session == nil {
		return domain.ErrNotConnected
	}
	if session.IsPaused() {
		return ErrAlreadyPaused
	}
	if !session.IsPlaying() {
		return domain.ErrNotPlaying
	}

	session.Pause()
	return nil
}

// Resume continues paused playback.
func (p *PlaybackService) Resume(ctx context.Context, guildID snowflake.ID) error {
	session := p.voice.Session(guildID)
	if session == nil {
		return domain.ErrNotConnected
	}
	if !session.IsPaused() {
		return domain.ErrNotPaused
	}

	session.Resume()
	return nil
}

// Stop aborts playback and clears the queue. The bot stays in the channel.
func (p *PlaybackService) Stop(ctx context.Context, guildID snowflake.ID) error {
	session := p.voice.Session(guildID)
	if session == nil {
		return domain.ErrNotConnected
	}

	p.queues.Drop(guildID)
	session.Stop()
	return nil
}

// Leave clears the queue, stops playback and disconnects from the guild.
func (p *PlaybackService) Leave(ctx context.Context, guildID snowflake.ID) error {
	if p.voice.Session(guildID) == nil {
		return domain.ErrNotConnected
	}

	p.queues.Drop(guildID)
	return p.voice.Disconnect(guildID)
}

// Advance plays the next queued track, discarding tracks that fail to
// resolve. When the queue is exhausted and no humans remain in the channel,
// the session is torn down.
func (p *PlaybackService) Advance(
	ctx context.Context,
	guildID, notifyChannelID snowflake.ID,
) {
	failures := 0

	for {
		session := p.voice.Session(guildID)
		if session == nil {
			// Disconnected while the event was in flight.
			p.queues.Drop(guildID)
			return
		}
		if session.IsPlaying() || session.IsPaused() {
			return
		}

		track := p.queues.Next(guildID)
		if track == nil {
			if p.occupancy.HumanCount(guildID, session.ChannelID()) == 0 {
				slog.Info("queue exhausted in empty channel, disconnecting",
					"guild", guildID,
				)
				p.queues.Drop(guildID)
				if err := p.voice.Disconnect(guildID); err != nil {
					slog.Error("failed to disconnect", "guild", guildID, "error", err)
				}
			}
			return
		}

		err := p.startTrack(ctx, session, guildID, notifyChannelID, track)
		if err == nil {
			if notifyChannelID != 0 {
				if err := p.notifier.SendNowPlaying(notifyChannelID, track); err != nil {
					slog.Warn("failed to send now playing notification",
						"guild", guildID,
						"error", err,
					)
				}
			}
			return
		}

		slog.Error("failed to start queued track, discarding",
			"guild", guildID,
			"track", track.Title,
			"error", err,
		)
		if notifyChannelID != 0 {
			_ = p.notifier.SendError(
				notifyChannelID,
				"Playback Error",
				"Skipping **"+track.Title+"**: "+userMessage(err),
			)
		}

		failures++
		if failures >= maxAdvanceFailures {
			slog.Error("giving up queue advancement after repeated failures",
				"guild", guildID,
				"failures", failures,
			)
			if notifyChannelID != 0 {
				_ = p.notifier.SendError(
					notifyChannelID,
					"Playback Stopped",
					"Too many tracks failed in a row; stopping playback.",
				)
			}
			return
		}
	}
}

// TeardownIfEmpty disconnects and drops the queue when the bot's channel has
// no human listeners left.
func (p *PlaybackService) TeardownIfEmpty(ctx context.Context, guildID, channelID snowflake.ID) {
	session := p.voice.Session(guildID)
	if session == nil || session.ChannelID() != channelID {
		return
	}
	if p.occupancy.HumanCount(guildID, channelID) > 0 {
		return
	}

	slog.Info("voice channel emptied, disconnecting", "guild", guildID, "channel", channelID)

	p.queues.Drop(guildID)
	if err := p.voice.Disconnect(guildID); err != nil {
		slog.Error("failed to disconnect", "guild", guildID, "error", err)
	}
}

// startTrack resolves the track into a playable source and hands it to the
// voice session. Completion is reported through the event bus so advancement
// never runs on the voice transport's goroutine.
func (p *PlaybackService) startTrack(
	ctx context.Context,
	session ports.VoiceSession,
	guildID, notifyChannelID snowflake.ID,
	track *domain.Track,
) error {
	provider, err := p.registry.Get(track.Provider)
	if err != nil {
		return err
	}

	source, err := provider.AudioSource(ctx, track, p.volumes.Get(guildID), nil)
	if err != nil {
		return err
	}

	err = session.Play(source, func(playErr error) {
		if playErr != nil {
			slog.Error("playback ended with error",
				"guild", guildID,
				"track", track.Title,
				"error", playErr,
			)
		}
		p.publisher.PublishPlaybackFinished(domain.PlaybackFinishedEvent{
			GuildID:               guildID,
			NotificationChannelID: notifyChannelID,
			Err:                   playErr,
		})
	})
	if err != nil {
		return err
	}

	if next := p.queues.Peek(guildID); next != nil {
		p.prefetch(guildID, next)
	}
	return nil
}

// prefetch resolves a queued track's stream in the background so it is
// cache-warm when its turn comes. Failures are logged and discarded; the
// resolution will be retried when the track is actually played.
func (p *PlaybackService) prefetch(guildID snowflake.ID, track *domain.Track) {
	provider, err := p.registry.Get(track.Provider)
	if err != nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), prefetchTimeout)
		defer cancel()

		if _, err := provider.ResolveStream(ctx, track); err != nil {
			slog.Debug("prefetch failed",
				"guild", guildID,
				"track", track.Title,
				"error", err,
			)
		}
	}()
}

// userMessage reduces an internal error to something safe to show in a
// Discord channel.
func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case isDomainSentinel(err):
		return err.Error()
	default:
		return "the track could not be played"
	}
}

func isDomainSentinel(err error) bool {
	for _, sentinel := range []error{
		domain.ErrNotFound,
		domain.ErrAccessDenied,
		domain.ErrStreamUnavailable,
		domain.ErrCannotJoin,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	var provErr *domain.ProviderError
	return errors.As(err, &provErr)
}
