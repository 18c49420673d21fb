package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// VoiceSession is an active voice connection for one guild.
type VoiceSession interface {
	// Play starts playback of the source and invokes onComplete exactly once
	// when playback stops, whether it ended normally, was stopped, or
	// errored. Play fails if something is already playing.
	Play(source PlayableSource, onComplete func(error)) error

	// Stop aborts the current playback, if any. The completion callback
	// still fires.
	Stop()

	// Pause suspends the current playback.
	Pause()

	// Resume continues paused playback.
	Resume()

	IsPlaying() bool
	IsPaused() bool

	// ChannelID returns the voice channel the session is connected to.
	ChannelID() snowflake.ID
}

// VoiceConnector manages voice sessions across guilds.
type VoiceConnector interface {
	// Join connects the bot to the given channel. If the bot is already in
	// that channel the existing session is reused; if it is elsewhere in the
	// guild it is moved. Transport failures are reported as a single
	// cannot-join error.
	Join(ctx context.Context, guildID, channelID snowflake.ID) (VoiceSession, error)

	// Session returns the guild's active session, or nil.
	Session(guildID snowflake.ID) VoiceSession

	// Disconnect stops any active playback and tears down the guild's
	// session. No-op if none exists.
	Disconnect(guildID snowflake.ID) error
}

// OccupancyProvider reports who is in a voice channel.
type OccupancyProvider interface {
	// HumanCount returns the number of non-bot members in the channel.
	HumanCount(guildID, channelID snowflake.ID) int
}
