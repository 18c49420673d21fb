package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// PlaybackFinishedEvent is published when a track stops playing for any
// reason: normal end, skip, stop, or a transport error. The playback event
// handler reacts by advancing the guild's queue.
type PlaybackFinishedEvent struct {
	GuildID               snowflake.ID
	NotificationChannelID snowflake.ID
	Err                   error // nil unless the transport reported a failure
}

// ChannelEmptiedEvent is published when the last human member leaves the
// voice channel the bot is connected to.
type ChannelEmptiedEvent struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
}
