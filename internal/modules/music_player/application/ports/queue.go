package ports

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// QueueRepository owns all per-guild pending-track queues. Queues are
// ephemeral and memory-resident; an exhausted queue is removed rather than
// retained as an empty container.
type QueueRepository interface {
	// Append adds a track to the tail of the guild's queue, creating the
	// queue if it does not exist.
	Append(guildID snowflake.ID, track *domain.Track)

	// Next pops and returns the head of the guild's queue. Returns nil if no
	// queue exists. If a queue exists but is empty, the queue entry is
	// deleted and nil is returned.
	Next(guildID snowflake.ID) *domain.Track

	// Peek returns the head of the guild's queue without removing it, or nil.
	Peek(guildID snowflake.ID) *domain.Track

	// Drop removes the guild's queue unconditionally and reports whether one
	// existed.
	Drop(guildID snowflake.ID) bool

	// IsEmpty reports whether the guild has no pending tracks.
	IsEmpty(guildID snowflake.ID) bool

	// Len returns the number of pending tracks, 0 for absent queues.
	Len(guildID snowflake.ID) int

	// List returns a copy of the guild's pending tracks in order.
	List(guildID snowflake.ID) []*domain.Track
}
