package infrastructure

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// MemoryQueueRepository is an in-memory implementation of QueueRepository.
// A guild's queue is created lazily on the first Append and removed when it
// is exhausted or dropped.
type MemoryQueueRepository struct {
	mu     sync.Mutex
	queues map[snowflake.ID][]*domain.Track
}

// NewMemoryQueueRepository creates a new MemoryQueueRepository.
func NewMemoryQueueRepository() *MemoryQueueRepository {
	return &MemoryQueueRepository{
		queues: make(map[snowflake.ID][]*domain.Track),
	}
}

// Append adds a track to the tail of the guild's queue.
func (r *MemoryQueueRepository) Append(guildID snowflake.ID, track *domain.Track) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queues[guildID] = append(r.queues[guildID], track)
}

// Next pops the head of the guild's queue. An empty queue is deleted so that
// exhausted guilds do not leave behind empty containers.
func (r *MemoryQueueRepository) Next(guildID snowflake.ID) *domain.Track {
	r.mu.Lock()
	defer r.mu.Unlock()

	queue, ok := r.queues[guildID]
	if !ok {
		return nil
	}
	if len(queue) == 0 {
		delete(r.queues, guildID)
		return nil
	}

	track := queue[0]
	if len(queue) == 1 {
		delete(r.queues, guildID)
	} else {
		r.queues[guildID] = queue[1:]
	}
	return track
}

// Peek returns the head of the guild's queue without removing it.
func (r *MemoryQueueRepository) Peek(guildID snowflake.ID) *domain.Track {
	r.mu.Lock()
	defer r.mu.Unlock()

	queue := r.queues[guildID]
	if len(queue) == 0 {
		return nil
	}
	return queue[0]
}

// Drop removes the guild's queue and reports whether one existed.
func (r *MemoryQueueRepository) Drop(guildID snowflake.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.queues[guildID]
	delete(r.queues, guildID)
	return ok
}

// IsEmpty reports whether the guild has no pending tracks.
func (r *MemoryQueueRepository) IsEmpty(guildID snowflake.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.queues[guildID]) == 0
}

// Len returns the number of pending tracks for the guild.
func (r *MemoryQueueRepository) Len(guildID snowflake.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.queues[guildID])
}

// List returns a copy of the guild's pending tracks in order.
func (r *MemoryQueueRepository) List(guildID snowflake.ID) []*domain.Track {
	r.mu.Lock()
	defer r.mu.Unlock()

	queue := r.queues[guildID]
	if len(queue) == 0 {
		return nil
	}
	out := make([]*domain.Track, len(queue))
	copy(out, queue)
	return out
}

// Count returns the number of guilds with live queues (for testing/monitoring).
func (r *MemoryQueueRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.queues)
}

// Ensure MemoryQueueRepository implements QueueRepository.
var _ ports.QueueRepository = (*MemoryQueueRepository)(nil)
