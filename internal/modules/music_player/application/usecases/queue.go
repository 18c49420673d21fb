package usecases

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// QueueService exposes read access to guild queues.
type QueueService struct {
	queues ports.QueueRepository
}

// NewQueueService creates a new QueueService.
func NewQueueService(queues ports.QueueRepository) *QueueService {
	return &QueueService{queues: queues}
}

// List returns the guild's pending tracks in play order.
func (s *QueueService) List(guildID snowflake.ID) ([]*domain.Track, error) {
	tracks := s.queues.List(guildID)
	if len(tracks) == 0 {
		return nil, ErrQueueEmpty
	}
	return tracks, nil
}
