package usecases

import (
	"errors"
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

func TestQueueService_List(t *testing.T) {
	queues := newMockQueueRepository()
	service := NewQueueService(queues)
	guildID := snowflake.ID(1)

	if _, err := service.List(guildID); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("expected ErrQueueEmpty, got %v", err)
	}

	first := mockTrack("a")
	second := mockTrack("b")
	queues.Append(guildID, first)
	queues.Append(guildID, second)

	tracks, err := service.List(guildID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 2 || tracks[0] != first || tracks[1] != second {
		t.Errorf("unexpected track order: %v", tracks)
	}
}
