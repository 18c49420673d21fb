package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// fakeVoiceTransport records connect/move requests in place of discordgo.
type fakeVoiceTransport struct {
	connects   []snowflake.ID
	moves      []snowflake.ID
	connectErr error
	moveErr    error
}

func newTestVoiceManager(transport *fakeVoiceTransport) *VoiceManager {
	m := NewVoiceManager(nil)
	m.connect = func(_, channelID snowflake.ID) (*discordgo.VoiceConnection, error) {
		if transport.connectErr != nil {
			return nil, transport.connectErr
		}
		transport.connects = append(transport.connects, channelID)
		return &discordgo.VoiceConnection{}, nil
	}
	m.move = func(_ *discordgo.VoiceConnection, channelID snowflake.ID) error {
		if transport.moveErr != nil {
			return transport.moveErr
		}
		transport.moves = append(transport.moves, channelID)
		return nil
	}
	return m
}

func TestVoiceManagerJoin_FreshConnect(t *testing.T) {
	transport := &fakeVoiceTransport{}
	m := newTestVoiceManager(transport)

	session, err := m.Join(context.Background(), snowflake.ID(1), snowflake.ID(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ChannelID() != snowflake.ID(100) {
		t.Errorf("expected session in channel 100, got %v", session.ChannelID())
	}
	if len(transport.connects) != 1 || len(transport.moves) != 0 {
		t.Errorf("expected one connect and no moves, got %d/%d",
			len(transport.connects), len(transport.moves))
	}
}

func TestVoiceManagerJoin_ReusesSessionInSameChannel(t *testing.T) {
	transport := &fakeVoiceTransport{}
	m := newTestVoiceManager(transport)

	first, err := m.Join(context.Background(), snowflake.ID(1), snowflake.ID(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := m.Join(context.Background(), snowflake.ID(1), snowflake.ID(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("expected the same session for a repeat join to the same channel")
	}
	if len(transport.connects) != 1 || len(transport.moves) != 0 {
		t.Errorf("expected one connect and no moves, got %d/%d",
			len(transport.connects), len(transport.moves))
	}
}

func TestVoiceManagerJoin_MovesWithinGuild(t *testing.T) {
	transport := &fakeVoiceTransport{}
	m := newTestVoiceManager(transport)

	first, err := m.Join(context.Background(), snowflake.ID(1), snowflake.ID(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := m.Join(context.Background(), snowflake.ID(1), snowflake.ID(200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("expected the session to be moved, not replaced")
	}
	if second.ChannelID() != snowflake.ID(200) {
		t.Errorf("expected session in channel 200, got %v", second.ChannelID())
	}
	if len(transport.connects) != 1 {
		t.Errorf("expected no second connect, got %d", len(transport.connects))
	}
	if len(transport.moves) != 1 || transport.moves[0] != snowflake.ID(200) {
		t.Errorf("expected one move to channel 200, got %v", transport.moves)
	}
}

func TestVoiceManagerJoin_ConnectFailureIsCannotJoin(t *testing.T) {
	transport := &fakeVoiceTransport{connectErr: errors.New("gateway timeout")}
	m := newTestVoiceManager(transport)

	_, err := m.Join(context.Background(), snowflake.ID(1), snowflake.ID(100))
	if !errors.Is(err, domain.ErrCannotJoin) {
		t.Fatalf("expected ErrCannotJoin, got %v", err)
	}
	if m.Session(snowflake.ID(1)) != nil {
		t.Error("expected no session registered after a failed connect")
	}
}

func TestVoiceManagerJoin_MoveFailureIsCannotJoin(t *testing.T) {
	transport := &fakeVoiceTransport{}
	m := newTestVoiceManager(transport)

	session, err := m.Join(context.Background(), snowflake.ID(1), snowflake.ID(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transport.moveErr = errors.New("missing permissions")
	_, err = m.Join(context.Background(), snowflake.ID(1), snowflake.ID(200))
	if !errors.Is(err, domain.ErrCannotJoin) {
		t.Fatalf("expected ErrCannotJoin, got %v", err)
	}
	if session.ChannelID() != snowflake.ID(100) {
		t.Errorf("expected session to stay in channel 100, got %v", session.ChannelID())
	}
}
