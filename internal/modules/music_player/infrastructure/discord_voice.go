package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/jonas747/dca"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

const (
	// defaultEncodeBitrate is used when the source's bitrate is unknown.
	defaultEncodeBitrate = 96

	// maxEncodeBitrate caps the opus encode bitrate at what Discord voice
	// channels accept.
	maxEncodeBitrate = 128

	// volumeScale is dca's representation of unity gain.
	volumeScale = 256
)

// VoiceManager tracks one voice session per guild. It implements
// ports.VoiceConnector on top of discordgo's voice transport.
type VoiceManager struct {
	session *discordgo.Session

	// Transport operations, replaceable in tests.
	connect func(guildID, channelID snowflake.ID) (*discordgo.VoiceConnection, error)
	move    func(conn *discordgo.VoiceConnection, channelID snowflake.ID) error

	mu       sync.Mutex
	sessions map[snowflake.ID]*guildVoiceSession
}

// NewVoiceManager creates a new VoiceManager.
func NewVoiceManager(session *discordgo.Session) *VoiceManager {
	m := &VoiceManager{
		session:  session,
		sessions: make(map[snowflake.ID]*guildVoiceSession),
	}
	// The bot never listens; input stays unmuted so Discord shows the
	// speaking indicator, output is deafened.
	m.connect = func(guildID, channelID snowflake.ID) (*discordgo.VoiceConnection, error) {
		return m.session.ChannelVoiceJoin(guildID.String(), channelID.String(), false, true)
	}
	m.move = func(conn *discordgo.VoiceConnection, channelID snowflake.ID) error {
		return conn.ChangeChannel(channelID.String(), false, true)
	}
	return m
}

// Join connects the bot to the channel. A session already in the channel is
// reused, a session elsewhere in the guild is moved, otherwise a fresh
// connection is made. All transport failures collapse to ErrCannotJoin.
func (m *VoiceManager) Join(
	ctx context.Context,
	guildID, channelID snowflake.ID,
) (ports.VoiceSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[guildID]; ok {
		if existing.ChannelID() == channelID {
			return existing, nil
		}
		if err := m.move(existing.conn, channelID); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCannotJoin, err)
		}
		existing.setChannel(channelID)
		return existing, nil
	}

	conn, err := m.connect(guildID, channelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCannotJoin, err)
	}

	gs := &guildVoiceSession{conn: conn, channelID: channelID}
	m.sessions[guildID] = gs
	return gs, nil
}

// Session returns the guild's active voice session, or nil.
func (m *VoiceManager) Session(guildID snowflake.ID) ports.VoiceSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	gs, ok := m.sessions[guildID]
	if !ok {
		return nil
	}
	return gs
}

// Disconnect stops playback and tears down the guild's session.
func (m *VoiceManager) Disconnect(guildID snowflake.ID) error {
	m.mu.Lock()
	gs, ok := m.sessions[guildID]
	delete(m.sessions, guildID)
	m.mu.Unlock()

	if !ok {
		return nil
	}

	gs.Stop()
	_ = gs.conn.Speaking(false)
	return gs.conn.Disconnect()
}

// Ensure VoiceManager implements VoiceConnector.
var _ ports.VoiceConnector = (*VoiceManager)(nil)

// guildVoiceSession wraps one discordgo voice connection plus the dca
// encode/stream pair currently feeding it.
type guildVoiceSession struct {
	conn *discordgo.VoiceConnection

	mu        sync.Mutex
	channelID snowflake.ID
	encoder   *dca.EncodeSession
	stream    *dca.StreamingSession
	playing   bool
	paused    bool
	stopped   bool
}

// Play encodes the source through ffmpeg and streams opus frames to the
// connection. onComplete fires exactly once when the stream ends.
func (s *guildVoiceSession) Play(source ports.PlayableSource, onComplete func(error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playing {
		return errors.New("playback already in progress")
	}

	bitrate := source.Bitrate
	if bitrate <= 0 {
		bitrate = defaultEncodeBitrate
	}
	if bitrate > maxEncodeBitrate {
		bitrate = maxEncodeBitrate
	}

	options := *dca.StdEncodeOptions
	options.RawOutput = true
	options.Bitrate = bitrate
	options.Application = dca.AudioApplicationAudio
	options.Volume = int(source.Volume * volumeScale)
	options.BufferedFrames = 200

	encoder, err := dca.EncodeFile(source.StreamURL, &options)
	if err != nil {
		return fmt.Errorf("failed to start audio encoder: %w", err)
	}

	if err := s.conn.Speaking(true); err != nil {
		encoder.Cleanup()
		return fmt.Errorf("failed to set speaking state: %w", err)
	}

	done := make(chan error)
	s.encoder = encoder
	s.stream = dca.NewStream(encoder, s.conn, done)
	s.playing = true
	s.paused = false
	s.stopped = false

	go func() {
		err := <-done
		if errors.Is(err, io.EOF) {
			err = nil
		}

		s.mu.Lock()
		if s.stopped {
			// An intentional Stop kills the encoder; the resulting stream
			// error is not a playback failure.
			err = nil
		}
		s.playing = false
		s.paused = false
		s.encoder = nil
		s.stream = nil
		s.mu.Unlock()

		encoder.Cleanup()
		_ = s.conn.Speaking(false)

		if onComplete != nil {
			onComplete(err)
		}
	}()

	return nil
}

// Stop aborts the current playback. The completion callback still fires.
func (s *guildVoiceSession) Stop() {
	s.mu.Lock()
	encoder := s.encoder
	if encoder != nil {
		s.stopped = true
	}
	s.mu.Unlock()

	if encoder != nil {
		_ = encoder.Stop()
	}
}

// Pause suspends frame delivery without tearing down the encoder.
func (s *guildVoiceSession) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil || !s.playing {
		return
	}
	s.stream.SetPaused(true)
	s.paused = true
}

// Resume continues paused playback.
func (s *guildVoiceSession) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil || !s.paused {
		return
	}
	s.stream.SetPaused(false)
	s.paused = false
}

// IsPlaying reports whether audio is actively being delivered.
func (s *guildVoiceSession) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing && !s.paused
}

// IsPaused reports whether playback exists but is suspended.
func (s *guildVoiceSession) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing && s.paused
}

// ChannelID returns the voice channel the session is connected to.
func (s *guildVoiceSession) ChannelID() snowflake.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channelID
}

func (s *guildVoiceSession) setChannel(channelID snowflake.ID) {
	s.mu.Lock()
	s.channelID = channelID
	s.mu.Unlock()
}

// Ensure guildVoiceSession implements VoiceSession.
var _ ports.VoiceSession = (*guildVoiceSession)(nil)
