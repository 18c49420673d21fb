package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

func mockTrack(id string) *domain.Track {
	return &domain.Track{
		ID:       id,
		Title:    "Track " + id,
		URL:      "https://example.com/watch?v=" + id,
		Length:   3 * time.Minute,
		Provider: domain.ProviderYouTube,
	}
}

type mockQueueRepository struct {
	queues  map[snowflake.ID][]*domain.Track
	dropped []snowflake.ID
}

func newMockQueueRepository() *mockQueueRepository {
	return &mockQueueRepository{queues: make(map[snowflake.ID][]*domain.Track)}
}

func (m *mockQueueRepository) Append(guildID snowflake.ID, track *domain.Track) {
	m.queues[guildID] = append(m.queues[guildID], track)
}

func (m *mockQueueRepository) Next(guildID snowflake.ID) *domain.Track {
	queue := m.queues[guildID]
	if len(queue) == 0 {
		delete(m.queues, guildID)
		return nil
	}
	track := queue[0]
	m.queues[guildID] = queue[1:]
	return track
}

func (m *mockQueueRepository) Peek(guildID snowflake.ID) *domain.Track {
	queue := m.queues[guildID]
	if len(queue) == 0 {
		return nil
	}
	return queue[0]
}

func (m *mockQueueRepository) Drop(guildID snowflake.ID) bool {
	m.dropped = append(m.dropped, guildID)
	_, ok := m.queues[guildID]
	delete(m.queues, guildID)
	return ok
}

func (m *mockQueueRepository) IsEmpty(guildID snowflake.ID) bool {
	return len(m.queues[guildID]) == 0
}

func (m *mockQueueRepository) Len(guildID snowflake.ID) int {
	return len(m.queues[guildID])
}

func (m *mockQueueRepository) List(guildID snowflake.ID) []*domain.Track {
	return m.queues[guildID]
}

type mockVolumeRepository struct {
	volumes map[snowflake.ID]float64
}

func newMockVolumeRepository() *mockVolumeRepository {
	return &mockVolumeRepository{volumes: make(map[snowflake.ID]float64)}
}

func (m *mockVolumeRepository) Get(guildID snowflake.ID) float64 {
	volume, ok := m.volumes[guildID]
	if !ok {
		return 1.0
	}
	return volume
}

func (m *mockVolumeRepository) Set(guildID snowflake.ID, volume float64) {
	m.volumes[guildID] = volume
}

type mockVoiceSession struct {
	channelID  snowflake.ID
	playing    bool
	paused     bool
	playErr    error
	played     []ports.PlayableSource
	onComplete func(error)
	stopped    int
	pauses     int
	resumes    int
}

func (m *mockVoiceSession) Play(source ports.PlayableSource, onComplete func(error)) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.played = append(m.played, source)
	m.onComplete = onComplete
	m.playing = true
	return nil
}

func (m *mockVoiceSession) Stop() {
	m.stopped++
	m.playing = false
	m.paused = false
}

func (m *mockVoiceSession) Pause() {
	m.pauses++
	m.paused = true
}

func (m *mockVoiceSession) Resume() {
	m.resumes++
	m.paused = false
}

func (m *mockVoiceSession) IsPlaying() bool { return m.playing && !m.paused }

func (m *mockVoiceSession) IsPaused() bool { return m.playing && m.paused }

func (m *mockVoiceSession) ChannelID() snowflake.ID { return m.channelID }

type mockVoiceConnector struct {
	sessions     map[snowflake.ID]*mockVoiceSession
	joinErr      error
	disconnected []snowflake.ID
}

func newMockVoiceConnector() *mockVoiceConnector {
	return &mockVoiceConnector{sessions: make(map[snowflake.ID]*mockVoiceSession)}
}

func (m *mockVoiceConnector) Join(
	_ context.Context,
	guildID, channelID snowflake.ID,
) (ports.VoiceSession, error) {
	if m.joinErr != nil {
		return nil, m.joinErr
	}
	session, ok := m.sessions[guildID]
	if !ok {
		session = &mockVoiceSession{channelID: channelID}
		m.sessions[guildID] = session
	}
	return session, nil
}

func (m *mockVoiceConnector) Session(guildID snowflake.ID) ports.VoiceSession {
	session, ok := m.sessions[guildID]
	if !ok {
		return nil
	}
	return session
}

func (m *mockVoiceConnector) Disconnect(guildID snowflake.ID) error {
	m.disconnected = append(m.disconnected, guildID)
	delete(m.sessions, guildID)
	return nil
}

type mockOccupancyProvider struct {
	humans map[snowflake.ID]int // channelID -> human count
}

func (m *mockOccupancyProvider) HumanCount(_, channelID snowflake.ID) int {
	return m.humans[channelID]
}

type mockNotifier struct {
	nowPlaying []*domain.Track
	errors     []string
}

func (m *mockNotifier) SendNowPlaying(_ snowflake.ID, track *domain.Track) error {
	m.nowPlaying = append(m.nowPlaying, track)
	return nil
}

func (m *mockNotifier) SendError(_ snowflake.ID, _, description string) error {
	m.errors = append(m.errors, description)
	return nil
}

type mockEventPublisher struct {
	playbackFinished []domain.PlaybackFinishedEvent
	channelEmptied   []domain.ChannelEmptiedEvent
}

func (m *mockEventPublisher) PublishPlaybackFinished(event domain.PlaybackFinishedEvent) {
	m.playbackFinished = append(m.playbackFinished, event)
}

func (m *mockEventPublisher) PublishChannelEmptied(event domain.ChannelEmptiedEvent) {
	m.channelEmptied = append(m.channelEmptied, event)
}

// mockAudioProvider is mutex-protected because prefetches hit it from
// background goroutines.
type mockAudioProvider struct {
	mu           sync.Mutex
	searchResult *domain.Track
	searchErr    error
	streamErr    error
	sourceErr    error
	resolved     []*domain.Track
	sources      []*domain.Track
}

func (m *mockAudioProvider) Search(_ context.Context, _ string) (*domain.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResult, nil
}

func (m *mockAudioProvider) ResolveStream(
	_ context.Context,
	track *domain.Track,
) (domain.StreamInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.streamErr != nil {
		return domain.StreamInfo{}, m.streamErr
	}
	m.resolved = append(m.resolved, track)
	return domain.StreamInfo{StreamURL: "https://cdn.example.com/" + track.ID, Bitrate: 128}, nil
}

func (m *mockAudioProvider) AudioSource(
	_ context.Context,
	track *domain.Track,
	volume float64,
	_ *domain.StreamInfo,
) (ports.PlayableSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sourceErr != nil {
		return ports.PlayableSource{}, m.sourceErr
	}
	m.sources = append(m.sources, track)
	return ports.PlayableSource{
		StreamURL: "https://cdn.example.com/" + track.ID,
		Volume:    volume,
		Bitrate:   128,
	}, nil
}

func (m *mockAudioProvider) sourceCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sources)
}

// playbackFixture wires a PlaybackService with all-mock dependencies.
type playbackFixture struct {
	queues    *mockQueueRepository
	volumes   *mockVolumeRepository
	voice     *mockVoiceConnector
	occupancy *mockOccupancyProvider
	provider  *mockAudioProvider
	notifier  *mockNotifier
	publisher *mockEventPublisher
	service   *PlaybackService
}

func newPlaybackFixture() *playbackFixture {
	f := &playbackFixture{
		queues:    newMockQueueRepository(),
		volumes:   newMockVolumeRepository(),
		voice:     newMockVoiceConnector(),
		occupancy: &mockOccupancyProvider{humans: make(map[snowflake.ID]int)},
		provider:  &mockAudioProvider{},
		notifier:  &mockNotifier{},
		publisher: &mockEventPublisher{},
	}

	registry := NewProviderRegistry()
	registry.Register(domain.ProviderYouTube, f.provider)
	registry.Register(domain.ProviderSoundCloud, f.provider)

	f.service = NewPlaybackService(
		f.queues,
		f.volumes,
		f.voice,
		f.occupancy,
		registry,
		NewTrackSearchService(registry),
		f.notifier,
		f.publisher,
	)
	return f
}
