package infrastructure

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// DefaultEventBufferSize is the default buffer size for event channels.
const DefaultEventBufferSize = 100

// Compile-time checks that ChannelEventBus implements ports interfaces.
var (
	_ ports.EventPublisher  = (*ChannelEventBus)(nil)
	_ ports.EventSubscriber = (*ChannelEventBus)(nil)
)

// ChannelEventBus provides a channel-based event bus for async event handling.
// It implements both EventPublisher and EventSubscriber interfaces. Voice
// transport completion callbacks and gateway event handlers publish here, and
// the bus's own goroutines run the handlers, keeping queue advancement off
// the websocket read loop.
type ChannelEventBus struct {
	playbackFinished chan domain.PlaybackFinishedEvent
	channelEmptied   chan domain.ChannelEmptiedEvent

	playbackFinishedHandlers []func(context.Context, domain.PlaybackFinishedEvent)
	channelEmptiedHandlers   []func(context.Context, domain.ChannelEmptiedEvent)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
	mu     sync.RWMutex
}

// NewChannelEventBus creates a new ChannelEventBus with the given buffer size.
func NewChannelEventBus(bufferSize int) *ChannelEventBus {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	bus := &ChannelEventBus{
		playbackFinished: make(chan domain.PlaybackFinishedEvent, bufferSize),
		channelEmptied:   make(chan domain.ChannelEmptiedEvent, bufferSize),
		ctx:              ctx,
		cancel:           cancel,
	}

	bus.wg.Add(2)
	go bus.dispatchPlaybackFinished()
	go bus.dispatchChannelEmptied()

	return bus
}

func (b *ChannelEventBus) dispatchPlaybackFinished() {
	defer b.wg.Done()
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-b.playbackFinished:
			if !ok {
				return
			}
			b.mu.RLock()
			handlers := b.playbackFinishedHandlers
			b.mu.RUnlock()
			for _, handler := range handlers {
				handler(b.ctx, event)
			}
		}
	}
}

func (b *ChannelEventBus) dispatchChannelEmptied() {
	defer b.wg.Done()
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-b.channelEmptied:
			if !ok {
				return
			}
			b.mu.RLock()
			handlers := b.channelEmptiedHandlers
			b.mu.RUnlock()
			for _, handler := range handlers {
				handler(b.ctx, event)
			}
		}
	}
}

// --- EventPublisher interface ---

// PublishPlaybackFinished publishes a PlaybackFinishedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *ChannelEventBus) PublishPlaybackFinished(event domain.PlaybackFinishedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "PlaybackFinished")
		return
	}

	select {
	case b.playbackFinished <- event:
		slog.Debug("published event", "type", "PlaybackFinished", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "PlaybackFinished")
	}
}

// PublishChannelEmptied publishes a ChannelEmptiedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *ChannelEventBus) PublishChannelEmptied(event domain.ChannelEmptiedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "ChannelEmptied")
		return
	}

	select {
	case b.channelEmptied <- event:
		slog.Debug("published event", "type", "ChannelEmptied", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "ChannelEmptied")
	}
}

// --- EventSubscriber interface ---

// OnPlaybackFinished registers a handler for PlaybackFinishedEvent.
func (b *ChannelEventBus) OnPlaybackFinished(
	handler func(context.Context, domain.PlaybackFinishedEvent),
) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.playbackFinishedHandlers = append(b.playbackFinishedHandlers, handler)
}

// OnChannelEmptied registers a handler for ChannelEmptiedEvent.
func (b *ChannelEventBus) OnChannelEmptied(
	handler func(context.Context, domain.ChannelEmptiedEvent),
) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.channelEmptiedHandlers = append(b.channelEmptiedHandlers, handler)
}

// Close closes all event channels and stops dispatchers.
// After calling Close, publishing will no longer send events.
func (b *ChannelEventBus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()

	close(b.playbackFinished)
	close(b.channelEmptied)

	b.wg.Wait()

	slog.Debug("channel event bus closed")
}
