package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy for provider and voice failures. Handlers render these as
// short, non-technical messages; internal details are logged, not shown.
var (
	// ErrNotFound is returned when a query or track does not resolve to playable media.
	ErrNotFound = errors.New("no playable media was found")

	// ErrAccessDenied is returned when the platform rejected the request,
	// usually platform-side bot detection.
	ErrAccessDenied = errors.New("the platform rejected the request (access denied)")

	// ErrStreamUnavailable is returned when metadata resolved but no playable
	// audio format could be extracted.
	ErrStreamUnavailable = errors.New("no playable audio stream was found")

	// ErrCannotJoin is returned when the bot cannot join or move to a voice channel.
	ErrCannotJoin = errors.New("unable to join the voice channel")

	// ErrNotConnected is returned when an operation requires an active voice session.
	ErrNotConnected = errors.New("not connected to a voice channel")

	// ErrNotPlaying is returned when no track is currently playing.
	ErrNotPlaying = errors.New("nothing is currently playing")

	// ErrNotPaused is returned when trying to resume while not paused.
	ErrNotPaused = errors.New("nothing is paused")
)

// ProviderError is the catch-all for backend failures that do not map onto
// one of the sentinel errors above. It preserves the backend's message.
type ProviderError struct {
	Provider Provider
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("error accessing %s: %s", e.Provider.Display(), e.Message)
}
