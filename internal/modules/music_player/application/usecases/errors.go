package usecases

import "errors"

// User-facing errors for the music player module.
var (
	// ErrUserNotInVoice is returned when the user is not in a voice channel.
	ErrUserNotInVoice = errors.New("you must be in a voice channel")

	// ErrAlreadyPaused is returned when trying to pause while already paused.
	ErrAlreadyPaused = errors.New("playback is already paused")

	// ErrUnknownProvider is returned when no provider is registered for the
	// requested platform.
	ErrUnknownProvider = errors.New("unknown audio provider")

	// ErrInvalidVolume is returned for volume values outside 0-100.
	ErrInvalidVolume = errors.New("volume must be between 0 and 100")

	// ErrQueueEmpty is returned when the queue has no pending tracks.
	ErrQueueEmpty = errors.New("the queue is empty")
)
