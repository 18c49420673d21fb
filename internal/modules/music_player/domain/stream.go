package domain

// StreamInfo is a resolved, time-bounded playable locator for a Track.
// The stream URL is often itself an expiring signed URL, so StreamInfo must
// never be handed to the playback sink without passing freshness validation
// in the provider's stream cache. It is never persisted beyond process memory.
type StreamInfo struct {
	StreamURL string
	Bitrate   int // kbps, 0 means unknown
}
