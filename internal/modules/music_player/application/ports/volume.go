package ports

import (
	"github.com/disgoorg/snowflake/v2"
)

// VolumeRepository stores the per-guild playback volume. Entries are never
// deleted; a stale entry for an inactive guild is harmless.
type VolumeRepository interface {
	// Get returns the guild's volume, or the default if unset.
	Get(guildID snowflake.ID) float64

	// Set stores the volume unconditionally. Range validation is the
	// caller's responsibility.
	Set(guildID snowflake.ID, volume float64)
}
