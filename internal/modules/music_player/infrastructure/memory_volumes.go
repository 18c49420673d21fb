package infrastructure

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
)

// DefaultVolume is the playback volume used for guilds that have never set one.
const DefaultVolume = 1.0

// MemoryVolumeRepository is an in-memory implementation of VolumeRepository.
type MemoryVolumeRepository struct {
	mu      sync.RWMutex
	volumes map[snowflake.ID]float64
}

// NewMemoryVolumeRepository creates a new MemoryVolumeRepository.
func NewMemoryVolumeRepository() *MemoryVolumeRepository {
	return &MemoryVolumeRepository{
		volumes: make(map[snowflake.ID]float64),
	}
}

// Get returns the guild's volume, or DefaultVolume if the guild has never set one.
func (r *MemoryVolumeRepository) Get(guildID snowflake.ID) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	volume, ok := r.volumes[guildID]
	if !ok {
		return DefaultVolume
	}
	return volume
}

// Set stores the guild's volume.
func (r *MemoryVolumeRepository) Set(guildID snowflake.ID, volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.volumes[guildID] = volume
}

// Ensure MemoryVolumeRepository implements VolumeRepository.
var _ ports.VolumeRepository = (*MemoryVolumeRepository)(nil)
