package usecases

import (
	"math"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
)

// VolumeService manages per-guild playback volume. Volume is exposed to
// users as 0-100 and stored as a 0.0-1.0 gain. A change takes effect from
// the next track; the gain is baked into the encode pipeline at start.
type VolumeService struct {
	volumes ports.VolumeRepository
}

// NewVolumeService creates a new VolumeService.
func NewVolumeService(volumes ports.VolumeRepository) *VolumeService {
	return &VolumeService{volumes: volumes}
}

// Set stores the guild's volume as a percentage.
func (s *VolumeService) Set(guildID snowflake.ID, percent int) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidVolume
	}
	s.volumes.Set(guildID, float64(percent)/100)
	return nil
}

// Get returns the guild's volume as a percentage.
func (s *VolumeService) Get(guildID snowflake.ID) int {
	return int(math.Round(s.volumes.Get(guildID) * 100))
}
