package usecases

import (
	"context"

	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// TrackSearchService resolves user queries into tracks via the registered
// providers.
type TrackSearchService struct {
	registry *ProviderRegistry
}

// NewTrackSearchService creates a new TrackSearchService.
func NewTrackSearchService(registry *ProviderRegistry) *TrackSearchService {
	return &TrackSearchService{registry: registry}
}

// Search picks a provider for the query and resolves it into a track.
// providerName may be a platform name, "auto", or empty; URL queries are
// routed to the platform that hosts them.
func (s *TrackSearchService) Search(
	ctx context.Context,
	providerName, query string,
) (*domain.Track, error) {
	provider := domain.NormalizeProvider(providerName, query)

	impl, err := s.registry.Get(provider)
	if err != nil {
		return nil, err
	}

	return impl.Search(ctx, query)
}
