package usecases

import (
	"fmt"

	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// ProviderRegistry maps providers to their AudioProvider implementations.
// Registration happens once at module init; lookups are read-only afterwards,
// so no locking is needed.
type ProviderRegistry struct {
	providers map[domain.Provider]ports.AudioProvider
}

// NewProviderRegistry creates a new ProviderRegistry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[domain.Provider]ports.AudioProvider),
	}
}

// Register adds a provider implementation.
func (r *ProviderRegistry) Register(provider domain.Provider, impl ports.AudioProvider) {
	r.providers[provider] = impl
}

// Get returns the implementation for the provider.
func (r *ProviderRegistry) Get(provider domain.Provider) (ports.AudioProvider, error) {
	impl, ok := r.providers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	return impl, nil
}
