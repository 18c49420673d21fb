package infrastructure

import (
	"context"

	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
	"golang.org/x/sync/singleflight"
)

// resolveFunc performs a fresh stream resolution for a track.
type resolveFunc func(ctx context.Context, track *domain.Track) (domain.StreamInfo, error)

// CachedResolver layers a StreamCache and in-flight deduplication over a
// resolve function. Concurrent resolutions of the same track page URL share
// one underlying fetch; its result, or its failure, is delivered to every
// waiter. Failures are never cached, so a later request retries from scratch.
type CachedResolver struct {
	cache *StreamCache
	group singleflight.Group
	fetch resolveFunc
}

// NewCachedResolver creates a new CachedResolver.
func NewCachedResolver(cache *StreamCache, fetch resolveFunc) *CachedResolver {
	return &CachedResolver{cache: cache, fetch: fetch}
}

// Resolve returns the stream for the track, from cache when possible.
func (r *CachedResolver) Resolve(
	ctx context.Context,
	track *domain.Track,
) (domain.StreamInfo, error) {
	key := track.URL

	if info, ok := r.cache.Get(key); ok {
		return info, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		// A resolution that completed while this call was queued behind the
		// singleflight lock has already populated the cache.
		if info, ok := r.cache.Get(key); ok {
			return info, nil
		}

		info, err := r.fetch(ctx, track)
		if err != nil {
			return nil, err
		}
		r.cache.Put(key, info)
		return info, nil
	})
	if err != nil {
		return domain.StreamInfo{}, err
	}
	return v.(domain.StreamInfo), nil
}

// Prime stores an already-resolved stream, typically obtained as a byproduct
// of a metadata extraction.
func (r *CachedResolver) Prime(track *domain.Track, info domain.StreamInfo) {
	r.cache.Put(track.URL, info)
}
