package infrastructure

import (
	"net/url"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

const (
	// DefaultStreamCacheSize bounds the number of resolved streams retained
	// per cache.
	DefaultStreamCacheSize = 128

	// DefaultStreamTTL is how long a resolved stream URL is trusted when the
	// URL itself carries no expiry information.
	DefaultStreamTTL = 15 * time.Minute

	// expirySafetyMargin is subtracted from a signed URL's own deadline so
	// that a stream handed to the player does not expire mid-handoff.
	expirySafetyMargin = time.Minute
)

type cacheEntry struct {
	info      domain.StreamInfo
	expiresAt time.Time
}

// StreamCache is a bounded, expiring cache of resolved stream URLs keyed by
// track page URL. Capacity is enforced by LRU eviction; entries additionally
// expire at the earlier of the configured TTL and the deadline embedded in
// the signed stream URL itself.
type StreamCache struct {
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration
	now     func() time.Time
}

// NewStreamCache creates a StreamCache with the given capacity and TTL.
// Non-positive arguments fall back to the defaults.
func NewStreamCache(size int, ttl time.Duration) *StreamCache {
	if size <= 0 {
		size = DefaultStreamCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultStreamTTL
	}

	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		// lru.New only fails for non-positive sizes, which are handled above.
		panic(err)
	}

	return &StreamCache{
		entries: entries,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached stream for the key if present and not expired.
// Expired entries are removed on access.
func (c *StreamCache) Get(key string) (domain.StreamInfo, bool) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return domain.StreamInfo{}, false
	}
	if !c.now().Before(entry.expiresAt) {
		c.entries.Remove(key)
		return domain.StreamInfo{}, false
	}
	return entry.info, true
}

// Put stores a resolved stream. The entry's deadline is the earlier of
// now+TTL and the expiry signed into the stream URL, less a safety margin.
func (c *StreamCache) Put(key string, info domain.StreamInfo) {
	expiresAt := c.now().Add(c.ttl)
	if urlDeadline, ok := streamURLExpiry(info.StreamURL); ok {
		urlDeadline = urlDeadline.Add(-expirySafetyMargin)
		if urlDeadline.Before(expiresAt) {
			expiresAt = urlDeadline
		}
	}
	c.entries.Add(key, cacheEntry{info: info, expiresAt: expiresAt})
}

// Len returns the number of cached entries, including any not yet observed
// to be expired.
func (c *StreamCache) Len() int {
	return c.entries.Len()
}

// streamURLExpiry extracts the unix-seconds deadline that media CDNs sign
// into stream URLs as an "expire" query parameter.
func streamURLExpiry(rawURL string) (time.Time, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return time.Time{}, false
	}
	raw := parsed.Query().Get("expire")
	if raw == "" {
		return time.Time{}, false
	}
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(seconds, 0), true
}
