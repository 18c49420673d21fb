package infrastructure

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// YtdlpProvider is an AudioProvider backed by yt-dlp. One implementation
// serves every supported platform; instances differ only in the provider
// label and search prefix.
type YtdlpProvider struct {
	provider     domain.Provider
	searchPrefix string
	client       *YtdlpClient
	resolver     *CachedResolver
}

func newYtdlpProvider(
	provider domain.Provider,
	searchPrefix string,
	client *YtdlpClient,
	cacheSize int,
	cacheTTL time.Duration,
) *YtdlpProvider {
	p := &YtdlpProvider{
		provider:     provider,
		searchPrefix: searchPrefix,
		client:       client,
	}
	p.resolver = NewCachedResolver(NewStreamCache(cacheSize, cacheTTL), p.fetchStream)
	return p
}

// NewYoutubeProvider creates the YouTube-flavoured YtdlpProvider.
func NewYoutubeProvider(
	client *YtdlpClient,
	cacheSize int,
	cacheTTL time.Duration,
) *YtdlpProvider {
	return newYtdlpProvider(domain.ProviderYouTube, "ytsearch:", client, cacheSize, cacheTTL)
}

// NewSoundCloudProvider creates the SoundCloud-flavoured YtdlpProvider.
func NewSoundCloudProvider(
	client *YtdlpClient,
	cacheSize int,
	cacheTTL time.Duration,
) *YtdlpProvider {
	return newYtdlpProvider(domain.ProviderSoundCloud, "scsearch:", client, cacheSize, cacheTTL)
}

// Search resolves a query into track metadata. The extraction also yields a
// playable stream, which is stored in the cache so the first ResolveStream
// for the track is usually free.
func (p *YtdlpProvider) Search(ctx context.Context, query string) (*domain.Track, error) {
	info, err := p.client.Extract(ctx, p.searchQuery(query))
	if err != nil {
		return nil, p.wrapError(err)
	}

	track := &domain.Track{
		ID:           info.ID,
		Title:        info.Title,
		URL:          info.WebpageURL,
		Length:       time.Duration(info.Duration * float64(time.Second)),
		Provider:     p.provider,
		ThumbnailURL: info.Thumbnail,
	}
	if track.URL == "" {
		return nil, domain.ErrNotFound
	}
	if track.Title == "" {
		track.Title = "Unknown"
	}

	if stream, err := selectStream(info); err == nil {
		track.StreamBitrate = stream.Bitrate
		p.resolver.Prime(track, stream)
	}

	return track, nil
}

// ResolveStream returns a playable stream locator for the track.
func (p *YtdlpProvider) ResolveStream(
	ctx context.Context,
	track *domain.Track,
) (domain.StreamInfo, error) {
	info, err := p.resolver.Resolve(ctx, track)
	if err != nil {
		return domain.StreamInfo{}, p.wrapError(err)
	}
	return info, nil
}

// AudioSource builds a playable source for the track at the given volume,
// reusing stream if the caller already resolved one.
func (p *YtdlpProvider) AudioSource(
	ctx context.Context,
	track *domain.Track,
	volume float64,
	stream *domain.StreamInfo,
) (ports.PlayableSource, error) {
	if stream == nil {
		resolved, err := p.ResolveStream(ctx, track)
		if err != nil {
			return ports.PlayableSource{}, err
		}
		stream = &resolved
	}

	bitrate := stream.Bitrate
	if bitrate == 0 {
		bitrate = track.StreamBitrate
	}

	return ports.PlayableSource{
		StreamURL: stream.StreamURL,
		Volume:    volume,
		Bitrate:   bitrate,
	}, nil
}

// searchQuery turns free text into the platform's search expression. Direct
// links pass through untouched.
func (p *YtdlpProvider) searchQuery(query string) string {
	if strings.HasPrefix(query, "http") {
		return query
	}
	return p.searchPrefix + query
}

func (p *YtdlpProvider) fetchStream(
	ctx context.Context,
	track *domain.Track,
) (domain.StreamInfo, error) {
	info, err := p.client.Extract(ctx, track.URL)
	if err != nil {
		return domain.StreamInfo{}, err
	}
	return selectStream(info)
}

// wrapError keeps domain sentinels intact and folds everything else into a
// ProviderError so user-facing messages can name the platform.
func (p *YtdlpProvider) wrapError(err error) error {
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrAccessDenied) ||
		errors.Is(err, domain.ErrStreamUnavailable) {
		return err
	}
	return &domain.ProviderError{Provider: p.provider, Message: err.Error()}
}

// selectStream picks the stream URL to play from an extraction. Audio-capable
// formats that are not HLS playlists are preferred, best bitrate first; after
// that any audio-capable format, then the extractor's own top-level URL.
func selectStream(info *ExtractedInfo) (domain.StreamInfo, error) {
	var best, anyAudio *ExtractedFormat
	for i := range info.Formats {
		f := &info.Formats[i]
		if f.URL == "" || f.ACodec == "none" {
			continue
		}
		if anyAudio == nil {
			anyAudio = f
		}
		if isHLS(f.URL, f.Protocol) {
			continue
		}
		if best == nil || f.ABR > best.ABR {
			best = f
		}
	}

	switch {
	case best != nil:
		return domain.StreamInfo{StreamURL: best.URL, Bitrate: int(best.ABR)}, nil
	case anyAudio != nil:
		return domain.StreamInfo{StreamURL: anyAudio.URL, Bitrate: int(anyAudio.ABR)}, nil
	case info.URL != "":
		return domain.StreamInfo{StreamURL: info.URL, Bitrate: int(info.ABR)}, nil
	}
	return domain.StreamInfo{}, domain.ErrStreamUnavailable
}

// isHLS reports whether a stream candidate is an HLS playlist, which the
// ffmpeg pipeline does not ingest reliably over long tracks.
func isHLS(url, protocol string) bool {
	return strings.Contains(protocol, "m3u8") || strings.HasSuffix(url, ".m3u8")
}

// Ensure YtdlpProvider implements AudioProvider.
var _ ports.AudioProvider = (*YtdlpProvider)(nil)
