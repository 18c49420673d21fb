package music_player

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/bot"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
	"github.com/sglre6355/harmony/internal/modules/music_player/infrastructure"
	"github.com/sglre6355/harmony/internal/modules/music_player/presentation"
)

func init() {
	bot.Register(&MusicPlayerModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*MusicPlayerModule)(nil)

// MusicPlayerModule provides music playback commands.
type MusicPlayerModule struct {
	config *Config

	handlers      *presentation.Handlers
	eventHandlers *presentation.EventHandlers

	eventBus        *infrastructure.ChannelEventBus
	playbackHandler *infrastructure.PlaybackEventHandler
	voiceManager    *infrastructure.VoiceManager
}

// Name returns the module name.
func (m *MusicPlayerModule) Name() string {
	return "music_player"
}

// Commands returns the slash commands for this module.
func (m *MusicPlayerModule) Commands() []*discordgo.ApplicationCommand {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *MusicPlayerModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"play":   m.handlers.HandlePlay,
		"skip":   m.handlers.HandleSkip,
		"pause":  m.handlers.HandlePause,
		"resume": m.handlers.HandleResume,
		"stop":   m.handlers.HandleStop,
		"leave":  m.handlers.HandleLeave,
		"queue":  m.handlers.HandleQueue,
		"volume": m.handlers.HandleVolume,
	}
}

// EventHandlers returns the gateway event handlers for this module.
func (m *MusicPlayerModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(s *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			if m.eventHandlers != nil {
				m.eventHandlers.HandleVoiceStateUpdate(s, event)
			}
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *MusicPlayerModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init wires the module together.
func (m *MusicPlayerModule) Init(deps bot.ModuleDependencies) error {
	if m.config == nil {
		m.config = &Config{StreamCacheTTL: infrastructure.DefaultStreamTTL}
	}

	m.eventBus = infrastructure.NewChannelEventBus(infrastructure.DefaultEventBufferSize)

	client := infrastructure.NewYtdlpClient(infrastructure.ExtractionConfig{
		UserAgent:          m.config.UserAgent,
		Referer:            m.config.Referer,
		Origin:             m.config.Origin,
		AcceptLanguage:     m.config.AcceptLanguage,
		PlayerClient:       m.config.PlayerClient,
		CookieFile:         m.config.CookieFile,
		CookiesFromBrowser: m.config.CookiesFromBrowser,
		Debug:              m.config.ExtractionDebug,
	})

	registry := usecases.NewProviderRegistry()
	registry.Register(domain.ProviderYouTube, infrastructure.NewYoutubeProvider(
		client, infrastructure.DefaultStreamCacheSize, m.config.StreamCacheTTL,
	))
	registry.Register(domain.ProviderSoundCloud, infrastructure.NewSoundCloudProvider(
		client, infrastructure.DefaultStreamCacheSize, m.config.StreamCacheTTL,
	))

	queues := infrastructure.NewMemoryQueueRepository()
	volumes := infrastructure.NewMemoryVolumeRepository()
	m.voiceManager = infrastructure.NewVoiceManager(deps.Session)
	occupancy := infrastructure.NewStateOccupancyProvider(deps.Session)
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session)
	notifier := infrastructure.NewNotifier(deps.Session)

	search := usecases.NewTrackSearchService(registry)
	playback := usecases.NewPlaybackService(
		queues,
		volumes,
		m.voiceManager,
		occupancy,
		registry,
		search,
		notifier,
		m.eventBus,
	)
	queue := usecases.NewQueueService(queues)
	volume := usecases.NewVolumeService(volumes)

	m.playbackHandler = infrastructure.NewPlaybackEventHandler(playback, m.eventBus)
	m.playbackHandler.Start()

	botID, err := snowflake.Parse(deps.Session.State.User.ID)
	if err != nil {
		return err
	}

	m.handlers = presentation.NewHandlers(playback, queue, volume, voiceState)
	m.eventHandlers = presentation.NewEventHandlers(botID, m.eventBus)

	slog.Info("music_player module initialized")

	return nil
}

// Shutdown cleans up module resources.
func (m *MusicPlayerModule) Shutdown() error {
	if m.eventBus != nil {
		m.eventBus.Close()
	}
	return nil
}
