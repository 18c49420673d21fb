package stats

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/harmony/internal/bot"
	"github.com/sglre6355/harmony/internal/modules/stats/application"
	"github.com/sglre6355/harmony/internal/modules/stats/presentation"
)

func init() {
	bot.Register(&StatsModule{})
}

// StatsModule provides the /stats command.
type StatsModule struct {
	handler *presentation.StatsHandler
}

// Name returns the module name.
func (m *StatsModule) Name() string {
	return "stats"
}

// Commands returns the slash commands for this module.
func (m *StatsModule) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "stats",
			Description: "Show bot health and process statistics",
		},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *StatsModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"stats": m.handler.Handle,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *StatsModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *StatsModule) Init(deps bot.ModuleDependencies) error {
	m.handler = presentation.NewStatsHandler(application.NewStatsInteractor())
	return nil
}

// Shutdown cleans up module resources.
func (m *StatsModule) Shutdown() error {
	return nil
}
