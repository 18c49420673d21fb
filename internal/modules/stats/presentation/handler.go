package presentation

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/harmony/internal/bot"
	"github.com/sglre6355/harmony/internal/modules/stats/application"
)

// StatsHandler handles the /stats command.
type StatsHandler struct {
	interactor *application.StatsInteractor
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(interactor *application.StatsInteractor) *StatsHandler {
	return &StatsHandler{interactor: interactor}
}

// Handle gathers process and gateway statistics and responds with an embed.
func (h *StatsHandler) Handle(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	snap := h.interactor.Execute(context.Background())

	embed := &discordgo.MessageEmbed{
		Title: "Bot Stats",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Uptime", Value: snap.Uptime.String(), Inline: true},
			{Name: "Guilds", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
			{
				Name:   "Gateway Latency",
				Value:  fmt.Sprintf("%dms", s.HeartbeatLatency().Milliseconds()),
				Inline: true,
			},
			{Name: "CPU", Value: fmt.Sprintf("%.1f%%", snap.CPUPercent), Inline: true},
			{Name: "Heap", Value: fmt.Sprintf("%.1f MiB", snap.HeapMB), Inline: true},
			{Name: "Goroutines", Value: fmt.Sprintf("%d", snap.Goroutines), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: snap.GoVersion,
		},
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}
