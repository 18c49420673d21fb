package infrastructure

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

func newOccupancyFixture(t *testing.T) *StateOccupancyProvider {
	t.Helper()

	state := discordgo.NewState()
	state.User = &discordgo.User{ID: "42"}

	err := state.GuildAdd(&discordgo.Guild{
		ID: "1",
		VoiceStates: []*discordgo.VoiceState{
			{GuildID: "1", UserID: "42", ChannelID: "100"}, // the bot itself
			{GuildID: "1", UserID: "7", ChannelID: "100"},  // human, cached
			{GuildID: "1", UserID: "8", ChannelID: "100"},  // bot, cached
			{GuildID: "1", UserID: "9", ChannelID: "100"},  // not in member cache
			{GuildID: "1", UserID: "10", ChannelID: "200"}, // human, other channel
		},
	})
	if err != nil {
		t.Fatalf("failed to seed guild state: %v", err)
	}

	members := []*discordgo.Member{
		{GuildID: "1", User: &discordgo.User{ID: "7"}},
		{GuildID: "1", User: &discordgo.User{ID: "8", Bot: true}},
		{GuildID: "1", User: &discordgo.User{ID: "10"}},
	}
	for _, member := range members {
		if err := state.MemberAdd(member); err != nil {
			t.Fatalf("failed to seed member state: %v", err)
		}
	}

	return NewStateOccupancyProvider(&discordgo.Session{State: state})
}

func TestStateOccupancyProvider_CountsHumansOnly(t *testing.T) {
	provider := newOccupancyFixture(t)

	// The bot itself and the cached bot member are excluded; the member
	// missing from the cache counts as human.
	if got := provider.HumanCount(snowflake.ID(1), snowflake.ID(100)); got != 2 {
		t.Errorf("expected 2 humans in channel 100, got %d", got)
	}

	if got := provider.HumanCount(snowflake.ID(1), snowflake.ID(200)); got != 1 {
		t.Errorf("expected 1 human in channel 200, got %d", got)
	}

	if got := provider.HumanCount(snowflake.ID(1), snowflake.ID(300)); got != 0 {
		t.Errorf("expected empty channel 300, got %d", got)
	}
}

func TestStateOccupancyProvider_UnknownGuildCountsAsOccupied(t *testing.T) {
	provider := newOccupancyFixture(t)

	// Missing guild state must never read as an empty channel, or a stale
	// cache could disconnect an active session.
	if got := provider.HumanCount(snowflake.ID(99), snowflake.ID(100)); got == 0 {
		t.Error("expected unknown guild state to report the channel as occupied")
	}
}
