package infrastructure

import (
	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
)

// StateOccupancyProvider counts voice channel members from discordgo's
// state cache.
type StateOccupancyProvider struct {
	session *discordgo.Session
}

// NewStateOccupancyProvider creates a new StateOccupancyProvider.
func NewStateOccupancyProvider(session *discordgo.Session) *StateOccupancyProvider {
	return &StateOccupancyProvider{
		session: session,
	}
}

// HumanCount returns the number of non-bot members in the channel. A member
// whose bot flag cannot be determined counts as human, so an incomplete
// member cache never triggers a premature teardown.
func (p *StateOccupancyProvider) HumanCount(guildID, channelID snowflake.ID) int {
	guild, err := p.session.State.Guild(guildID.String())
	if err != nil {
		// Occupancy is unknown without cached guild state. Report the
		// channel as occupied so missing data never tears a session down.
		return 1
	}

	selfID := ""
	if p.session.State.User != nil {
		selfID = p.session.State.User.ID
	}

	count := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != channelID.String() || vs.UserID == selfID {
			continue
		}
		member, err := p.session.State.Member(guildID.String(), vs.UserID)
		if err != nil || member.User == nil || !member.User.Bot {
			count++
		}
	}
	return count
}

// Ensure StateOccupancyProvider implements OccupancyProvider.
var _ ports.OccupancyProvider = (*StateOccupancyProvider)(nil)
