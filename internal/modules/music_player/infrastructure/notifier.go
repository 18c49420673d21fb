package infrastructure

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/harmony/internal/modules/music_player/application/ports"
	"github.com/sglre6355/harmony/internal/modules/music_player/domain"
)

// Embed colors.
const (
	colorGreen = 0x2ECC71
	colorRed   = 0xE74C3C
)

// Notifier sends playback notifications to Discord channels.
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier creates a new Notifier.
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

// SendNowPlaying sends a "Now Playing" embed to the channel.
func (n *Notifier) SendNowPlaying(channelID snowflake.ID, track *domain.Track) error {
	embed := n.trackEmbed("Now Playing", track, colorGreen)
	_, err := n.session.ChannelMessageSendEmbed(channelID.String(), embed)
	return err
}

// SendError sends an error embed to the channel.
func (n *Notifier) SendError(channelID snowflake.ID, title, description string) error {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorRed,
	}

	_, err := n.session.ChannelMessageSendEmbed(channelID.String(), embed)
	return err
}

func (n *Notifier) trackEmbed(header string, track *domain.Track, color int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: header,
		},
		Title: domain.EscapeMarkdown(track.Title),
		URL:   track.URL,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Duration",
				Value:  track.FormattedLength(),
				Inline: true,
			},
			{
				Name:   "Source",
				Value:  track.Provider.Display(),
				Inline: true,
			},
		},
	}

	if track.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
			URL: track.ThumbnailURL,
		}
	}

	if track.RequestedByName != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    fmt.Sprintf("Requested by %s", track.RequestedByName),
			IconURL: track.RequestedByAvatarURL,
		}
	}

	return embed
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)
