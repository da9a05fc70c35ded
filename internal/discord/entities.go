package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/partykit/pkg/chat"
)

// session adapts a discordgo session to chat.Client.
type session struct {
	s *discordgo.Session
}

func (c *session) Self() chat.Author {
	if c.s.State == nil || c.s.State.User == nil {
		return nil
	}
	return &user{u: c.s.State.User}
}

// user adapts a Discord user to chat.Author / chat.PartyMember.
type user struct {
	u *discordgo.User
}

func (m *user) ID() string { return m.u.ID }

func (m *user) DisplayName() string {
	if m.u.GlobalName != "" {
		return m.u.GlobalName
	}
	return m.u.Username
}

// friend adapts a Discord user to chat.Friend: sending goes through the DM
// channel with that user.
type friend struct {
	user
	s *discordgo.Session
}

func (f *friend) Send(ctx context.Context, content string) error {
	ch, err := f.s.UserChannelCreate(f.u.ID, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	_, err = f.s.ChannelMessageSend(ch.ID, content, discordgo.WithContext(ctx))
	return err
}

// channelParty adapts a guild channel to chat.Party: sending broadcasts to
// the channel, and the guild member list stands in for the party roster.
type channelParty struct {
	s         *discordgo.Session
	channelID string
	guildID   string
}

func (p *channelParty) ID() string { return p.channelID }

func (p *channelParty) Members() []chat.PartyMember {
	guild, err := p.s.State.Guild(p.guildID)
	if err != nil {
		return nil
	}
	members := make([]chat.PartyMember, 0, len(guild.Members))
	for _, m := range guild.Members {
		if m.User == nil {
			continue
		}
		members = append(members, &user{u: m.User})
	}
	return members
}

func (p *channelParty) Send(ctx context.Context, content string) error {
	_, err := p.s.ChannelMessageSend(p.channelID, content, discordgo.WithContext(ctx))
	return err
}
