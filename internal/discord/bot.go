// Package discord is the transport adapter: it turns incoming Discord
// messages into chat messages (DMs become friend messages, guild-channel
// messages become party messages) and feeds them to the command dispatcher.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/keshon/partykit/internal/config"
	"github.com/keshon/partykit/internal/storage"
	"github.com/keshon/partykit/pkg/chat"
	"github.com/keshon/partykit/pkg/commands"
)

// Bot connects a command bot to Discord.
type Bot struct {
	cfg     *config.Config
	bot     *commands.Bot
	store   *storage.Storage
	dg      *discordgo.Session
	baseCtx context.Context
}

// NewBot creates the adapter. The storage may be nil; the disabled-command
// check and history logging are skipped then.
func NewBot(cfg *config.Config, bot *commands.Bot, store *storage.Storage) *Bot {
	b := &Bot{cfg: cfg, bot: bot, store: store}
	if store != nil {
		bot.AddCheck(b.storageDisabledCheck)
		bot.SetAfterInvoke(b.LogInvocation)
	}
	return b
}

// Run opens the Discord session and dispatches messages until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg
	b.baseCtx = ctx

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, closing Discord session")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("connected to Discord")
}

// onMessageCreate classifies the message's origin and hands it to the
// dispatcher. Each message gets its own goroutine so a slow handler cannot
// stall the gateway read loop or other commands.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	ch, err := s.State.Channel(m.ChannelID)
	if err != nil {
		if ch, err = s.Channel(m.ChannelID); err != nil {
			log.Warn().Err(err).Str("channel", m.ChannelID).Msg("failed to resolve channel")
			return
		}
	}

	client := &session{s: s}
	var msg chat.Message
	if ch.Type == discordgo.ChannelTypeDM {
		msg = chat.NewFriendMessage(client, &friend{user: user{u: m.Author}, s: s}, m.Content)
	} else {
		party := &channelParty{s: s, channelID: m.ChannelID, guildID: m.GuildID}
		msg = chat.NewPartyMessage(client, party, &user{u: m.Author}, m.Content)
	}

	go b.bot.Dispatch(b.baseCtx, msg)
}

// storageDisabledCheck rejects commands disabled for the party in storage.
// Runs as a global check; storage errors fail open.
func (b *Bot) storageDisabledCheck(c *commands.Context) error {
	pm, ok := c.Message().(*chat.PartyMessage)
	if !ok || c.Command() == nil {
		return nil
	}
	disabled, err := b.store.IsCommandDisabled(pm.Party().ID(), c.Command().Name())
	if err != nil {
		log.Warn().Err(err).Str("party", pm.Party().ID()).Msg("disabled-command lookup failed")
		return nil
	}
	if disabled {
		return commands.NewDisabledCommand(fmt.Sprintf("%s command is disabled in this party", c.Command().Name()))
	}
	return nil
}

// LogInvocation records a successful invocation in the party history. Wired
// as the bot's after-invoke hook by NewBot.
func (b *Bot) LogInvocation(c *commands.Context) {
	if b.store == nil || c.Command() == nil {
		return
	}
	pm, ok := c.Message().(*chat.PartyMessage)
	if !ok {
		return
	}
	author := c.Author()
	if err := b.store.LogCommand(pm.Party().ID(), author.ID(), author.DisplayName(), c.Command().Name()); err != nil {
		log.Warn().Err(err).Str("command", c.Command().Name()).Msg("failed to log command")
	}
}
