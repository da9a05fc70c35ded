package command

import (
	"github.com/keshon/partykit/internal/storage"
	"github.com/keshon/partykit/pkg/commands"
)

// RegisterAll wires the stock commands into the bot. The dice roller ships
// as an extension so it can be unloaded and reloaded at runtime.
func RegisterAll(bot *commands.Bot, store *storage.Storage) error {
	stock := []*commands.Command{
		Ping(),
		Echo(),
		Whois(),
	}
	if store != nil {
		stock = append(stock, History(store), Disable(store), Enable(store))
	}
	for _, c := range stock {
		if err := bot.Register(c); err != nil {
			return err
		}
	}

	bot.RegisterExtension("dice", commands.Extension{
		Setup: func(b *commands.Bot) error {
			return b.Register(Roll())
		},
		Teardown: func(b *commands.Bot) error {
			b.Registry().Unregister("roll")
			return nil
		},
	})
	return bot.LoadExtension("dice")
}
