package command

import (
	"fmt"

	"github.com/keshon/partykit/internal/storage"
	"github.com/keshon/partykit/pkg/chat"
	"github.com/keshon/partykit/pkg/commands"
)

// Disable turns a command off for the current party. Owner only.
func Disable(store *storage.Storage) *commands.Command {
	return toggleCommand(store, "disable", true)
}

// Enable turns a previously disabled command back on. Owner only.
func Enable(store *storage.Storage) *commands.Command {
	return toggleCommand(store, "enable", false)
}

func toggleCommand(store *storage.Storage, name string, disabled bool) *commands.Command {
	return commands.New(name,
		func(c *commands.Context) error {
			target := c.Arg("command").(string)
			if c.Bot().Registry().Get(target) == nil {
				return commands.NewBadArgument(fmt.Sprintf("Command %q is not known.", target))
			}
			pm := c.Message().(*chat.PartyMessage)
			if err := store.SetCommandDisabled(pm.Party().ID(), target, disabled); err != nil {
				return err
			}
			return c.Reply(fmt.Sprintf("Command %q %sd.", target, name))
		},
		commands.WithDescription(name+" a command in this party"),
		commands.WithChecks(commands.PartyOnly(), commands.IsOwner()),
		commands.WithParameters(&commands.Parameter{
			Name:     "command",
			Required: true,
		}),
	)
}
