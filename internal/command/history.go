package command

import (
	"fmt"
	"strings"

	"github.com/keshon/partykit/internal/storage"
	"github.com/keshon/partykit/pkg/chat"
	"github.com/keshon/partykit/pkg/commands"
	"github.com/keshon/partykit/pkg/util"
)

// History lists the party's recent command invocations from storage.
func History(store *storage.Storage) *commands.Command {
	return commands.New("history",
		func(c *commands.Context) error {
			pm := c.Message().(*chat.PartyMessage)
			records, err := store.CommandHistory(pm.Party().ID())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return c.Reply("No commands have been used here yet.")
			}
			var b strings.Builder
			for _, rec := range records {
				fmt.Fprintf(&b, "%s  %s  %s%s\n",
					util.FormatDateTpl(rec.Datetime, "DD.MM.YYYY hh:mm"),
					rec.Username, c.Prefix(), rec.Command)
			}
			return c.Reply(b.String())
		},
		commands.WithDescription("Show recent command usage in this party"),
		commands.WithChecks(commands.PartyOnly()),
	)
}
