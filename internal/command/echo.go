package command

import "github.com/keshon/partykit/pkg/commands"

// Echo repeats the rest of the message back through the originating channel.
func Echo() *commands.Command {
	return commands.New("echo",
		func(c *commands.Context) error {
			return c.Reply(c.Arg("text").(string))
		},
		commands.WithDescription("Repeat a message back"),
		commands.WithAliases("say"),
		commands.WithParameters(&commands.Parameter{
			Name:     "text",
			Required: true,
			Rest:     true,
		}),
	)
}
