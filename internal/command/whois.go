package command

import (
	"fmt"

	"github.com/keshon/partykit/pkg/chat"
	"github.com/keshon/partykit/pkg/commands"
)

// Whois resolves a party member by ID or display name.
func Whois() *commands.Command {
	return commands.New("whois",
		func(c *commands.Context) error {
			member := c.Arg("member").(chat.PartyMember)
			return c.Reply(fmt.Sprintf("%s (id %s)", member.DisplayName(), member.ID()))
		},
		commands.WithDescription("Look up a party member"),
		commands.WithChecks(commands.PartyOnly()),
		commands.WithParameters(&commands.Parameter{
			Name:       "member",
			Required:   true,
			Converters: []commands.Converter{commands.MemberConverter{}},
		}),
	)
}
