// Package command holds the stock commands shipped with the demo bot.
package command

import (
	"time"

	"github.com/keshon/partykit/pkg/commands"
)

// Ping replies with a liveness check. Cooled down per user so it cannot be
// spammed.
func Ping() *commands.Command {
	return commands.New("ping",
		func(c *commands.Context) error {
			return c.Reply("Pong!")
		},
		commands.WithDescription("Check that the bot is alive"),
		commands.WithCooldown(1, 5*time.Second, commands.BucketUser),
	)
}
