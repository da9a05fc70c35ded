package commands

import (
	"context"

	"github.com/keshon/partykit/pkg/chat"
)

// Context carries one command invocation: the message that triggered it, the
// resolved command, and the converted arguments. It is created by the
// dispatcher and handed to checks and the handler.
type Context struct {
	ctx         context.Context
	bot         *Bot
	message     chat.Message
	command     *Command
	prefix      string
	invokedWith string
	args        map[string]any
}

// Context returns the cancellation context of this invocation.
func (c *Context) Context() context.Context { return c.ctx }

// Bot returns the bot dispatching the invocation.
func (c *Context) Bot() *Bot { return c.bot }

// Message returns the message that triggered the invocation.
func (c *Context) Message() chat.Message { return c.message }

// Command returns the resolved command. Nil when the lookup itself failed
// (the error hook may see such a context with *CommandNotFound).
func (c *Context) Command() *Command { return c.command }

// Prefix returns the prefix the invocation used.
func (c *Context) Prefix() string { return c.prefix }

// InvokedWith returns the name or alias the command was called by.
func (c *Context) InvokedWith() string { return c.invokedWith }

// Author returns the author of the triggering message.
func (c *Context) Author() chat.Author { return c.message.Author() }

// Arg returns the converted value of the named parameter. Optional
// parameters without an argument and without a default yield nil.
func (c *Context) Arg(name string) any { return c.args[name] }

// Args returns all converted arguments keyed by parameter name.
func (c *Context) Args() map[string]any { return c.args }

// Reply sends content back through the channel the triggering message came
// from.
func (c *Context) Reply(content string) error {
	return c.message.Reply(c.ctx, content)
}
