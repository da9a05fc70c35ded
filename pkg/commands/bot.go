package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/keshon/partykit/pkg/chat"
)

// ErrorHandler receives every error raised while resolving or invoking a
// command. The context is the invocation that failed; its Command may be nil
// for *CommandNotFound. Policy (reply, log, ignore) lives entirely in the
// handler.
type ErrorHandler func(c *Context, err error)

// Hook runs around successful invocations (before/after invoke).
type Hook func(c *Context)

// Bot resolves incoming messages to commands and invokes them. Messages are
// handed in by a transport adapter via Dispatch; every failure along the way
// funnels into exactly one error handler call.
type Bot struct {
	prefix       string
	registry     *Registry
	ownerIDs     map[string]struct{}
	globalChecks []Check
	beforeInvoke Hook
	afterInvoke  Hook
	onError      ErrorHandler
	extensions   *extensionTable
}

// BotOption configures a Bot at construction.
type BotOption func(*Bot)

// WithOwners declares the bot owner user IDs for the IsOwner check.
func WithOwners(ids ...string) BotOption {
	return func(b *Bot) {
		for _, id := range ids {
			b.ownerIDs[id] = struct{}{}
		}
	}
}

// WithErrorHandler replaces the default (logging) error handler.
func WithErrorHandler(h ErrorHandler) BotOption {
	return func(b *Bot) { b.onError = h }
}

// WithGlobalChecks adds checks that run before every command's own checks.
func WithGlobalChecks(checks ...Check) BotOption {
	return func(b *Bot) { b.globalChecks = append(b.globalChecks, checks...) }
}

// WithBeforeInvoke registers a hook called right before each handler.
func WithBeforeInvoke(h Hook) BotOption {
	return func(b *Bot) { b.beforeInvoke = h }
}

// WithAfterInvoke registers a hook called after each successful handler.
func WithAfterInvoke(h Hook) BotOption {
	return func(b *Bot) { b.afterInvoke = h }
}

// NewBot creates a bot answering to the given prefix. Panics if prefix is
// empty.
func NewBot(prefix string, opts ...BotOption) *Bot {
	if prefix == "" {
		panic("commands: bot prefix must not be empty")
	}
	b := &Bot{
		prefix:     prefix,
		registry:   NewRegistry(),
		ownerIDs:   make(map[string]struct{}),
		onError:    defaultErrorHandler,
		extensions: newExtensionTable(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Prefix returns the command prefix.
func (b *Bot) Prefix() string { return b.prefix }

// Registry returns the bot's command registry.
func (b *Bot) Registry() *Registry { return b.registry }

// Register adds a command to the bot.
func (b *Bot) Register(c *Command) error { return b.registry.Register(c) }

// AddCheck appends a global check at runtime.
func (b *Bot) AddCheck(check Check) {
	b.globalChecks = append(b.globalChecks, check)
}

// SetAfterInvoke replaces the after-invoke hook. Adapters use this to attach
// bookkeeping once their own wiring exists.
func (b *Bot) SetAfterInvoke(h Hook) { b.afterInvoke = h }

// IsOwner reports whether the given user ID belongs to a bot owner.
func (b *Bot) IsOwner(id string) bool {
	_, ok := b.ownerIDs[id]
	return ok
}

// Dispatch resolves and invokes the command a message addresses, if any.
// Messages from the bot itself and messages without the prefix are ignored.
// Every failure goes to the error handler exactly once; Dispatch itself
// never returns one.
//
// Adapters call Dispatch from one goroutine per message, so slow handlers
// do not stall each other.
func (b *Bot) Dispatch(ctx context.Context, msg chat.Message) {
	if msg == nil {
		return
	}
	if b.isSelf(msg) {
		return
	}
	content := msg.Content()
	if !strings.HasPrefix(content, b.prefix) {
		return
	}

	r := newArgReader(content[len(b.prefix):])
	name := r.word()
	if name == "" {
		return
	}

	cctx := &Context{
		ctx:         ctx,
		bot:         b,
		message:     msg,
		prefix:      b.prefix,
		invokedWith: name,
	}

	command := b.registry.Get(name)
	if command == nil {
		b.onError(cctx, NewCommandNotFound(fmt.Sprintf("Command %q is not found", name)))
		return
	}
	cctx.command = command

	if err := b.invoke(cctx, r); err != nil {
		b.onError(cctx, err)
	}
}

func (b *Bot) isSelf(msg chat.Message) bool {
	client := msg.Client()
	author := msg.Author()
	if client == nil || author == nil {
		return false
	}
	self := client.Self()
	return self != nil && self.ID() == author.ID()
}

// invoke runs the gates in order: enabled flag, global checks, command
// checks, concurrency, cooldown, argument parsing, handler.
func (b *Bot) invoke(cctx *Context, r *argReader) error {
	c := cctx.command

	if !c.Enabled() {
		return NewDisabledCommand(fmt.Sprintf("%s command is disabled", c.Name()))
	}

	for _, check := range b.globalChecks {
		if err := check(cctx); err != nil {
			return err
		}
	}
	for _, check := range c.checks {
		if err := check(cctx); err != nil {
			return err
		}
	}

	if c.concurrency != nil {
		if err := c.concurrency.Acquire(cctx.ctx, cctx.message); err != nil {
			return err
		}
		defer c.concurrency.Release(cctx.message)
	}

	if c.cooldown != nil {
		if retryAfter := c.cooldown.UpdateRateLimit(cctx.message, time.Now()); retryAfter > 0 {
			return NewCommandOnCooldown(c.cooldown.Cooldown(), retryAfter)
		}
	}

	if err := c.parseArguments(cctx, r); err != nil {
		return err
	}

	if b.beforeInvoke != nil {
		b.beforeInvoke(cctx)
	}
	if err := runHandler(c.handler, cctx); err != nil {
		return err
	}
	if b.afterInvoke != nil {
		b.afterInvoke(cctx)
	}
	return nil
}

// runHandler executes the handler, normalizing non-taxonomy errors and
// panics into *CommandInvokeError.
func runHandler(h Handler, cctx *Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = NewCommandInvokeError(fmt.Errorf("panic: %v", rec))
		}
	}()

	err = h(cctx)
	if err == nil {
		return nil
	}
	var cmdErr CommandError
	if errors.As(err, &cmdErr) {
		return err
	}
	return NewCommandInvokeError(err)
}

// defaultErrorHandler logs the error and, for user-input and check
// failures, echoes the message back through the originating channel.
func defaultErrorHandler(c *Context, err error) {
	name := c.InvokedWith()
	log.Error().Err(err).Str("command", name).Msg("command error")

	var userErr UserInputError
	if errors.As(err, &userErr) || IsCheckFailure(err) {
		if replyErr := c.Reply(err.Error()); replyErr != nil {
			log.Warn().Err(replyErr).Str("command", name).Msg("failed to send error reply")
		}
	}
}
