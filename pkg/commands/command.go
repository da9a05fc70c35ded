package commands

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Handler is the body of a command. It receives the invocation context with
// converted arguments already in place.
type Handler func(c *Context) error

// Parameter describes one positional argument of a command.
type Parameter struct {
	// Name identifies the parameter in messages and in Context.Arg.
	Name string
	// Required makes parsing fail with *MissingRequiredArgument when no
	// argument is left for this parameter.
	Required bool
	// Default is converted in place of a missing optional argument. Ignored
	// when Required is set.
	Default string
	// Rest makes the parameter consume the remainder of the input verbatim,
	// quotes included. Only meaningful on the last parameter.
	Rest bool
	// Converters to attempt in order; the first success wins. More than one
	// gives union semantics: if all fail the parse error is
	// *BadUnionArgument. Empty means the raw string is passed through.
	Converters []Converter
}

// Command is a registered prefix command: identity, parameters, and the
// gates (enabled flag, checks, cooldown, concurrency limit) the dispatcher
// runs before the handler.
type Command struct {
	name        string
	aliases     []string
	description string
	params      []*Parameter
	checks      []Check
	cooldown    *CooldownMapping
	concurrency *MaxConcurrency
	ignoreExtra bool
	handler     Handler
	enabled     atomic.Bool
}

// CommandOption configures a Command at construction.
type CommandOption func(*Command)

// WithAliases registers alternative invocation names.
func WithAliases(aliases ...string) CommandOption {
	return func(c *Command) { c.aliases = append(c.aliases, aliases...) }
}

// WithDescription sets the help text.
func WithDescription(description string) CommandOption {
	return func(c *Command) { c.description = description }
}

// WithParameters declares the positional parameters, in order.
func WithParameters(params ...*Parameter) CommandOption {
	return func(c *Command) { c.params = append(c.params, params...) }
}

// WithChecks adds predicates that must pass before the command runs.
func WithChecks(checks ...Check) CommandOption {
	return func(c *Command) { c.checks = append(c.checks, checks...) }
}

// WithCooldown limits the command to rate uses per window, scoped to bucket.
func WithCooldown(rate int, per time.Duration, bucket BucketType) CommandOption {
	return func(c *Command) { c.cooldown = NewCooldownMapping(rate, per, bucket) }
}

// WithMaxConcurrency caps simultaneous invocations per bucket. With wait set,
// excess invocations block until a slot frees up instead of failing with
// *MaxConcurrencyReached.
func WithMaxConcurrency(number int, per BucketType, wait bool) CommandOption {
	return func(c *Command) { c.concurrency = NewMaxConcurrency(number, per, wait) }
}

// WithStrictArguments makes leftover input fail with *TooManyArguments
// instead of being ignored.
func WithStrictArguments() CommandOption {
	return func(c *Command) { c.ignoreExtra = false }
}

// Disabled constructs the command in the disabled state.
func Disabled() CommandOption {
	return func(c *Command) { c.enabled.Store(false) }
}

// New creates a command. Panics if name is empty or handler is nil; both are
// programming errors, not runtime conditions.
func New(name string, handler Handler, opts ...CommandOption) *Command {
	if name == "" {
		panic("commands: command name must not be empty")
	}
	if handler == nil {
		panic(fmt.Sprintf("commands: command %q has no handler", name))
	}
	c := &Command{
		name:        name,
		handler:     handler,
		ignoreExtra: true,
	}
	c.enabled.Store(true)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the primary invocation name.
func (c *Command) Name() string { return c.name }

// Aliases returns the alternative invocation names.
func (c *Command) Aliases() []string { return c.aliases }

// Description returns the help text.
func (c *Command) Description() string { return c.description }

// Parameters returns the declared positional parameters.
func (c *Command) Parameters() []*Parameter { return c.params }

// Enabled reports whether the command can currently be invoked.
func (c *Command) Enabled() bool { return c.enabled.Load() }

// SetEnabled toggles the command. A disabled command fails dispatch with
// *DisabledCommand.
func (c *Command) SetEnabled(enabled bool) { c.enabled.Store(enabled) }

// Cooldown returns the command's cooldown descriptor and true if one is set.
func (c *Command) Cooldown() (Cooldown, bool) {
	if c.cooldown == nil {
		return Cooldown{}, false
	}
	return c.cooldown.Cooldown(), true
}

// parseArguments tokenizes and converts the remaining input into
// cctx.args according to the declared parameters.
func (c *Command) parseArguments(cctx *Context, r *argReader) error {
	cctx.args = make(map[string]any, len(c.params))
	for _, p := range c.params {
		r.skipSpaces()

		if p.Rest {
			rest := r.rest()
			if rest == "" {
				if p.Required {
					return NewMissingRequiredArgument(p)
				}
				if p.Default == "" {
					cctx.args[p.Name] = nil
					continue
				}
				rest = p.Default
			}
			value, err := convertArgument(cctx, p, rest)
			if err != nil {
				return err
			}
			cctx.args[p.Name] = value
			continue
		}

		if r.eof() {
			if p.Required {
				return NewMissingRequiredArgument(p)
			}
			if p.Default == "" {
				cctx.args[p.Name] = nil
				continue
			}
			value, err := convertArgument(cctx, p, p.Default)
			if err != nil {
				return err
			}
			cctx.args[p.Name] = value
			continue
		}

		word, err := r.quotedWord()
		if err != nil {
			return err
		}
		value, err := convertArgument(cctx, p, word)
		if err != nil {
			return err
		}
		cctx.args[p.Name] = value
	}

	r.skipSpaces()
	if !c.ignoreExtra && !r.eof() {
		return NewTooManyArguments(fmt.Sprintf("Too many arguments passed to %s", c.name))
	}
	return nil
}
