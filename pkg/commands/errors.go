// Package commands provides a transport-agnostic command framework for chat
// bots: a registry of prefix commands, argument parsing and conversion,
// permission checks, cooldowns and concurrency limits, and a closed error
// taxonomy that the dispatcher funnels into a single error hook. How messages
// arrive and replies leave is defined by adapters built on pkg/chat.
package commands

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// CommandError is satisfied by every error raised while resolving or invoking
// a command. The dispatcher catches these and hands them to the bot's error
// hook; anything else coming out of a handler is wrapped in
// *CommandInvokeError first, so the hook only ever sees this taxonomy.
//
// The marker method is unexported, which keeps the set closed: new kinds can
// only be added here.
type CommandError interface {
	error
	commandError()
}

// UserInputError groups errors caused by what the user typed: missing or
// extra arguments, failed conversions, and tokenizer failures. Match with
// errors.As against a UserInputError variable.
type UserInputError interface {
	CommandError
	userInputError()
}

// ArgumentParsingError groups the granular tokenizer failures
// (*UnexpectedQuoteError, *InvalidEndOfQuotedStringError,
// *ExpectedClosingQuoteError).
type ArgumentParsingError interface {
	UserInputError
	argumentParsingError()
}

// commandErrorBase carries what every kind has: a message and an optional
// originating cause.
type commandErrorBase struct {
	message string
	cause   error
}

func (e *commandErrorBase) Error() string { return e.message }

// Unwrap returns the originating cause, if any.
func (e *commandErrorBase) Unwrap() error { return e.cause }

func (e *commandErrorBase) commandError() {}

type userInputBase struct{ commandErrorBase }

func (e *userInputBase) userInputError() {}

type argumentParsingBase struct{ userInputBase }

func (e *argumentParsingBase) argumentParsingError() {}

// errorName returns the bare type name of err, used when a message embeds
// the kind of a wrapped cause.
func errorName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "error"
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// CommandNotFound is returned when the invoked name matches no registered
// command. Raised for the top-level lookup only, never for subcommands.
type CommandNotFound struct{ commandErrorBase }

// NewCommandNotFound returns a *CommandNotFound with the given message, or a
// generic one if message is empty.
func NewCommandNotFound(message string) *CommandNotFound {
	if message == "" {
		message = "Command is not found."
	}
	return &CommandNotFound{commandErrorBase{message: message}}
}

// MissingRequiredArgument is returned when a required parameter has no
// corresponding argument in the input.
type MissingRequiredArgument struct {
	userInputBase
	param *Parameter
}

// NewMissingRequiredArgument returns a *MissingRequiredArgument for param.
// Panics if param is nil.
func NewMissingRequiredArgument(param *Parameter) *MissingRequiredArgument {
	if param == nil {
		panic("commands: MissingRequiredArgument requires a parameter")
	}
	e := &MissingRequiredArgument{param: param}
	e.message = fmt.Sprintf("%s is a required argument that is missing.", param.Name)
	return e
}

// Param returns the parameter that is missing.
func (e *MissingRequiredArgument) Param() *Parameter { return e.param }

// TooManyArguments is returned when input remains after all parameters were
// filled and the command does not ignore extra arguments.
type TooManyArguments struct{ userInputBase }

// NewTooManyArguments returns a *TooManyArguments with the given message, or
// a generic one if message is empty.
func NewTooManyArguments(message string) *TooManyArguments {
	if message == "" {
		message = "Too many arguments passed."
	}
	e := &TooManyArguments{}
	e.message = message
	return e
}

// BadArgument is the generic conversion/parse failure. Converters return it
// directly with a message describing what was wrong with the argument.
type BadArgument struct{ userInputBase }

// NewBadArgument returns a *BadArgument with the given message, or a generic
// one if message is empty.
func NewBadArgument(message string) *BadArgument {
	if message == "" {
		message = "Failed to parse the argument."
	}
	e := &BadArgument{}
	e.message = message
	return e
}

// CheckFailure is the generic predicate failure. The context-restriction and
// ownership kinds embed it, so IsCheckFailure matches all of them.
type CheckFailure struct{ userInputBase }

func (e *CheckFailure) checkFailure() {}

// NewCheckFailure returns a *CheckFailure with the given message, or a
// generic one if message is empty.
func NewCheckFailure(message string) *CheckFailure {
	if message == "" {
		message = "The checks for this command failed."
	}
	e := &CheckFailure{}
	e.message = message
	return e
}

// IsCheckFailure reports whether err is *CheckFailure or any kind embedding
// it (*CheckAnyFailure, *PrivateMessageOnly, *PartyMessageOnly, *NotOwner).
func IsCheckFailure(err error) bool {
	var target interface {
		error
		checkFailure()
	}
	return errors.As(err, &target)
}

// CheckAnyFailure is returned when every predicate of an any-of check group
// failed. It keeps both the predicates and the failures they produced.
type CheckAnyFailure struct {
	CheckFailure
	checks []Check
	errs   []error
}

// NewCheckAnyFailure returns a *CheckAnyFailure for the given predicates and
// their collected failures.
func NewCheckAnyFailure(checks []Check, errs []error) *CheckAnyFailure {
	e := &CheckAnyFailure{checks: checks, errs: errs}
	e.message = "You do not have permission to run this command."
	return e
}

// Checks returns the predicates that failed.
func (e *CheckAnyFailure) Checks() []Check { return e.checks }

// Errors returns the failures caught from each predicate.
func (e *CheckAnyFailure) Errors() []error { return e.errs }

// PrivateMessageOnly is returned when a command restricted to private
// messages is invoked from a party.
type PrivateMessageOnly struct{ CheckFailure }

// NewPrivateMessageOnly returns a *PrivateMessageOnly with the given message
// override, or the stock message if empty.
func NewPrivateMessageOnly(message string) *PrivateMessageOnly {
	if message == "" {
		message = "This command can only be used in private messages."
	}
	e := &PrivateMessageOnly{}
	e.message = message
	return e
}

// PartyMessageOnly is returned when a command restricted to party chat is
// invoked from a private message.
type PartyMessageOnly struct{ CheckFailure }

// NewPartyMessageOnly returns a *PartyMessageOnly with the given message
// override, or the stock message if empty.
func NewPartyMessageOnly(message string) *PartyMessageOnly {
	if message == "" {
		message = "This command can only be used in party messages."
	}
	e := &PartyMessageOnly{}
	e.message = message
	return e
}

// NotOwner is returned when an owner-only command is invoked by somebody
// else.
type NotOwner struct{ CheckFailure }

// NewNotOwner returns a *NotOwner with the given message, or a generic one
// if message is empty.
func NewNotOwner(message string) *NotOwner {
	if message == "" {
		message = "You do not own this bot."
	}
	e := &NotOwner{}
	e.message = message
	return e
}

// DisabledCommand is returned when the invoked command is disabled.
type DisabledCommand struct{ commandErrorBase }

// NewDisabledCommand returns a *DisabledCommand with the given message, or a
// generic one if message is empty.
func NewDisabledCommand(message string) *DisabledCommand {
	if message == "" {
		message = "This command is disabled."
	}
	return &DisabledCommand{commandErrorBase{message: message}}
}

// CommandInvokeError wraps any error returned (or panic recovered) from a
// command handler, normalizing handler failures into the taxonomy without
// losing the cause.
type CommandInvokeError struct{ commandErrorBase }

// NewCommandInvokeError wraps original. Panics if original is nil.
func NewCommandInvokeError(original error) *CommandInvokeError {
	if original == nil {
		panic("commands: CommandInvokeError requires an original error")
	}
	return &CommandInvokeError{commandErrorBase{
		message: fmt.Sprintf("Command raised an exception: %s: %s", errorName(original), original.Error()),
		cause:   original,
	}}
}

// Original returns the wrapped handler error. Equivalent to Unwrap.
func (e *CommandInvokeError) Original() error { return e.cause }

// CommandOnCooldown is returned when the command's cooldown bucket has no
// tokens left.
type CommandOnCooldown struct {
	commandErrorBase
	cooldown   Cooldown
	retryAfter float64
}

// NewCommandOnCooldown returns a *CommandOnCooldown carrying the cooldown
// descriptor and the seconds to wait before retrying.
func NewCommandOnCooldown(cooldown Cooldown, retryAfter float64) *CommandOnCooldown {
	e := &CommandOnCooldown{cooldown: cooldown, retryAfter: retryAfter}
	e.message = fmt.Sprintf("You are on cooldown. Try again in %.2fs", retryAfter)
	return e
}

// Cooldown returns the cooldown descriptor that was hit.
func (e *CommandOnCooldown) Cooldown() Cooldown { return e.cooldown }

// RetryAfter returns the seconds to wait before the command can be used
// again.
func (e *CommandOnCooldown) RetryAfter() float64 { return e.retryAfter }

// MaxConcurrencyReached is returned when the command already has the maximum
// number of concurrent invocations for the message's bucket.
type MaxConcurrencyReached struct {
	commandErrorBase
	number int
	per    BucketType
}

// NewMaxConcurrencyReached returns a *MaxConcurrencyReached for the given
// limit and bucket. Panics if number is less than 1.
func NewMaxConcurrencyReached(number int, per BucketType) *MaxConcurrencyReached {
	if number < 1 {
		panic("commands: MaxConcurrencyReached number cannot be less than 1")
	}
	suffix := "per " + per.String()
	if per.String() == "default" {
		suffix = "globally"
	}
	plural := "%d time %s"
	if number > 1 {
		plural = "%d times %s"
	}
	e := &MaxConcurrencyReached{number: number, per: per}
	e.message = fmt.Sprintf("Too many people using this command. It can only be used "+plural+" concurrently.", number, suffix)
	return e
}

// Number returns the maximum number of concurrent invocations allowed.
func (e *MaxConcurrencyReached) Number() int { return e.number }

// Per returns the bucket the limit is scoped to.
func (e *MaxConcurrencyReached) Per() BucketType { return e.per }

// ConversionError wraps an error a converter produced that is not itself part
// of the taxonomy.
type ConversionError struct {
	commandErrorBase
	converter Converter
}

// NewConversionError wraps original together with the converter that raised
// it. Panics if original is nil.
func NewConversionError(converter Converter, original error) *ConversionError {
	if original == nil {
		panic("commands: ConversionError requires an original error")
	}
	e := &ConversionError{converter: converter}
	e.message = fmt.Sprintf("Converter %s raised an exception: %s: %s",
		converterDisplayName(converter), errorName(original), original.Error())
	e.cause = original
	return e
}

// Converter returns the converter that failed.
func (e *ConversionError) Converter() Converter { return e.converter }

// Original returns the wrapped converter error. Equivalent to Unwrap.
func (e *ConversionError) Original() error { return e.cause }

// BadUnionArgument is returned when every converter of a union parameter
// failed on the argument.
type BadUnionArgument struct {
	userInputBase
	param      *Parameter
	converters []Converter
	errs       []error
}

// NewBadUnionArgument returns a *BadUnionArgument listing the attempted
// converters in order of failure. Panics if param is nil.
func NewBadUnionArgument(param *Parameter, converters []Converter, errs []error) *BadUnionArgument {
	if param == nil {
		panic("commands: BadUnionArgument requires a parameter")
	}
	names := make([]string, len(converters))
	for i, c := range converters {
		names[i] = converterDisplayName(c)
	}
	var joined string
	if len(names) > 2 {
		joined = strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	} else {
		joined = strings.Join(names, " or ")
	}
	e := &BadUnionArgument{param: param, converters: converters, errs: errs}
	e.message = fmt.Sprintf("Could not convert %q into %s.", param.Name, joined)
	return e
}

// Param returns the parameter that failed conversion.
func (e *BadUnionArgument) Param() *Parameter { return e.param }

// Converters returns the converters attempted, in order of failure.
func (e *BadUnionArgument) Converters() []Converter { return e.converters }

// Errors returns the failure caught from each converter.
func (e *BadUnionArgument) Errors() []error { return e.errs }

// UnexpectedQuoteError is returned when the tokenizer finds a quote mark
// inside a non-quoted word.
type UnexpectedQuoteError struct {
	argumentParsingBase
	quote rune
}

// NewUnexpectedQuoteError returns an *UnexpectedQuoteError for the offending
// quote mark.
func NewUnexpectedQuoteError(quote rune) *UnexpectedQuoteError {
	e := &UnexpectedQuoteError{quote: quote}
	e.message = fmt.Sprintf("Unexpected quote mark, %q, in non-quoted string", quote)
	return e
}

// Quote returns the quote mark that was found.
func (e *UnexpectedQuoteError) Quote() rune { return e.quote }

// InvalidEndOfQuotedStringError is returned when a closing quote is followed
// by something other than a space.
type InvalidEndOfQuotedStringError struct {
	argumentParsingBase
	char rune
}

// NewInvalidEndOfQuotedStringError returns an *InvalidEndOfQuotedStringError
// for the character found where a space was expected.
func NewInvalidEndOfQuotedStringError(char rune) *InvalidEndOfQuotedStringError {
	e := &InvalidEndOfQuotedStringError{char: char}
	e.message = fmt.Sprintf("Expected space after closing quotation but received %q", char)
	return e
}

// Char returns the character found instead of a space.
func (e *InvalidEndOfQuotedStringError) Char() rune { return e.char }

// ExpectedClosingQuoteError is returned when the input ends before a quoted
// word is closed.
type ExpectedClosingQuoteError struct {
	argumentParsingBase
	closeQuote rune
}

// NewExpectedClosingQuoteError returns an *ExpectedClosingQuoteError for the
// quote character that was expected.
func NewExpectedClosingQuoteError(closeQuote rune) *ExpectedClosingQuoteError {
	e := &ExpectedClosingQuoteError{closeQuote: closeQuote}
	e.message = fmt.Sprintf("Expected closing %c.", closeQuote)
	return e
}

// CloseQuote returns the quote character that was expected.
func (e *ExpectedClosingQuoteError) CloseQuote() rune { return e.closeQuote }

// ExtensionError is the base kind for extension lifecycle failures. It is a
// separate family from CommandError: extension errors come from Load/Unload
// calls, not from dispatch, so they return to the caller instead of the error
// hook.
type ExtensionError struct {
	message string
	cause   error
	name    string
}

// NewExtensionError returns an *ExtensionError with the given message, or a
// stock message embedding the extension name if empty. Panics if name is
// empty.
func NewExtensionError(message, name string) *ExtensionError {
	if name == "" {
		panic("commands: ExtensionError requires an extension name")
	}
	if message == "" {
		message = fmt.Sprintf("Extension %q had an error.", name)
	}
	return &ExtensionError{message: message, name: name}
}

func (e *ExtensionError) Error() string { return e.message }

// Unwrap returns the originating cause, if any.
func (e *ExtensionError) Unwrap() error { return e.cause }

// ExtensionName returns the extension the error is about.
func (e *ExtensionError) ExtensionName() string { return e.name }

func (e *ExtensionError) extensionError() {}

// IsExtensionError reports whether err is *ExtensionError or any kind
// embedding it.
func IsExtensionError(err error) bool {
	var target interface {
		error
		extensionError()
	}
	return errors.As(err, &target)
}

// ExtensionAlreadyLoaded is returned when loading an extension that is
// already loaded.
type ExtensionAlreadyLoaded struct{ ExtensionError }

// NewExtensionAlreadyLoaded returns an *ExtensionAlreadyLoaded for name.
// Panics if name is empty.
func NewExtensionAlreadyLoaded(name string) *ExtensionAlreadyLoaded {
	if name == "" {
		panic("commands: ExtensionAlreadyLoaded requires an extension name")
	}
	e := &ExtensionAlreadyLoaded{}
	e.name = name
	e.message = fmt.Sprintf("Extension %q is already loaded.", name)
	return e
}

// ExtensionNotLoaded is returned when unloading an extension that was never
// loaded.
type ExtensionNotLoaded struct{ ExtensionError }

// NewExtensionNotLoaded returns an *ExtensionNotLoaded for name. Panics if
// name is empty.
func NewExtensionNotLoaded(name string) *ExtensionNotLoaded {
	if name == "" {
		panic("commands: ExtensionNotLoaded requires an extension name")
	}
	e := &ExtensionNotLoaded{}
	e.name = name
	e.message = fmt.Sprintf("Extension %q has not been loaded.", name)
	return e
}

// ExtensionMissingEntryPoint is returned when a registered extension has no
// setup function.
type ExtensionMissingEntryPoint struct{ ExtensionError }

// NewExtensionMissingEntryPoint returns an *ExtensionMissingEntryPoint for
// name. Panics if name is empty.
func NewExtensionMissingEntryPoint(name string) *ExtensionMissingEntryPoint {
	if name == "" {
		panic("commands: ExtensionMissingEntryPoint requires an extension name")
	}
	e := &ExtensionMissingEntryPoint{}
	e.name = name
	e.message = fmt.Sprintf("Extension %q has no 'setup' function.", name)
	return e
}

// ExtensionFailed wraps an error raised by an extension's setup function.
type ExtensionFailed struct{ ExtensionError }

// NewExtensionFailed wraps original for the named extension. Panics if name
// is empty or original is nil.
func NewExtensionFailed(name string, original error) *ExtensionFailed {
	if name == "" {
		panic("commands: ExtensionFailed requires an extension name")
	}
	if original == nil {
		panic("commands: ExtensionFailed requires an original error")
	}
	e := &ExtensionFailed{}
	e.name = name
	e.cause = original
	e.message = fmt.Sprintf("Extension %q raised an error: %s: %s", name, errorName(original), original.Error())
	return e
}

// Original returns the wrapped setup error. Equivalent to Unwrap.
func (e *ExtensionFailed) Original() error { return e.cause }

// ExtensionNotFound is returned when loading an extension that was never
// registered.
type ExtensionNotFound struct{ ExtensionError }

// NewExtensionNotFound returns an *ExtensionNotFound for name. Panics if
// name is empty.
func NewExtensionNotFound(name string) *ExtensionNotFound {
	if name == "" {
		panic("commands: ExtensionNotFound requires an extension name")
	}
	e := &ExtensionNotFound{}
	e.name = name
	e.message = fmt.Sprintf("Extension %q could not be loaded.", name)
	return e
}
