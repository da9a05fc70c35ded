package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// converters without DisplayName, so messages fall back to the type name
type TypeA struct{}

func (TypeA) Convert(*Context, string) (any, error) { return nil, NewBadArgument("nope") }

type TypeB struct{}

func (TypeB) Convert(*Context, string) (any, error) { return nil, NewBadArgument("nope") }

type TypeC struct{}

func (TypeC) Convert(*Context, string) (any, error) { return nil, NewBadArgument("nope") }

type valueError struct{ msg string }

func (e *valueError) Error() string { return e.msg }

func TestDefaultMessagesAreNonEmpty(t *testing.T) {
	kinds := []error{
		NewCommandNotFound(""),
		NewTooManyArguments(""),
		NewBadArgument(""),
		NewCheckFailure(""),
		NewPrivateMessageOnly(""),
		NewPartyMessageOnly(""),
		NewNotOwner(""),
		NewDisabledCommand(""),
		NewExtensionError("", "foo"),
	}
	for _, err := range kinds {
		assert.NotEmpty(t, err.Error(), "%T", err)
	}
}

func TestMessageOverrides(t *testing.T) {
	assert.Equal(t, "custom", NewPrivateMessageOnly("custom").Error())
	assert.Equal(t, "custom", NewPartyMessageOnly("custom").Error())
	assert.Equal(t, "This command can only be used in private messages.", NewPrivateMessageOnly("").Error())
	assert.Equal(t, "This command can only be used in party messages.", NewPartyMessageOnly("").Error())
}

func TestMessagesAreDeterministic(t *testing.T) {
	param := &Parameter{Name: "target"}
	a := NewMissingRequiredArgument(param)
	b := NewMissingRequiredArgument(param)
	assert.Equal(t, a.Error(), b.Error())
	assert.Equal(t, "target is a required argument that is missing.", a.Error())
	assert.Same(t, param, a.Param())
}

func TestCommandOnCooldownFormatting(t *testing.T) {
	cd := Cooldown{Rate: 1, Per: 0, Type: BucketUser}

	err := NewCommandOnCooldown(cd, 1.005)
	assert.Equal(t, "You are on cooldown. Try again in 1.00s", err.Error())
	assert.Equal(t, 1.005, err.RetryAfter())
	assert.Equal(t, cd, err.Cooldown())

	assert.Equal(t, "You are on cooldown. Try again in 3.50s",
		NewCommandOnCooldown(cd, 3.5).Error())
}

func TestMaxConcurrencyReachedFormatting(t *testing.T) {
	one := NewMaxConcurrencyReached(1, BucketDefault)
	assert.Equal(t,
		"Too many people using this command. It can only be used 1 time globally concurrently.",
		one.Error())
	assert.Equal(t, 1, one.Number())
	assert.Equal(t, BucketDefault, one.Per())

	three := NewMaxConcurrencyReached(3, BucketUser)
	assert.Equal(t,
		"Too many people using this command. It can only be used 3 times per user concurrently.",
		three.Error())

	assert.Panics(t, func() { NewMaxConcurrencyReached(0, BucketUser) })
}

func TestBadUnionArgumentFormatting(t *testing.T) {
	param := &Parameter{Name: "value"}

	two := NewBadUnionArgument(param, []Converter{TypeA{}, TypeB{}}, nil)
	assert.Equal(t, `Could not convert "value" into TypeA or TypeB.`, two.Error())

	three := NewBadUnionArgument(param, []Converter{TypeA{}, TypeB{}, TypeC{}}, nil)
	assert.Equal(t, `Could not convert "value" into TypeA, TypeB, or TypeC.`, three.Error())

	one := NewBadUnionArgument(param, []Converter{IntConverter{}}, nil)
	assert.Equal(t, `Could not convert "value" into int.`, one.Error())
}

func TestBadUnionArgumentPayloadRoundTrip(t *testing.T) {
	param := &Parameter{Name: "value"}
	convs := []Converter{TypeA{}, TypeB{}}
	errs := []error{NewBadArgument("first"), NewBadArgument("second")}

	err := NewBadUnionArgument(param, convs, errs)
	assert.Same(t, param, err.Param())
	assert.Equal(t, convs, err.Converters())
	assert.Equal(t, errs, err.Errors())
}

func TestCommandInvokeErrorWrapsCause(t *testing.T) {
	cause := &valueError{msg: "bad"}
	err := NewCommandInvokeError(cause)

	assert.Equal(t, "Command raised an exception: valueError: bad", err.Error())
	assert.Same(t, cause, err.Original())
	assert.ErrorIs(t, err, cause)

	assert.Panics(t, func() { NewCommandInvokeError(nil) })
}

func TestConversionErrorWrapsCause(t *testing.T) {
	cause := &valueError{msg: "boom"}
	err := NewConversionError(IntConverter{}, cause)

	assert.Contains(t, err.Error(), "int")
	assert.Contains(t, err.Error(), "valueError")
	assert.Contains(t, err.Error(), "boom")
	assert.Same(t, cause, err.Original())
	assert.ErrorIs(t, err, cause)
}

func TestCheckAnyFailurePayloadRoundTrip(t *testing.T) {
	checks := []Check{PartyOnly(), IsOwner()}
	failures := []error{NewPartyMessageOnly(""), NewNotOwner("")}

	err := NewCheckAnyFailure(checks, failures)
	assert.Equal(t, "You do not have permission to run this command.", err.Error())
	assert.Len(t, err.Checks(), 2)
	assert.Equal(t, failures, err.Errors())
	assert.True(t, IsCheckFailure(err))
}

func TestQuoteErrorPayloads(t *testing.T) {
	uq := NewUnexpectedQuoteError('"')
	assert.Equal(t, `Unexpected quote mark, '"', in non-quoted string`, uq.Error())
	assert.Equal(t, '"', uq.Quote())

	ie := NewInvalidEndOfQuotedStringError('x')
	assert.Equal(t, `Expected space after closing quotation but received 'x'`, ie.Error())
	assert.Equal(t, 'x', ie.Char())

	ec := NewExpectedClosingQuoteError('"')
	assert.Equal(t, `Expected closing ".`, ec.Error())
	assert.Equal(t, '"', ec.CloseQuote())
}

func TestCategoryMatching(t *testing.T) {
	var cmdErr CommandError
	var inputErr UserInputError
	var parseErr ArgumentParsingError

	err := error(NewExpectedClosingQuoteError('"'))
	assert.True(t, errors.As(err, &cmdErr))
	assert.True(t, errors.As(err, &inputErr))
	assert.True(t, errors.As(err, &parseErr))

	err = NewCommandNotFound("")
	assert.True(t, errors.As(err, &cmdErr))
	assert.False(t, errors.As(err, &inputErr))

	err = NewMissingRequiredArgument(&Parameter{Name: "x"})
	assert.True(t, errors.As(err, &inputErr))
	assert.False(t, errors.As(err, &parseErr))

	// check family promotes through embedding
	assert.True(t, IsCheckFailure(NewNotOwner("")))
	assert.True(t, IsCheckFailure(NewPrivateMessageOnly("")))
	assert.True(t, IsCheckFailure(NewCheckFailure("")))
	assert.False(t, IsCheckFailure(NewCommandNotFound("")))

	// extension family is separate from CommandError
	assert.False(t, errors.As(error(NewExtensionNotFound("foo")), &cmdErr))
	assert.True(t, IsExtensionError(NewExtensionNotFound("foo")))
	assert.False(t, IsExtensionError(NewCommandNotFound("")))
}

func TestExtensionErrorFamily(t *testing.T) {
	assert.Equal(t, `Extension "foo" is already loaded.`, NewExtensionAlreadyLoaded("foo").Error())
	assert.Equal(t, `Extension "foo" has not been loaded.`, NewExtensionNotLoaded("foo").Error())
	assert.Equal(t, `Extension "foo" has no 'setup' function.`, NewExtensionMissingEntryPoint("foo").Error())
	assert.Equal(t, `Extension "foo" could not be loaded.`, NewExtensionNotFound("foo").Error())
	assert.Equal(t, `Extension "foo" had an error.`, NewExtensionError("", "foo").Error())

	for _, err := range []interface{ ExtensionName() string }{
		NewExtensionAlreadyLoaded("foo"),
		NewExtensionNotLoaded("foo"),
		NewExtensionMissingEntryPoint("foo"),
		NewExtensionNotFound("foo"),
	} {
		assert.Equal(t, "foo", err.ExtensionName())
	}

	assert.Panics(t, func() { NewExtensionError("", "") })
	assert.Panics(t, func() { NewExtensionNotFound("") })
}

func TestExtensionFailedEmbedsCause(t *testing.T) {
	cause := &valueError{msg: "bad"}
	err := NewExtensionFailed("foo", cause)

	require.Contains(t, err.Error(), `"foo"`)
	assert.Contains(t, err.Error(), "valueError")
	assert.Contains(t, err.Error(), "bad")
	assert.Equal(t, "foo", err.ExtensionName())
	assert.Same(t, cause, err.Original())
	assert.ErrorIs(t, err, cause)

	assert.Panics(t, func() { NewExtensionFailed("foo", nil) })
	assert.Panics(t, func() { NewExtensionFailed("", cause) })
}

func TestErrorNameFallbacks(t *testing.T) {
	assert.Equal(t, "valueError", errorName(&valueError{msg: "x"}))
	assert.Equal(t, "errorString", errorName(fmt.Errorf("plain")))
}
