package commands

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/keshon/partykit/pkg/chat"
)

// Converter turns a raw argument token into a typed value. A converter
// signals a user-facing failure by returning *BadArgument (or any other
// taxonomy kind); any other error is wrapped in *ConversionError by the
// parser.
type Converter interface {
	Convert(c *Context, argument string) (any, error)
}

// DisplayNamer is implemented by converters that want a friendly name in
// BadUnionArgument messages. Converters without it are named after their Go
// type.
type DisplayNamer interface {
	DisplayName() string
}

// ConverterFunc adapts a plain function to the Converter interface.
type ConverterFunc func(c *Context, argument string) (any, error)

// Convert calls the wrapped function.
func (f ConverterFunc) Convert(c *Context, argument string) (any, error) {
	return f(c, argument)
}

// converterDisplayName resolves the two-level name fallback: the declared
// display name if the converter has one, otherwise its type name.
func converterDisplayName(c Converter) string {
	if c == nil {
		return "<nil>"
	}
	if named, ok := c.(DisplayNamer); ok {
		return named.DisplayName()
	}
	t := reflect.TypeOf(c)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// convertArgument runs a parameter's converters against one token. With a
// single converter, taxonomy errors pass through and anything else is
// wrapped in *ConversionError. With several, the first success wins and a
// full round of failures becomes *BadUnionArgument.
func convertArgument(cctx *Context, p *Parameter, argument string) (any, error) {
	if len(p.Converters) == 0 {
		return argument, nil
	}

	if len(p.Converters) == 1 {
		conv := p.Converters[0]
		value, err := conv.Convert(cctx, argument)
		if err == nil {
			return value, nil
		}
		var cmdErr CommandError
		if errors.As(err, &cmdErr) {
			return nil, err
		}
		return nil, NewConversionError(conv, err)
	}

	errs := make([]error, 0, len(p.Converters))
	for _, conv := range p.Converters {
		value, err := conv.Convert(cctx, argument)
		if err == nil {
			return value, nil
		}
		var cmdErr CommandError
		if !errors.As(err, &cmdErr) {
			err = NewConversionError(conv, err)
		}
		errs = append(errs, err)
	}
	return nil, NewBadUnionArgument(p, p.Converters, errs)
}

// StringConverter passes the token through unchanged.
type StringConverter struct{}

// Convert implements Converter.
func (StringConverter) Convert(_ *Context, argument string) (any, error) {
	return argument, nil
}

// DisplayName implements DisplayNamer.
func (StringConverter) DisplayName() string { return "string" }

// IntConverter parses the token as a base-10 integer.
type IntConverter struct{}

// Convert implements Converter.
func (IntConverter) Convert(_ *Context, argument string) (any, error) {
	n, err := strconv.Atoi(argument)
	if err != nil {
		return nil, NewBadArgument(fmt.Sprintf("%q is not a valid integer.", argument))
	}
	return n, nil
}

// DisplayName implements DisplayNamer.
func (IntConverter) DisplayName() string { return "int" }

// FloatConverter parses the token as a float64.
type FloatConverter struct{}

// Convert implements Converter.
func (FloatConverter) Convert(_ *Context, argument string) (any, error) {
	f, err := strconv.ParseFloat(argument, 64)
	if err != nil {
		return nil, NewBadArgument(fmt.Sprintf("%q is not a valid number.", argument))
	}
	return f, nil
}

// DisplayName implements DisplayNamer.
func (FloatConverter) DisplayName() string { return "float" }

// BoolConverter accepts the usual yes/no spellings.
type BoolConverter struct{}

// Convert implements Converter.
func (BoolConverter) Convert(_ *Context, argument string) (any, error) {
	switch strings.ToLower(argument) {
	case "yes", "y", "true", "t", "1", "on", "enable", "enabled":
		return true, nil
	case "no", "n", "false", "f", "0", "off", "disable", "disabled":
		return false, nil
	}
	return nil, NewBadArgument(fmt.Sprintf("%q is not a recognised boolean option.", argument))
}

// DisplayName implements DisplayNamer.
func (BoolConverter) DisplayName() string { return "bool" }

// DurationConverter parses the token with time.ParseDuration.
type DurationConverter struct{}

// Convert implements Converter.
func (DurationConverter) Convert(_ *Context, argument string) (any, error) {
	d, err := time.ParseDuration(argument)
	if err != nil {
		return nil, NewBadArgument(fmt.Sprintf("%q is not a valid duration.", argument))
	}
	return d, nil
}

// DisplayName implements DisplayNamer.
func (DurationConverter) DisplayName() string { return "duration" }

// MemberConverter resolves a party member by ID or display name
// (case-insensitive). Only works for party messages.
type MemberConverter struct{}

// Convert implements Converter.
func (MemberConverter) Convert(c *Context, argument string) (any, error) {
	pm, ok := c.Message().(*chat.PartyMessage)
	if !ok {
		return nil, NewBadArgument("Member arguments are only available in party messages.")
	}
	for _, member := range pm.Party().Members() {
		if member.ID() == argument || strings.EqualFold(member.DisplayName(), argument) {
			return member, nil
		}
	}
	return nil, NewBadArgument(fmt.Sprintf("Member %q not found.", argument))
}

// DisplayName implements DisplayNamer.
func (MemberConverter) DisplayName() string { return "member" }
