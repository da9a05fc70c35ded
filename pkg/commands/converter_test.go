package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/keshon/partykit/pkg/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinConverters(t *testing.T) {
	v, err := IntConverter{}.Convert(nil, "42")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = FloatConverter{}.Convert(nil, "2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	v, err = BoolConverter{}.Convert(nil, "yes")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = BoolConverter{}.Convert(nil, "OFF")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = DurationConverter{}.Convert(nil, "1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, v)

	v, err = StringConverter{}.Convert(nil, "as-is")
	require.NoError(t, err)
	assert.Equal(t, "as-is", v)
}

func TestBuiltinConvertersRejectBadInput(t *testing.T) {
	cases := []struct {
		conv Converter
		arg  string
	}{
		{IntConverter{}, "forty-two"},
		{FloatConverter{}, "x"},
		{BoolConverter{}, "maybe"},
		{DurationConverter{}, "soon"},
	}
	for _, tc := range cases {
		_, err := tc.conv.Convert(nil, tc.arg)
		var bad *BadArgument
		assert.ErrorAs(t, err, &bad, "%T(%q)", tc.conv, tc.arg)
	}
}

func TestConverterDisplayNames(t *testing.T) {
	assert.Equal(t, "int", converterDisplayName(IntConverter{}))
	assert.Equal(t, "member", converterDisplayName(MemberConverter{}))
	// no DisplayName: falls back to the type name
	assert.Equal(t, "TypeA", converterDisplayName(TypeA{}))
	assert.Equal(t, "TypeA", converterDisplayName(&TypeA{}))
}

func TestMemberConverter(t *testing.T) {
	msg, _ := partyMessage("!whois bob")
	cctx := &Context{message: msg}

	v, err := MemberConverter{}.Convert(cctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, "member-1", v.(chat.PartyMember).ID())

	v, err = MemberConverter{}.Convert(cctx, "member-1")
	require.NoError(t, err)
	assert.Equal(t, "Bob", v.(chat.PartyMember).DisplayName())

	_, err = MemberConverter{}.Convert(cctx, "nobody")
	var bad *BadArgument
	assert.ErrorAs(t, err, &bad)
}

func TestMemberConverterOutsideParty(t *testing.T) {
	msg, _ := friendMessage("!whois bob")
	cctx := &Context{message: msg}

	_, err := MemberConverter{}.Convert(cctx, "Bob")
	var bad *BadArgument
	assert.ErrorAs(t, err, &bad)
}

func TestConvertArgumentWrapsForeignErrors(t *testing.T) {
	boom := &valueError{msg: "boom"}
	p := &Parameter{
		Name: "n",
		Converters: []Converter{ConverterFunc(func(*Context, string) (any, error) {
			return nil, boom
		})},
	}

	_, err := convertArgument(nil, p, "x")
	var conv *ConversionError
	require.ErrorAs(t, err, &conv)
	assert.Same(t, boom, conv.Original())
	assert.True(t, errors.Is(err, boom))
}

func TestConvertArgumentUnionFirstSuccessWins(t *testing.T) {
	p := &Parameter{
		Name:       "dice",
		Converters: []Converter{IntConverter{}, StringConverter{}},
	}

	v, err := convertArgument(nil, p, "12")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	v, err = convertArgument(nil, p, "2d6")
	require.NoError(t, err)
	assert.Equal(t, "2d6", v)
}

func TestConvertArgumentUnionAllFail(t *testing.T) {
	p := &Parameter{
		Name:       "value",
		Converters: []Converter{IntConverter{}, BoolConverter{}},
	}

	_, err := convertArgument(nil, p, "nope")
	var union *BadUnionArgument
	require.ErrorAs(t, err, &union)
	assert.Len(t, union.Errors(), 2)
	assert.Equal(t, `Could not convert "value" into int or bool.`, union.Error())
}
