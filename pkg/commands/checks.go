package commands

import "github.com/keshon/partykit/pkg/chat"

// Check is a predicate gating command invocation. A nil return allows the
// invocation; a taxonomy error (usually from the CheckFailure family)
// rejects it and goes to the error hook.
type Check func(c *Context) error

// PrivateMessagesOnly restricts a command to private conversations.
func PrivateMessagesOnly() Check {
	return func(c *Context) error {
		if _, ok := c.Message().(*chat.FriendMessage); !ok {
			return NewPrivateMessageOnly("")
		}
		return nil
	}
}

// PartyOnly restricts a command to party chat.
func PartyOnly() Check {
	return func(c *Context) error {
		if _, ok := c.Message().(*chat.PartyMessage); !ok {
			return NewPartyMessageOnly("")
		}
		return nil
	}
}

// IsOwner restricts a command to the bot owners configured on the Bot.
func IsOwner() Check {
	return func(c *Context) error {
		if !c.Bot().IsOwner(c.Author().ID()) {
			return NewNotOwner("")
		}
		return nil
	}
}

// CheckAny passes if at least one of the given checks passes. If every check
// fails with a CheckFailure kind the result is *CheckAnyFailure carrying all
// of them; any other error short-circuits unchanged.
func CheckAny(checks ...Check) Check {
	if len(checks) == 0 {
		panic("commands: CheckAny requires at least one check")
	}
	return func(c *Context) error {
		errs := make([]error, 0, len(checks))
		for _, check := range checks {
			err := check(c)
			if err == nil {
				return nil
			}
			if !IsCheckFailure(err) {
				return err
			}
			errs = append(errs, err)
		}
		return NewCheckAnyFailure(checks, errs)
	}
}
