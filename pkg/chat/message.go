// Package chat models received messages and their reply routing. A message
// arrives either from a friend in a private conversation or from a member of
// a party; replying goes back through the channel it came from. The
// interfaces here are implemented by transport adapters (see
// internal/discord); pkg/commands dispatches on them without knowing the
// transport.
package chat

import (
	"context"
	"time"
)

// Author identifies who sent a message.
type Author interface {
	ID() string
	DisplayName() string
}

// Friend is a direct contact that can receive private messages.
type Friend interface {
	Author
	Send(ctx context.Context, content string) error
}

// PartyMember is an author scoped to a party. It deliberately has no Send:
// replies to party messages go to the party, never to the member.
type PartyMember interface {
	Author
}

// Party is a shared group conversation.
type Party interface {
	ID() string
	Members() []PartyMember
	Send(ctx context.Context, content string) error
}

// Client is the session a message arrived through. Self identifies the bot's
// own user so dispatchers can skip self-authored messages.
type Client interface {
	Self() Author
}

// Message is a received message. Implementations are immutable after
// construction and safe for concurrent readers. Reply routes through the
// channel the message came from: the author for a friend message, the whole
// party for a party message. The outcome of Reply is owned entirely by the
// underlying send primitive.
type Message interface {
	Client() Client
	Author() Author
	Content() string
	CreatedAt() time.Time
	Reply(ctx context.Context, content string) error
}

// FriendMessage is a message received in a private conversation.
type FriendMessage struct {
	client    Client
	author    Friend
	content   string
	createdAt time.Time
}

// NewFriendMessage constructs a FriendMessage, capturing the receipt time in
// UTC.
func NewFriendMessage(client Client, author Friend, content string) *FriendMessage {
	return &FriendMessage{
		client:    client,
		author:    author,
		content:   content,
		createdAt: time.Now().UTC(),
	}
}

// Client returns the session the message arrived through.
func (m *FriendMessage) Client() Client { return m.client }

// Author returns the friend who sent the message.
func (m *FriendMessage) Author() Author { return m.author }

// Friend returns the author with its concrete type.
func (m *FriendMessage) Friend() Friend { return m.author }

// Content returns the message text.
func (m *FriendMessage) Content() string { return m.content }

// CreatedAt returns the UTC wall-clock time the message was received.
func (m *FriendMessage) CreatedAt() time.Time { return m.createdAt }

// Reply sends content back to the author through their direct channel.
func (m *FriendMessage) Reply(ctx context.Context, content string) error {
	return m.author.Send(ctx, content)
}

// PartyMessage is a message received in a party. Its author is a member of
// that party.
type PartyMessage struct {
	client    Client
	party     Party
	author    PartyMember
	content   string
	createdAt time.Time
}

// NewPartyMessage constructs a PartyMessage, capturing the receipt time in
// UTC.
func NewPartyMessage(client Client, party Party, author PartyMember, content string) *PartyMessage {
	return &PartyMessage{
		client:    client,
		party:     party,
		author:    author,
		content:   content,
		createdAt: time.Now().UTC(),
	}
}

// Client returns the session the message arrived through.
func (m *PartyMessage) Client() Client { return m.client }

// Author returns the party member who sent the message.
func (m *PartyMessage) Author() Author { return m.author }

// Member returns the author with its concrete type.
func (m *PartyMessage) Member() PartyMember { return m.author }

// Party returns the party the message was sent in.
func (m *PartyMessage) Party() Party { return m.party }

// Content returns the message text.
func (m *PartyMessage) Content() string { return m.content }

// CreatedAt returns the UTC wall-clock time the message was received.
func (m *PartyMessage) CreatedAt() time.Time { return m.createdAt }

// Reply sends content to the whole party, not to the individual author.
func (m *PartyMessage) Reply(ctx context.Context, content string) error {
	return m.party.Send(ctx, content)
}
