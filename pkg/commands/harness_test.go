package commands

import (
	"context"
	"sync"

	"github.com/keshon/partykit/pkg/chat"
)

// Test doubles for the chat interfaces. Sends are recorded so routing can be
// asserted.

type fakeAuthor struct {
	id   string
	name string
}

func (a *fakeAuthor) ID() string          { return a.id }
func (a *fakeAuthor) DisplayName() string { return a.name }

type fakeFriend struct {
	fakeAuthor
	mu   sync.Mutex
	sent []string
}

func (f *fakeFriend) Send(_ context.Context, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, content)
	return nil
}

func (f *fakeFriend) sentMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

type fakeParty struct {
	id      string
	members []chat.PartyMember
	mu      sync.Mutex
	sent    []string
}

func (p *fakeParty) ID() string                  { return p.id }
func (p *fakeParty) Members() []chat.PartyMember { return p.members }

func (p *fakeParty) Send(_ context.Context, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, content)
	return nil
}

func (p *fakeParty) sentMessages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.sent...)
}

type fakeClient struct {
	self chat.Author
}

func (c *fakeClient) Self() chat.Author { return c.self }

func newTestClient() *fakeClient {
	return &fakeClient{self: &fakeAuthor{id: "bot", name: "partybot"}}
}

func friendMessage(content string) (*chat.FriendMessage, *fakeFriend) {
	friend := &fakeFriend{fakeAuthor: fakeAuthor{id: "friend-1", name: "Alice"}}
	return chat.NewFriendMessage(newTestClient(), friend, content), friend
}

func partyMessage(content string) (*chat.PartyMessage, *fakeParty) {
	author := &fakeAuthor{id: "member-1", name: "Bob"}
	party := &fakeParty{id: "party-1", members: []chat.PartyMember{author}}
	return chat.NewPartyMessage(newTestClient(), party, author, content), party
}

// errorCollector is an ErrorHandler capturing every funneled error.
type errorCollector struct {
	mu     sync.Mutex
	errors []error
	ctxs   []*Context
}

func (e *errorCollector) handle(c *Context, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errors = append(e.errors, err)
	e.ctxs = append(e.ctxs, c)
}

func (e *errorCollector) all() []error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]error(nil), e.errors...)
}
