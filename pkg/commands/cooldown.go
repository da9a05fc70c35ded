package commands

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/keshon/partykit/pkg/chat"
)

// BucketType scopes cooldown and concurrency counters.
type BucketType int

const (
	// BucketDefault keeps one shared counter for everybody.
	BucketDefault BucketType = iota
	// BucketUser keeps one counter per message author.
	BucketUser
)

// String returns the canonical bucket name, which also drives the
// MaxConcurrencyReached message ("globally" for default).
func (b BucketType) String() string {
	switch b {
	case BucketUser:
		return "user"
	default:
		return "default"
	}
}

// key returns the bucket key for a message. The default bucket collapses
// everything onto one key.
func (b BucketType) key(msg chat.Message) string {
	if b == BucketUser && msg != nil {
		if author := msg.Author(); author != nil {
			return author.ID()
		}
	}
	return ""
}

// Cooldown describes a rate limit: Rate uses per Per window, scoped by Type.
// It is the payload carried by *CommandOnCooldown.
type Cooldown struct {
	Rate int
	Per  time.Duration
	Type BucketType
}

// CooldownMapping holds one token bucket per bucket key for a single
// command. Safe for concurrent use.
type CooldownMapping struct {
	mu       sync.Mutex
	original Cooldown
	buckets  map[string]*rate.Limiter
}

// NewCooldownMapping creates a mapping for the given cooldown. Panics if
// uses is less than 1 or per is not positive.
func NewCooldownMapping(uses int, per time.Duration, bucket BucketType) *CooldownMapping {
	if uses < 1 {
		panic("commands: cooldown rate cannot be less than 1")
	}
	if per <= 0 {
		panic("commands: cooldown window must be positive")
	}
	return &CooldownMapping{
		original: Cooldown{Rate: uses, Per: per, Type: bucket},
		buckets:  make(map[string]*rate.Limiter),
	}
}

// Cooldown returns the descriptor the mapping was created from.
func (m *CooldownMapping) Cooldown() Cooldown { return m.original }

// UpdateRateLimit consumes one use from the message's bucket. It returns 0
// when the use is allowed, otherwise the seconds to wait before retrying
// (and the bucket is left untouched).
func (m *CooldownMapping) UpdateRateLimit(msg chat.Message, now time.Time) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.original.Type.key(msg)
	lim, ok := m.buckets[key]
	if !ok {
		limit := rate.Limit(float64(m.original.Rate) / m.original.Per.Seconds())
		lim = rate.NewLimiter(limit, m.original.Rate)
		m.buckets[key] = lim
	}

	res := lim.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return delay.Seconds()
	}
	return 0
}

// Reset drops the bucket for a message, clearing its cooldown.
func (m *CooldownMapping) Reset(msg chat.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets, m.original.Type.key(msg))
}

// MaxConcurrency caps how many invocations of one command may run at the
// same time per bucket key. Safe for concurrent use.
type MaxConcurrency struct {
	number int
	per    BucketType
	wait   bool

	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewMaxConcurrency creates a limit of number simultaneous invocations per
// bucket. With wait set, Acquire blocks for a free slot instead of failing.
// Panics if number is less than 1.
func NewMaxConcurrency(number int, per BucketType, wait bool) *MaxConcurrency {
	if number < 1 {
		panic("commands: max concurrency number cannot be less than 1")
	}
	return &MaxConcurrency{
		number: number,
		per:    per,
		wait:   wait,
		slots:  make(map[string]chan struct{}),
	}
}

// Number returns the configured limit.
func (c *MaxConcurrency) Number() int { return c.number }

// Per returns the bucket the limit is scoped to.
func (c *MaxConcurrency) Per() BucketType { return c.per }

func (c *MaxConcurrency) slot(msg chat.Message) chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.per.key(msg)
	sem, ok := c.slots[key]
	if !ok {
		sem = make(chan struct{}, c.number)
		c.slots[key] = sem
	}
	return sem
}

// Acquire claims a slot for the message's bucket. In non-wait mode a full
// bucket fails with *MaxConcurrencyReached; in wait mode it blocks until a
// slot frees up or ctx is done.
func (c *MaxConcurrency) Acquire(ctx context.Context, msg chat.Message) error {
	sem := c.slot(msg)
	if c.wait {
		select {
		case sem <- struct{}{}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	select {
	case sem <- struct{}{}:
		return nil
	default:
		return NewMaxConcurrencyReached(c.number, c.per)
	}
}

// Release frees the slot claimed by Acquire for the same message.
func (c *MaxConcurrency) Release(msg chat.Message) {
	sem := c.slot(msg)
	select {
	case <-sem:
	default:
	}
}
