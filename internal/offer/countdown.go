// Package offer models the limited-time offer countdown shown on course
// detail pages: a remaining-duration breakdown that ticks once per second and
// flips to a terminal expired state.
package offer

import (
	"context"
	"encoding/json"
	"time"
)

// State is the countdown lifecycle state.
type State int

// Countdown states. StateExpired is terminal: a countdown never re-enters
// StateCounting.
const (
	StateCounting State = iota
	StateExpired
)

// String returns the wire representation of the state.
func (s State) String() string {
	if s == StateExpired {
		return "expired"
	}
	return "counting"
}

// MarshalJSON encodes the state as its string form.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Remaining is the integer decomposition of the time left in the offer.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Snapshot is one observation of the countdown.
type Snapshot struct {
	State     State     `json:"state"`
	Remaining Remaining `json:"remaining"`
	EndsAt    time.Time `json:"ends_at"`
}

// Expired reports whether the snapshot is terminal.
func (s Snapshot) Expired() bool {
	return s.State == StateExpired
}

// Breakdown decomposes a positive duration into days, hours, minutes and
// seconds, each step consuming the remainder of the previous so components
// never overlap (26h is 1 day 2 hours, not 26 hours). Non-positive durations
// decompose to all zeros.
func Breakdown(d time.Duration) Remaining {
	if d <= 0 {
		return Remaining{}
	}
	days := d / (24 * time.Hour)
	rem := d % (24 * time.Hour)
	hours := rem / time.Hour
	rem %= time.Hour
	minutes := rem / time.Minute
	rem %= time.Minute
	seconds := rem / time.Second
	return Remaining{
		Days:    int(days),
		Hours:   int(hours),
		Minutes: int(minutes),
		Seconds: int(seconds),
	}
}

// At computes the countdown snapshot for the given instant. Once now reaches
// or passes the end timestamp the snapshot is expired with zero remaining.
func At(end, now time.Time) Snapshot {
	diff := end.Sub(now)
	if diff <= 0 {
		return Snapshot{State: StateExpired, EndsAt: end}
	}
	return Snapshot{State: StateCounting, Remaining: Breakdown(diff), EndsAt: end}
}

// SnapshotFor evaluates an optional RFC 3339 end timestamp. A missing or
// unparsable value means "no offer" and yields nil rather than an error.
func SnapshotFor(raw string, now time.Time) *Snapshot {
	if raw == "" {
		return nil
	}
	end, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	snap := At(end, now)
	return &snap
}

// Countdown recomputes the remaining duration on a fixed cadence until the
// offer expires.
type Countdown struct {
	end      time.Time
	interval time.Duration
	now      func() time.Time
}

// Option customises a Countdown.
type Option func(*Countdown)

// WithInterval overrides the one-second recomputation cadence.
func WithInterval(d time.Duration) Option {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithClock injects the time source, used by tests to simulate ticking.
func WithClock(now func() time.Time) Option {
	return func(c *Countdown) {
		if now != nil {
			c.now = now
		}
	}
}

// New builds a countdown toward the given end timestamp.
func New(end time.Time, opts ...Option) *Countdown {
	c := &Countdown{end: end, interval: time.Second, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current observation.
func (c *Countdown) Snapshot() Snapshot {
	return At(c.end, c.now())
}

// Run delivers an eager snapshot, then one per interval, stopping at the
// first expired observation or when ctx is cancelled. An offer already past
// at activation is reported expired immediately, with no counting frame. The
// ticker is released before returning, so a torn-down caller leaks nothing.
func (c *Countdown) Run(ctx context.Context, observe func(Snapshot)) {
	snap := c.Snapshot()
	observe(snap)
	if snap.Expired() {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap = c.Snapshot()
			observe(snap)
			if snap.Expired() {
				return
			}
		}
	}
}
