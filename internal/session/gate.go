// Package session implements the cookie-backed password gates protecting the
// admin dashboard and the CMS studio. A gate is a plain shared-secret
// mechanism, not real authentication: it records that a password check
// succeeded and for how long that result stays valid.
package session

import (
	"strconv"
	"time"
)

// DefaultTTL is the validity window of an issued session.
const DefaultTTL = 24 * time.Hour

// markerValue mirrors the literal the site stores in its auth cookie.
const markerValue = "authenticated"

// Store is the persisted cookie surface a gate reads and writes: named string
// entries with an expiry.
type Store interface {
	Get(name string) (string, bool)
	Set(name, value string, ttl time.Duration)
	Delete(name string)
}

// Gate decides whether a caller holds a valid session and manages issuance
// and expiry. The session is persisted as two entries: the authenticated
// marker and the issuance timestamp in unix milliseconds.
type Gate struct {
	markerName string
	issuedName string
	ttl        time.Duration
}

// NewGate builds a gate whose entries are named <prefix>_auth and
// <prefix>_auth_time. A non-positive ttl falls back to DefaultTTL.
func NewGate(prefix string, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Gate{
		markerName: prefix + "_auth",
		issuedName: prefix + "_auth_time",
		ttl:        ttl,
	}
}

// TTL returns the configured validity window.
func (g *Gate) TTL() time.Duration {
	return g.ttl
}

// Issue writes the authenticated marker and issuance timestamp, both valid
// for the gate's TTL from now.
func (g *Gate) Issue(store Store, now time.Time) {
	store.Set(g.markerName, markerValue, g.ttl)
	store.Set(g.issuedName, strconv.FormatInt(now.UnixMilli(), 10), g.ttl)
}

// Check reports whether the store holds a live session. Any failure (absent
// marker, missing or corrupt timestamp, elapsed TTL) clears both entries and
// returns false, so a half-valid state never lingers. Repeated calls are
// idempotent: once false, always false until the next Issue.
func (g *Gate) Check(store Store, now time.Time) bool {
	marker, ok := store.Get(g.markerName)
	if !ok || marker != markerValue {
		g.Revoke(store)
		return false
	}
	raw, ok := store.Get(g.issuedName)
	if !ok {
		g.Revoke(store)
		return false
	}
	issuedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		g.Revoke(store)
		return false
	}
	if now.Sub(time.UnixMilli(issuedAt)) >= g.ttl {
		g.Revoke(store)
		return false
	}
	return true
}

// Revoke unconditionally clears both entries.
func (g *Gate) Revoke(store Store) {
	store.Delete(g.markerName)
	store.Delete(g.issuedName)
}
