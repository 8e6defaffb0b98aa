package redis

import (
	"context"
	"time"
)

// SendCooldown gates how often outbound emails may be triggered for a
// given address. The gate is a SetNX key with a TTL; while the key lives,
// further sends for that address are skipped.
type SendCooldown struct {
	window time.Duration
}

// NewSendCooldown creates a cooldown with the given window. A zero or
// negative window disables the gate.
func NewSendCooldown(window time.Duration) *SendCooldown {
	return &SendCooldown{window: window}
}

// Allow reports whether a send for the address is currently permitted and
// opens the cooldown window if so. Degrades to always-allow when Redis is
// unavailable so email delivery never depends on the cache being up.
func (c *SendCooldown) Allow(ctx context.Context, kind, email string) bool {
	if c == nil || c.window <= 0 || client == nil {
		return true
	}
	ok, err := SetNX(ctx, "send-cooldown:"+kind+":"+email, 1, c.window)
	if err != nil {
		return true
	}
	return ok
}
