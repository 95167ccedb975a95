// Package notify holds transient, self-dismissing notifications (toasts).
//
// Nothing here runs a timer. Each toast carries its expiry and disappears
// from Active once the supplied clock passes it, so a view rendered after
// the delay simply no longer shows it.
package notify

import (
	"sync"
	"time"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Toast struct {
	ID        uint64
	Variant   Variant
	Message   string
	ExpiresAt time.Time
	// Remaining is how long the toast still has to live, as of the Active
	// call that returned it.
	Remaining time.Duration
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

type Center struct {
	mu     sync.Mutex
	now    Clock
	nextID uint64
	toasts []Toast
}

func NewCenter(now Clock) *Center {
	if now == nil {
		now = time.Now
	}
	return &Center{now: now}
}

// Push adds a toast that lives for ttl and returns it.
func (c *Center) Push(variant Variant, message string, ttl time.Duration) Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	t := Toast{
		ID:        c.nextID,
		Variant:   variant,
		Message:   message,
		ExpiresAt: c.now().Add(ttl),
	}
	c.toasts = append(c.toasts, t)
	return t
}

func (c *Center) Info(message string, ttl time.Duration) Toast {
	return c.Push(VariantDefault, message, ttl)
}

func (c *Center) Error(message string, ttl time.Duration) Toast {
	return c.Push(VariantDestructive, message, ttl)
}

// Active drops expired toasts and returns the remaining ones, oldest first.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	live := c.toasts[:0]
	for _, t := range c.toasts {
		if now.Before(t.ExpiresAt) {
			live = append(live, t)
		}
	}
	c.toasts = live

	out := make([]Toast, len(live))
	for i, t := range live {
		t.Remaining = t.ExpiresAt.Sub(now)
		out[i] = t
	}
	return out
}

// Dismiss removes a toast before it expires.
func (c *Center) Dismiss(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}
