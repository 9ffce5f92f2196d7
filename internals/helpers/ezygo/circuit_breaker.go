package ezygo

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker is rejecting calls. Controllers
// map it to 503 and fall back to the stored report snapshot when one exists.
var ErrCircuitOpen = errors.New("ezygo: circuit open, portal temporarily unreachable")

const (
	breakerFailureThreshold = 5
	breakerCooldown         = 30 * time.Second
)

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

// CircuitBreaker guards the portal client against hammering a dead upstream.
// After breakerFailureThreshold consecutive failures it opens for
// breakerCooldown, then lets a single probe through (half-open). A probe
// success closes it again, a probe failure re-opens it.
type CircuitBreaker struct {
	mu       sync.Mutex
	state    breakerState
	failures int
	openedAt time.Time
	now      func() time.Time
}

func NewCircuitBreaker() *CircuitBreaker {
	return &CircuitBreaker{now: time.Now}
}

// Allow reports whether a call may proceed right now.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerClosed:
		return nil
	case breakerOpen:
		if b.now().Sub(b.openedAt) >= breakerCooldown {
			b.state = breakerHalfOpen
			return nil
		}
		return ErrCircuitOpen
	default: // half-open: one probe already in flight
		return ErrCircuitOpen
	}
}

// ReportSuccess resets the breaker after a successful call.
func (b *CircuitBreaker) ReportSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = breakerClosed
	b.failures = 0
}

// ReportFailure records a failed call and opens the breaker when the
// consecutive-failure threshold is hit (or immediately after a failed probe).
func (b *CircuitBreaker) ReportFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == breakerHalfOpen {
		b.state = breakerOpen
		b.openedAt = b.now()
		return
	}

	b.failures++
	if b.failures >= breakerFailureThreshold {
		b.state = breakerOpen
		b.openedAt = b.now()
	}
}
