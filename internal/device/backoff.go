package device

import "time"

const (
	BackoffInitial = 1 * time.Second
	BackoffMax     = 60 * time.Second
	BackoffFactor  = 2
)

// Backoff schedules reconnect attempts with an exponentially growing delay.
// It never gives up.
type Backoff struct {
	initial time.Duration
	max     time.Duration
	factor  int

	delay    time.Duration
	failures int
	next     time.Time
}

func NewBackoff() *Backoff {
	return &Backoff{
		initial: BackoffInitial,
		max:     BackoffMax,
		factor:  BackoffFactor,
	}
}

// Ready reports whether an attempt may be made at the given time.
func (b *Backoff) Ready(now time.Time) bool {
	return !now.Before(b.next)
}

// Failed records a failed attempt and schedules the next one.
func (b *Backoff) Failed(now time.Time) {
	if b.failures == 0 {
		b.delay = b.initial
	} else {
		b.delay *= time.Duration(b.factor)
		if b.delay > b.max {
			b.delay = b.max
		}
	}
	b.failures++
	b.next = now.Add(b.delay)
}

// Reset forgets all failures after a successful attempt.
func (b *Backoff) Reset() {
	b.delay = 0
	b.failures = 0
	b.next = time.Time{}
}

func (b *Backoff) Failures() int {
	return b.failures
}

// NextAttempt is the earliest time of the next attempt, zero if there were no failures.
func (b *Backoff) NextAttempt() time.Time {
	return b.next
}
