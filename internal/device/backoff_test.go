package device

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestBackoffDoublesUpToCap(t *testing.T) {
	// GIVEN
	b := NewBackoff()
	now := time.Unix(0, 0)
	var delays []time.Duration

	// WHEN
	for i := 0; i < 9; i++ {
		b.Failed(now)
		delays = append(delays, b.NextAttempt().Sub(now))
	}

	// THEN
	expected := []time.Duration{
		1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
		16 * time.Second, 32 * time.Second, 60 * time.Second, 60 * time.Second, 60 * time.Second,
	}
	assert.Equal(t, expected, delays)
	assert.Equal(t, 9, b.Failures())
}

func TestBackoffReady(t *testing.T) {
	// GIVEN
	b := NewBackoff()
	now := time.Unix(100, 0)

	// WHEN
	b.Failed(now)

	// THEN
	assert.False(t, b.Ready(now))
	assert.False(t, b.Ready(now.Add(999*time.Millisecond)))
	assert.True(t, b.Ready(now.Add(time.Second)))
}

func TestBackoffReset(t *testing.T) {
	// GIVEN
	b := NewBackoff()
	now := time.Unix(100, 0)
	b.Failed(now)
	b.Failed(now)

	// WHEN
	b.Reset()
	b.Failed(now)

	// THEN
	assert.Equal(t, 1, b.Failures())
	assert.Equal(t, now.Add(time.Second), b.NextAttempt())
}

func TestBackoffReadyWithoutFailures(t *testing.T) {
	// GIVEN
	b := NewBackoff()

	// THEN
	assert.True(t, b.Ready(time.Now()))
}
