package util

import (
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	// GIVEN
	a := 0.0
	b := 100.0
	c := 50.0

	expected := 0.5

	// WHEN
	result := Ratio(c, a, b)

	// THEN
	assert.Equal(t, expected, result)
}

func TestLerp(t *testing.T) {
	// GIVEN
	a := 35.0
	b := 37.0

	// WHEN
	result := Lerp(a, b, 0.5)

	// THEN
	assert.Equal(t, 36.0, result)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-5, 0, 100))
	assert.Equal(t, 100, Clamp(150, 0, 100))
	assert.Equal(t, 42, Clamp(42, 0, 100))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 36, RoundPercent(36.0))
	assert.Equal(t, 37, RoundPercent(36.5))
	assert.Equal(t, 36, RoundPercent(36.49))
	assert.Equal(t, 0, RoundPercent(-3.2))
	assert.Equal(t, 100, RoundPercent(120.7))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(42.0))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}
