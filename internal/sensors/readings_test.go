package sensors

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestReadingsKeepLastValue(t *testing.T) {
	// GIVEN
	r := NewReadings()

	// WHEN
	r.Set("cpu", 40)
	r.Set("cpu", 42.5)
	r.Set("gpu", 60)

	// THEN
	value, ok := r.Get("cpu")
	assert.True(t, ok)
	assert.Equal(t, 42.5, value)
	assert.Equal(t, map[string]float64{"cpu": 42.5, "gpu": 60}, r.All())
}

func TestReadingsUnknownSensor(t *testing.T) {
	// GIVEN
	r := NewReadings()

	// WHEN
	_, ok := r.Get("cpu")

	// THEN
	assert.False(t, ok)
}
