package configuration

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestDiff_NoChanges(t *testing.T) {
	// GIVEN
	current := createValidConfig()
	updated := createValidConfig()

	// WHEN
	changes := Diff(&current, &updated)

	// THEN
	assert.True(t, changes.IsEmpty())
	assert.False(t, changes.RequiresRestart())
}

func TestDiff_CurveParameters(t *testing.T) {
	// GIVEN
	current := createValidConfig()
	updated := createValidConfig()
	updated.Curves[0].Spds = []int{30, 60, 100}

	// WHEN
	changes := Diff(&current, &updated)

	// THEN
	assert.False(t, changes.RequiresRestart())
	assert.False(t, changes.IsEmpty())
	assert.Equal(t, []string{"cpu_curve"}, changes.Curves)
}

func TestDiff_CurveKind(t *testing.T) {
	// GIVEN
	current := createValidConfig()
	updated := createValidConfig()
	updated.Curves[1] = CurveConfig{Id: "silent", Kind: CurveKindStep, Tmps: []float64{0, 100}, Spds: []int{20, 40}}

	// WHEN
	changes := Diff(&current, &updated)

	// THEN
	assert.True(t, changes.RequiresRestart())
	assert.Equal(t, []string{"curve kinds"}, changes.RestartSections())
	assert.Empty(t, changes.Curves)
}

func TestDiff_ColdSections(t *testing.T) {
	// GIVEN
	current := createValidConfig()
	updated := createValidConfig()
	updated.TickSeconds = 5
	updated.Controllers[0].Fans[0].ActiveCurve = "silent"
	updated.Sensors[0].Feature = "Tdie"
	updated.Colors[0].Rgb = []int{255, 0, 0}

	// WHEN
	changes := Diff(&current, &updated)

	// THEN
	assert.True(t, changes.RequiresRestart())
	assert.Equal(t, []string{"settings", "controllers", "sensors", "colors"}, changes.RestartSections())
}
