package curves

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func createStepCurve() Curve {
	return NewStep(
		[]float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		[]int{20, 22, 25, 28, 31, 35, 37, 45, 60, 80, 100},
	)
}

func TestConstantCurve(t *testing.T) {
	// GIVEN
	curve := NewConstant(50)

	for _, temp := range []float64{-20, 0, 42.5, 100, 250} {
		// WHEN
		result, err := Evaluate(curve, temp)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 50, result)
	}
}

func TestStepCurve_Interpolation(t *testing.T) {
	// GIVEN
	curve := createStepCurve()

	// WHEN
	result, err := Evaluate(curve, 55)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 36, result)
}

func TestStepCurve_BelowFirstBreakpoint(t *testing.T) {
	// GIVEN
	curve := createStepCurve()

	// WHEN
	result, err := Evaluate(curve, -10)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 20, result)
}

func TestStepCurve_AboveLastBreakpoint(t *testing.T) {
	// GIVEN
	curve := createStepCurve()

	// WHEN
	result, err := Evaluate(curve, 120)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 100, result)
}

func TestStepCurve_ExactBreakpoints(t *testing.T) {
	// GIVEN
	curve := createStepCurve()

	for i, temp := range curve.Temps {
		// WHEN
		result, err := Evaluate(curve, temp)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, curve.Speeds[i], result, "temperature %v", temp)
	}
}

func TestStepCurve_Rounding(t *testing.T) {
	// GIVEN
	curve := NewStep([]float64{0, 100}, []int{0, 1})

	// WHEN
	below, _ := Evaluate(curve, 49.9)
	half, _ := Evaluate(curve, 50)

	// THEN
	assert.Equal(t, 0, below)
	assert.Equal(t, 1, half)
}

func TestStepCurve_Monotonic(t *testing.T) {
	// GIVEN
	curve := createStepCurve()

	// WHEN
	previous := -1
	for temp := 0.0; temp <= 100.0; temp += 0.25 {
		result, err := Evaluate(curve, temp)
		require.NoError(t, err)

		// THEN
		assert.GreaterOrEqual(t, result, previous, "temperature %v", temp)
		previous = result
	}
}

func TestStepCurve_DuplicateTemperature(t *testing.T) {
	// GIVEN
	curve := NewStep([]float64{0, 50, 50, 100}, []int{10, 30, 70, 100})

	// WHEN
	atStep, _ := Evaluate(curve, 50)
	after, _ := Evaluate(curve, 75)

	// THEN
	assert.Equal(t, 30, atStep)
	assert.Equal(t, 85, after)
}

func TestEvaluate_NaN(t *testing.T) {
	// GIVEN
	curve := createStepCurve()

	// WHEN
	_, err := Evaluate(curve, math.NaN())

	// THEN
	assert.Error(t, err)
}

func TestEvaluate_UnknownKind(t *testing.T) {
	// WHEN
	_, err := Evaluate(Curve{Kind: "Sine"}, 40)

	// THEN
	assert.Error(t, err)
}

func TestBezierCurve_Endpoints(t *testing.T) {
	// GIVEN
	curve := DefaultCurves()[string(KindBezier)]

	// WHEN
	low, err := Evaluate(curve, -5)
	require.NoError(t, err)
	high, err := Evaluate(curve, 110)
	require.NoError(t, err)

	// THEN
	assert.Equal(t, 0, low)
	assert.Equal(t, 100, high)
}

func TestBezierCurve_Midpoint(t *testing.T) {
	// GIVEN
	curve := DefaultCurves()[string(KindBezier)]

	// WHEN
	result, err := Evaluate(curve, 50)

	// THEN
	// symmetric control points put x=50 at t=0.5, where y=50
	require.NoError(t, err)
	assert.Equal(t, 50, result)
}

func TestBezierCurve_Linear(t *testing.T) {
	// GIVEN
	curve := NewBezier([]Point{{X: 0, Y: 0}, {X: 100.0 / 3, Y: 100.0 / 3}, {X: 200.0 / 3, Y: 200.0 / 3}, {X: 100, Y: 100}})

	for _, temp := range []float64{10, 25, 63, 90} {
		// WHEN
		result, err := Evaluate(curve, temp)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, int(temp), result)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	// GIVEN
	curve := createStepCurve()

	// WHEN
	clone := curve.Clone()
	clone.Speeds[0] = 99
	clone.Temps[0] = -1

	// THEN
	assert.Equal(t, 20, curve.Speeds[0])
	assert.Equal(t, 0.0, curve.Temps[0])
}

func TestDefaultCurves(t *testing.T) {
	// WHEN
	defaults := DefaultCurves()

	// THEN
	assert.Len(t, defaults, 3)
	for name, curve := range defaults {
		assert.NoError(t, Validate(curve), name)
		assert.Equal(t, Kind(name), curve.Kind)
	}
	assert.Len(t, defaults[string(KindStep)].Temps, 21)
}
