package curves

import (
	"errors"
	"fmt"
	"github.com/At1ass/tt-riingd/internal/util"
	"math"
)

type Kind string

const (
	KindConstant Kind = "Constant"
	KindStep     Kind = "StepCurve"
	KindBezier   Kind = "BezierCurve"

	MinSpeed = 0
	MaxSpeed = 100

	bezierPointCount    = 4
	bezierMaxIterations = 100
	bezierEpsilon       = 1e-6
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve maps a temperature (°C) to a fan speed in percent.
// Only the fields belonging to Kind are meaningful.
type Curve struct {
	Kind Kind

	// Constant
	Speed int

	// StepCurve
	Temps  []float64
	Speeds []int

	// BezierCurve
	Points []Point
}

func NewConstant(speed int) Curve {
	return Curve{Kind: KindConstant, Speed: speed}
}

func NewStep(temps []float64, speeds []int) Curve {
	return Curve{Kind: KindStep, Temps: temps, Speeds: speeds}
}

func NewBezier(points []Point) Curve {
	return Curve{Kind: KindBezier, Points: points}
}

// Evaluate calculates the fan speed in [0..100] for the given temperature.
// It does not validate the curve, use Validate on every external mutation.
func Evaluate(curve Curve, temperature float64) (int, error) {
	if math.IsNaN(temperature) {
		return 0, errors.New("temperature is not a number")
	}

	switch curve.Kind {
	case KindConstant:
		return curve.Speed, nil
	case KindStep:
		if len(curve.Temps) == 0 || len(curve.Temps) != len(curve.Speeds) {
			return 0, errors.New("step curve has no usable breakpoints")
		}
		return evaluateStep(curve.Temps, curve.Speeds, temperature), nil
	case KindBezier:
		if len(curve.Points) != bezierPointCount {
			return 0, fmt.Errorf("bezier curve must have %d points", bezierPointCount)
		}
		return evaluateBezier(curve.Points, temperature), nil
	}

	return 0, fmt.Errorf("unknown curve kind: %s", curve.Kind)
}

// evaluateStep interpolates linearly between the breakpoints surrounding temperature.
// With repeated temperatures the first matching breakpoint wins.
func evaluateStep(temps []float64, speeds []int, temperature float64) int {
	last := len(temps) - 1
	if temperature <= temps[0] {
		return speeds[0]
	}
	if temperature >= temps[last] {
		return speeds[last]
	}

	for i := 0; i < last; i++ {
		currentT, nextT := temps[i], temps[i+1]
		if temperature == currentT {
			return speeds[i]
		}
		if temperature > currentT && temperature < nextT {
			ratio := util.Ratio(temperature, currentT, nextT)
			return util.RoundPercent(util.Lerp(float64(speeds[i]), float64(speeds[i+1]), ratio))
		}
	}

	return speeds[last]
}

// evaluateBezier searches the curve parameter t whose x coordinate matches
// temperature by bisection. x(t) is monotonic as long as the x coordinates of
// the control points are non-decreasing.
func evaluateBezier(points []Point, temperature float64) int {
	first, last := points[0], points[bezierPointCount-1]
	if temperature <= first.X {
		return util.RoundPercent(first.Y)
	}
	if temperature >= last.X {
		return util.RoundPercent(last.Y)
	}

	low, high, mid := 0.0, 1.0, 0.0
	for i := 0; i < bezierMaxIterations; i++ {
		mid = (low + high) / 2
		p := bezierAt(points, mid)
		if math.Abs(p.X-temperature) < bezierEpsilon {
			return util.RoundPercent(p.Y)
		}
		if p.X < temperature {
			low = mid
		} else {
			high = mid
		}
	}

	return util.RoundPercent(bezierAt(points, mid).Y)
}

func bezierAt(points []Point, t float64) Point {
	u := 1 - t
	uu := u * u
	tt := t * t
	a := uu * u
	b := 3 * uu * t
	c := 3 * u * tt
	d := tt * t

	return Point{
		X: a*points[0].X + b*points[1].X + c*points[2].X + d*points[3].X,
		Y: a*points[0].Y + b*points[1].Y + c*points[2].Y + d*points[3].Y,
	}
}

// SameKind reports whether both curves are of the same variant
func (c Curve) SameKind(other Curve) bool {
	return c.Kind == other.Kind
}

// Clone returns a deep copy that shares no slices with c
func (c Curve) Clone() Curve {
	clone := Curve{Kind: c.Kind, Speed: c.Speed}
	if c.Temps != nil {
		clone.Temps = append([]float64(nil), c.Temps...)
	}
	if c.Speeds != nil {
		clone.Speeds = append([]int(nil), c.Speeds...)
	}
	if c.Points != nil {
		clone.Points = append([]Point(nil), c.Points...)
	}
	return clone
}

// DefaultCurves is the built-in curve set for fans without configured curves
func DefaultCurves() map[string]Curve {
	var temps []float64
	var speeds []int
	for i := 0; i <= 100; i += 5 {
		temps = append(temps, float64(i))
		speeds = append(speeds, i)
	}

	return map[string]Curve{
		string(KindConstant): NewConstant(50),
		string(KindStep):     NewStep(temps, speeds),
		string(KindBezier): NewBezier([]Point{
			{X: 0, Y: 0},
			{X: 40, Y: 60},
			{X: 60, Y: 40},
			{X: 100, Y: 100},
		}),
	}
}
