package curves

import (
	"fmt"
	"github.com/At1ass/tt-riingd/internal/util"
)

// ValidationError is returned for curve definitions that must not be applied
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid curve: " + e.Reason
}

func invalid(format string, a ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, a...)}
}

// Validate checks the invariants of the curve definition
func Validate(curve Curve) error {
	switch curve.Kind {
	case KindConstant:
		return validateSpeed(curve.Speed)
	case KindStep:
		return validateStep(curve)
	case KindBezier:
		return validateBezier(curve)
	}
	return invalid("unknown curve kind %q", curve.Kind)
}

func validateSpeed(speed int) error {
	if speed < MinSpeed || speed > MaxSpeed {
		return invalid("speed %d out of range [%d..%d]", speed, MinSpeed, MaxSpeed)
	}
	return nil
}

func validateStep(curve Curve) error {
	if len(curve.Temps) == 0 || len(curve.Speeds) == 0 {
		return invalid("temperatures and speeds must not be empty")
	}
	if len(curve.Temps) != len(curve.Speeds) {
		return invalid("%d temperatures but %d speeds", len(curve.Temps), len(curve.Speeds))
	}
	if len(curve.Temps) < 2 {
		return invalid("at least 2 breakpoints are required")
	}
	for _, t := range curve.Temps {
		if !util.IsFinite(t) {
			return invalid("temperature %v is not a finite number", t)
		}
	}
	if !util.IsNonDecreasing(curve.Temps) {
		return invalid("temperatures must be non-decreasing")
	}
	for _, s := range curve.Speeds {
		if err := validateSpeed(s); err != nil {
			return err
		}
	}
	return nil
}

func validateBezier(curve Curve) error {
	if len(curve.Points) != bezierPointCount {
		return invalid("bezier curve needs exactly %d points, got %d", bezierPointCount, len(curve.Points))
	}
	xs := make([]float64, 0, len(curve.Points))
	for _, p := range curve.Points {
		if !util.IsFinite(p.X) || !util.IsFinite(p.Y) {
			return invalid("point (%v, %v) is not finite", p.X, p.Y)
		}
		if p.Y < MinSpeed || p.Y > MaxSpeed {
			return invalid("point speed %v out of range [%d..%d]", p.Y, MinSpeed, MaxSpeed)
		}
		xs = append(xs, p.X)
	}
	if !util.IsNonDecreasing(xs) {
		return invalid("point temperatures must be non-decreasing")
	}
	return nil
}
