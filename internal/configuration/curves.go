package configuration

import (
	"fmt"
	"github.com/At1ass/tt-riingd/internal/curves"
)

const (
	CurveKindConstant = "constant"
	CurveKindStep     = "step-curve"
	CurveKindBezier   = "bezier"
)

type CurveConfig struct {
	Id   string `json:"id"`
	Kind string `json:"kind"`

	// constant
	Speed int `json:"speed,omitempty"`

	// step-curve
	Tmps []float64 `json:"tmps,omitempty"`
	Spds []int     `json:"spds,omitempty"`

	// bezier
	Points []PointConfig `json:"points,omitempty"`
}

type PointConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FindCurve returns the curve definition with the given id
func (c *Configuration) FindCurve(id string) (*CurveConfig, bool) {
	for i := range c.Curves {
		if c.Curves[i].Id == id {
			return &c.Curves[i], true
		}
	}
	return nil, false
}

// ToCurve converts the config definition into its runtime representation
func (c CurveConfig) ToCurve() (curves.Curve, error) {
	switch c.Kind {
	case CurveKindConstant:
		return curves.NewConstant(c.Speed), nil
	case CurveKindStep:
		return curves.NewStep(c.Tmps, c.Spds), nil
	case CurveKindBezier:
		points := make([]curves.Point, 0, len(c.Points))
		for _, p := range c.Points {
			points = append(points, curves.Point{X: p.X, Y: p.Y})
		}
		return curves.NewBezier(points), nil
	}
	return curves.Curve{}, fmt.Errorf("unknown curve kind %q, use one of: %s | %s | %s", c.Kind, CurveKindConstant, CurveKindStep, CurveKindBezier)
}

// FanCurves resolves the curve set assignable to the given fan
func (c *Configuration) FanCurves(fan FanConfig) (map[string]curves.Curve, error) {
	if fan.UsesDefaultCurves {
		return curves.DefaultCurves(), nil
	}

	result := make(map[string]curves.Curve, len(fan.Curves))
	for _, id := range fan.Curves {
		curveConfig, ok := c.FindCurve(id)
		if !ok {
			return nil, fmt.Errorf("curve %s is not defined", id)
		}
		curve, err := curveConfig.ToCurve()
		if err != nil {
			return nil, err
		}
		result[id] = curve
	}
	return result, nil
}
