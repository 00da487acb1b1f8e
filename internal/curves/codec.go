package curves

import (
	"encoding/json"
	"fmt"
)

// envelope is the adjacently tagged wire form {"t": <kind>, "c": <content>}
type envelope struct {
	T Kind            `json:"t"`
	C json.RawMessage `json:"c"`
}

type stepContent struct {
	Temps  []float64 `json:"temps"`
	Speeds []int     `json:"speeds"`
}

type bezierContent struct {
	Points []Point `json:"points"`
}

func (c Curve) MarshalJSON() ([]byte, error) {
	var content interface{}
	switch c.Kind {
	case KindConstant:
		content = c.Speed
	case KindStep:
		content = stepContent{Temps: c.Temps, Speeds: c.Speeds}
	case KindBezier:
		content = bezierContent{Points: c.Points}
	default:
		return nil, fmt.Errorf("unknown curve kind: %s", c.Kind)
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{T: c.Kind, C: raw})
}

func (c *Curve) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if len(env.C) == 0 {
		return fmt.Errorf("curve %q has no content", env.T)
	}

	switch env.T {
	case KindConstant:
		var speed int
		if err := json.Unmarshal(env.C, &speed); err != nil {
			return err
		}
		*c = NewConstant(speed)
	case KindStep:
		var content stepContent
		if err := json.Unmarshal(env.C, &content); err != nil {
			return err
		}
		*c = NewStep(content.Temps, content.Speeds)
	case KindBezier:
		var content bezierContent
		if err := json.Unmarshal(env.C, &content); err != nil {
			return err
		}
		*c = NewBezier(content.Points)
	default:
		return fmt.Errorf("unknown curve kind: %q", env.T)
	}
	return nil
}

// Parse decodes and validates a curve definition in its JSON wire form.
// Every failure is reported as *ValidationError.
func Parse(text string) (Curve, error) {
	var curve Curve
	if err := json.Unmarshal([]byte(text), &curve); err != nil {
		return Curve{}, invalid("malformed curve definition: %v", err)
	}
	if err := Validate(curve); err != nil {
		return Curve{}, err
	}
	return curve, nil
}
