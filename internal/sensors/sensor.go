package sensors

import (
	"context"
	"errors"
	"github.com/At1ass/tt-riingd/internal/configuration"
)

// ErrSensorUnavailable is returned when a sensor could not deliver a valid reading.
var ErrSensorUnavailable = errors.New("sensor unavailable")

// Sensor is a temperature source declared in the configuration.
type Sensor struct {
	Id   string `json:"id"`
	Kind string `json:"kind"`

	Chip    string `json:"chip,omitempty"`
	Feature string `json:"feature,omitempty"`

	Path string `json:"path,omitempty"`

	Exec string   `json:"exec,omitempty"`
	Args []string `json:"args,omitempty"`
}

func NewSensor(config configuration.SensorConfig) Sensor {
	return Sensor{
		Id:      config.Id,
		Kind:    config.Kind,
		Chip:    config.Chip,
		Feature: config.Feature,
		Path:    config.Path,
		Exec:    config.Exec,
		Args:    append([]string(nil), config.Args...),
	}
}

// NewSensors creates the sensors of the given configuration, in config order.
func NewSensors(config *configuration.Configuration) []Sensor {
	result := make([]Sensor, 0, len(config.Sensors))
	for _, s := range config.Sensors {
		result = append(result, NewSensor(s))
	}
	return result
}

// Backend reads the current temperature of a sensor in °C.
type Backend interface {
	ReadTemperature(ctx context.Context, sensor Sensor) (float64, error)
}
