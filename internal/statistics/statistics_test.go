package statistics

import (
	"github.com/At1ass/tt-riingd/internal/device"
	"github.com/At1ass/tt-riingd/internal/sensors"
	"github.com/At1ass/tt-riingd/internal/state"
	"github.com/At1ass/tt-riingd/internal/testingutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

// gather collects the given collector and returns the values of all samples
// of the metric, keyed by their label values (sorted by label name) joined with "/"
func gather(t *testing.T, collector prometheus.Collector, name string) map[string]float64 {
	registry := prometheus.NewPedanticRegistry()
	require.NoError(t, registry.Register(collector))
	families, err := registry.Gather()
	require.NoError(t, err)

	result := map[string]float64{}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			key := ""
			for i, label := range metric.GetLabel() {
				if i > 0 {
					key += "/"
				}
				key += label.GetValue()
			}
			result[key] = metric.GetGauge().GetValue()
		}
	}
	return result
}

func unopenedTransport() *device.Transport {
	return device.NewTransport(testingutils.CreateConfig(), func(device.UsbSelector) (device.HidDevice, error) {
		return testingutils.NewMockHidDevice(), nil
	})
}

func TestSensorCollector(t *testing.T) {
	// GIVEN
	readings := sensors.NewReadings()
	readings.Set("cpu", 45.5)
	readings.Set("gpu", 60)

	// WHEN
	result := gather(t, NewSensorCollector(readings), "tt_riingd_sensor_temperature_celsius")

	// THEN
	assert.Equal(t, map[string]float64{"cpu": 45.5, "gpu": 60}, result)
}

func TestControllerCollector(t *testing.T) {
	// GIVEN
	transport := unopenedTransport()
	front, _ := transport.Controller(1)
	require.NoError(t, front.Open())

	// WHEN
	result := gather(t, NewControllerCollector(transport), "tt_riingd_controller_connected")

	// THEN
	assert.Equal(t, map[string]float64{"1/front": 1, "2/rear": 0}, result)
}

func TestFanCollector(t *testing.T) {
	// GIVEN
	transport := unopenedTransport()
	front, _ := transport.Controller(1)
	require.NoError(t, front.Open())
	require.NoError(t, front.SendSpeed(2, 65))

	// WHEN
	result := gather(t, NewFanCollector(transport), "tt_riingd_fan_speed_percent")

	// THEN
	assert.Len(t, result, 10)
	assert.Equal(t, 65.0, result["1/2"])
	assert.Equal(t, 0.0, result["2/1"])
}

func TestCurveCollector(t *testing.T) {
	// GIVEN
	store, err := state.NewStore(testingutils.CreateConfig())
	require.NoError(t, err)

	// WHEN
	result := gather(t, NewCurveCollector(store), "tt_riingd_curve_active")

	// THEN
	assert.Equal(t, map[string]float64{
		"1/silent/1": 1,
		"1/full/2":   1,
		"2/silent/1": 1,
	}, result)
}

func TestRegister_AllCollectors(t *testing.T) {
	// GIVEN
	store, err := state.NewStore(testingutils.CreateConfig())
	require.NoError(t, err)
	readings := sensors.NewReadings()
	readings.Set("cpu", 42)
	registry := prometheus.NewPedanticRegistry()

	// WHEN
	Register(registry, Collectors(readings, unopenedTransport(), store)...)

	// THEN
	families, err := registry.Gather()
	require.NoError(t, err)
	var names []string
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "tt_riingd_sensor_temperature_celsius")
	assert.Contains(t, names, "tt_riingd_controller_connected")
	assert.Contains(t, names, "tt_riingd_fan_speed_percent")
	assert.Contains(t, names, "tt_riingd_curve_active")
}
