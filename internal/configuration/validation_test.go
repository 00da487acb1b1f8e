package configuration

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func createValidConfig() Configuration {
	return Configuration{
		Version:           1,
		TickSeconds:       2,
		BroadcastInterval: 2,
		Dbus:              DbusConfig{Bus: DbusSessionBus},
		Controllers: []ControllerConfig{
			{
				Id:   "controller1",
				Kind: ControllerKindRiingQuad,
				Usb:  UsbConfig{Vid: 0x264a, Pid: 0x2330},
				Fans: []FanConfig{
					{Idx: 1, Name: "CPU Fan", ActiveCurve: "cpu_curve", Curves: []string{"cpu_curve", "silent"}},
					{Idx: 2, Name: "Rear Fan", ActiveCurve: "silent", Curves: []string{"silent"}},
				},
			},
		},
		Curves: []CurveConfig{
			{Id: "cpu_curve", Kind: CurveKindStep, Tmps: []float64{30, 50, 70}, Spds: []int{20, 50, 100}},
			{Id: "silent", Kind: CurveKindConstant, Speed: 30},
		},
		Sensors: []SensorConfig{
			{Id: "cpu_sensor", Kind: SensorKindLmSensors, Chip: "k10temp-pci-00c3", Feature: "Tctl"},
		},
		Mappings: []MappingConfig{
			{Sensor: "cpu_sensor", Targets: []FanTarget{{Controller: 1, FanIdx: 1}, {Controller: 1, FanIdx: 2}}},
		},
		Colors: []ColorConfig{
			{Color: "blue", Rgb: []int{0, 0, 255}},
		},
		ColorMappings: []ColorMappingConfig{
			{Color: "blue", Targets: []FanTarget{{Controller: 1, FanIdx: 1}}},
		},
	}
}

func requireConfigError(t *testing.T, err error, expected string) {
	var configError *ConfigError
	require.ErrorAs(t, err, &configError)
	assert.EqualError(t, err, expected)
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := Validate(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateUnsupportedVersion(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Version = 2

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "config: unsupported version 2, expected 1")
}

func TestValidateTickSeconds(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.TickSeconds = 0

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "config: tick_seconds must be > 0")
}

func TestValidateBroadcastInterval(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.EnableBroadcast = true
	config.BroadcastInterval = 0

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "config: broadcast_interval must be > 0 when enable_broadcast is set")
}

func TestValidateDuplicateFanIndex(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controllers[0].Fans[1].Idx = 1

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Controller controller1: duplicate fan index 1")
}

func TestValidateFanIndexOutOfRange(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controllers[0].Fans[1].Idx = 6

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Controller controller1: fan index 6 out of range [1..5]")
}

func TestValidateDanglingCurveReference(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controllers[0].Fans[0].Curves = []string{"cpu_curve", "missing"}

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Controller controller1: fan 1: no curve definition with id 'missing' found")
}

func TestValidateActiveCurveNotAssignable(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controllers[0].Fans[1].ActiveCurve = "cpu_curve"

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Controller controller1: fan 2: active curve 'cpu_curve' is not among the fan's curves: silent")
}

func TestValidateDefaultCurves(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controllers[0].Fans[1].Curves = nil
	config.Controllers[0].Fans[1].ActiveCurve = ""
	config.applyFanDefaults()

	// WHEN
	err := Validate(&config, "")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, DefaultActiveCurve, config.Controllers[0].Fans[1].ActiveCurve)
	assert.True(t, config.Controllers[0].Fans[1].UsesDefaultCurves)
}

func TestValidateInvalidCurve(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Curves[0].Tmps = []float64{30, 70, 50}

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Curve cpu_curve: invalid curve: temperatures must be non-decreasing")
}

func TestValidateUnknownCurveKind(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Curves[1].Kind = "sine"

	// WHEN
	err := Validate(&config, "")

	// THEN
	var configError *ConfigError
	assert.ErrorAs(t, err, &configError)
	assert.Equal(t, "silent", configError.Id)
}

func TestValidateDuplicateCurveId(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Curves = append(config.Curves, CurveConfig{Id: "silent", Kind: CurveKindConstant, Speed: 20})

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Curve silent: duplicate curve id")
}

func TestValidateSensorMissingAddress(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors[0].Feature = ""

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Sensor cpu_sensor: lm-sensors sensors need both chip and feature")
}

func TestValidateUnknownSensorKind(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors[0].Kind = "nvidia"

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Sensor cpu_sensor: unsupported kind \"nvidia\", use one of: lm-sensors | file | cmd")
}

func TestValidateMappingUnknownSensor(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Mappings[0].Sensor = "gpu_sensor"

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Mapping gpu_sensor: no sensor definition with id 'gpu_sensor' found")
}

func TestValidateMappingDanglingTarget(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Mappings[0].Targets = append(config.Mappings[0].Targets, FanTarget{Controller: 1, FanIdx: 3})

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Mapping cpu_sensor: target controller 1 fan 3 does not exist")
}

func TestValidateMappingUnknownController(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Mappings[0].Targets = []FanTarget{{Controller: 0, FanIdx: 1}}

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Mapping cpu_sensor: target controller 0 fan 1 does not exist")
}

func TestValidateColorRgb(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Colors[0].Rgb = []int{0, 300, 0}

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Color blue: rgb value 300 out of range [0..255]")
}

func TestValidateColorMappingUnknownColor(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.ColorMappings[0].Color = "red"

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "ColorMapping red: no color definition with name 'red' found")
}

func TestValidateUnsupportedControllerKind(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controllers[0].Kind = "commander-pro"

	// WHEN
	err := Validate(&config, "")

	// THEN
	requireConfigError(t, err, "Controller controller1: unsupported kind \"commander-pro\", use one of: riing-quad")
}
