package testingutils

import (
	"github.com/At1ass/tt-riingd/internal/configuration"
)

// CreateConfig returns a small but complete topology:
// controller 1 "front" with fans 1 and 2, controller 2 "rear" with fan 1,
// sensor "cpu" driving the front fans and sensor "gpu" driving the rear fan.
func CreateConfig() *configuration.Configuration {
	return &configuration.Configuration{
		Version:           configuration.SupportedVersion,
		TickSeconds:       2,
		EnableBroadcast:   true,
		BroadcastInterval: 2,
		Controllers: []configuration.ControllerConfig{
			{
				Id:   "front",
				Kind: configuration.ControllerKindRiingQuad,
				Usb:  configuration.UsbConfig{Vid: 0x264A, Pid: 0x2260},
				Fans: []configuration.FanConfig{
					{Idx: 1, Name: "intake top", ActiveCurve: "silent", Curves: []string{"silent", "full"}},
					{Idx: 2, Name: "intake bottom", ActiveCurve: "full", Curves: []string{"silent", "full"}},
				},
			},
			{
				Id:   "rear",
				Kind: configuration.ControllerKindRiingQuad,
				Usb:  configuration.UsbConfig{Vid: 0x264A, Pid: 0x2261},
				Fans: []configuration.FanConfig{
					{Idx: 1, Name: "exhaust", ActiveCurve: "silent", Curves: []string{"silent"}},
				},
			},
		},
		Curves: []configuration.CurveConfig{
			{Id: "silent", Kind: configuration.CurveKindStep, Tmps: []float64{30, 50, 60, 80}, Spds: []int{20, 35, 37, 100}},
			{Id: "full", Kind: configuration.CurveKindConstant, Speed: 100},
		},
		Sensors: []configuration.SensorConfig{
			{Id: "cpu", Kind: configuration.SensorKindLmSensors, Chip: "k10temp-pci-00c3", Feature: "Tctl"},
			{Id: "gpu", Kind: configuration.SensorKindLmSensors, Chip: "amdgpu-pci-0300", Feature: "edge"},
		},
		Mappings: []configuration.MappingConfig{
			{Sensor: "cpu", Targets: []configuration.FanTarget{{Controller: 1, FanIdx: 1}, {Controller: 1, FanIdx: 2}}},
			{Sensor: "gpu", Targets: []configuration.FanTarget{{Controller: 2, FanIdx: 1}}},
		},
		Colors: []configuration.ColorConfig{
			{Color: "red", Rgb: []int{255, 0, 0}},
			{Color: "blue", Rgb: []int{0, 0, 255}},
		},
		ColorMappings: []configuration.ColorMappingConfig{
			{Color: "red", Targets: []configuration.FanTarget{{Controller: 1, FanIdx: 1}, {Controller: 1, FanIdx: 2}}},
			{Color: "blue", Targets: []configuration.FanTarget{{Controller: 2, FanIdx: 1}}},
		},
		Dbus: configuration.DbusConfig{Bus: configuration.DbusSessionBus},
	}
}
