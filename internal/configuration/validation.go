package configuration

import (
	"github.com/At1ass/tt-riingd/internal/curves"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/At1ass/tt-riingd/internal/util"
	"strings"
)

// Validate checks the topology for internal consistency.
// configPath is the file the topology was loaded from, it must not be
// writable by non-root users when cmd sensors are configured.
func Validate(config *Configuration, configPath string) error {
	if err := validateSettings(config); err != nil {
		return err
	}
	if err := validateCurves(config); err != nil {
		return err
	}
	if err := validateSensors(config); err != nil {
		return err
	}
	if err := validateControllers(config); err != nil {
		return err
	}
	if err := validateMappings(config); err != nil {
		return err
	}
	if err := validateColors(config); err != nil {
		return err
	}

	if containsCmdSensors(config) && configPath != "" {
		if _, err := util.CheckFilePermissionsForExecution(configPath); err != nil {
			return newConfigError("config", configPath, "file has invalid permissions: %v", err)
		}
	}

	return nil
}

func validateSettings(config *Configuration) error {
	if config.Version != SupportedVersion {
		return newConfigError("config", "", "unsupported version %d, expected %d", config.Version, SupportedVersion)
	}
	if config.TickSeconds <= 0 {
		return newConfigError("config", "", "tick_seconds must be > 0")
	}
	if config.EnableBroadcast && config.BroadcastInterval <= 0 {
		return newConfigError("config", "", "broadcast_interval must be > 0 when enable_broadcast is set")
	}
	if config.Dbus.Bus != DbusSessionBus && config.Dbus.Bus != DbusSystemBus {
		return newConfigError("dbus", "", "unsupported bus %q, use one of: %s | %s", config.Dbus.Bus, DbusSessionBus, DbusSystemBus)
	}
	return nil
}

func validateCurves(config *Configuration) error {
	ids := make([]string, 0, len(config.Curves))
	for _, curveConfig := range config.Curves {
		if len(curveConfig.Id) <= 0 {
			return newConfigError("Curve", "", "missing id")
		}
		ids = append(ids, curveConfig.Id)

		curve, err := curveConfig.ToCurve()
		if err != nil {
			return newConfigError("Curve", curveConfig.Id, "%v", err)
		}
		if err := curves.Validate(curve); err != nil {
			return newConfigError("Curve", curveConfig.Id, "%v", err)
		}

		if !isCurveConfigInUse(curveConfig, config.Controllers) {
			ui.Warning("Unused curve configuration: %s", curveConfig.Id)
		}
	}

	if duplicate, found := util.FindDuplicate(ids); found {
		return newConfigError("Curve", duplicate, "duplicate curve id")
	}
	return nil
}

func isCurveConfigInUse(config CurveConfig, controllers []ControllerConfig) bool {
	for _, controller := range controllers {
		for _, fan := range controller.Fans {
			if util.ContainsString(fan.Curves, config.Id) {
				return true
			}
		}
	}
	return false
}

func validateSensors(config *Configuration) error {
	ids := make([]string, 0, len(config.Sensors))
	for _, sensorConfig := range config.Sensors {
		if len(sensorConfig.Id) <= 0 {
			return newConfigError("Sensor", "", "missing id")
		}
		ids = append(ids, sensorConfig.Id)

		switch sensorConfig.Kind {
		case SensorKindLmSensors:
			if len(sensorConfig.Chip) <= 0 || len(sensorConfig.Feature) <= 0 {
				return newConfigError("Sensor", sensorConfig.Id, "lm-sensors sensors need both chip and feature")
			}
		case SensorKindFile:
			if len(sensorConfig.Path) <= 0 {
				return newConfigError("Sensor", sensorConfig.Id, "file sensors need a path")
			}
		case SensorKindCmd:
			if len(sensorConfig.Exec) <= 0 {
				return newConfigError("Sensor", sensorConfig.Id, "cmd sensors need an exec")
			}
		default:
			supported := []string{SensorKindLmSensors, SensorKindFile, SensorKindCmd}
			return newConfigError("Sensor", sensorConfig.Id, "unsupported kind %q, use one of: %s", sensorConfig.Kind, strings.Join(supported, " | "))
		}

		if !isSensorConfigInUse(sensorConfig, config.Mappings) {
			ui.Warning("Unused sensor configuration: %s", sensorConfig.Id)
		}
	}

	if duplicate, found := util.FindDuplicate(ids); found {
		return newConfigError("Sensor", duplicate, "duplicate sensor id")
	}
	return nil
}

func isSensorConfigInUse(config SensorConfig, mappings []MappingConfig) bool {
	for _, mapping := range mappings {
		if mapping.Sensor == config.Id {
			return true
		}
	}
	return false
}

func containsCmdSensors(config *Configuration) bool {
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Kind == SensorKindCmd {
			return true
		}
	}
	return false
}

func validateControllers(config *Configuration) error {
	ids := make([]string, 0, len(config.Controllers))
	for _, controller := range config.Controllers {
		if len(controller.Id) <= 0 {
			return newConfigError("Controller", "", "missing id")
		}
		ids = append(ids, controller.Id)

		if controller.Kind != ControllerKindRiingQuad {
			return newConfigError("Controller", controller.Id, "unsupported kind %q, use one of: %s", controller.Kind, ControllerKindRiingQuad)
		}
		if controller.Usb.Vid == 0 || controller.Usb.Pid == 0 {
			return newConfigError("Controller", controller.Id, "usb vid and pid are required")
		}

		indices := make([]int, 0, len(controller.Fans))
		for _, fan := range controller.Fans {
			if err := validateFan(config, controller, fan); err != nil {
				return err
			}
			indices = append(indices, fan.Idx)
		}
		if duplicate, found := util.FindDuplicate(indices); found {
			return newConfigError("Controller", controller.Id, "duplicate fan index %d", duplicate)
		}
	}

	if duplicate, found := util.FindDuplicate(ids); found {
		return newConfigError("Controller", duplicate, "duplicate controller id")
	}
	return nil
}

func validateFan(config *Configuration, controller ControllerConfig, fan FanConfig) error {
	if fan.Idx < 1 || fan.Idx > RiingQuadChannels {
		return newConfigError("Controller", controller.Id, "fan index %d out of range [1..%d]", fan.Idx, RiingQuadChannels)
	}

	assignable := fan.Curves
	if fan.UsesDefaultCurves {
		assignable = util.SortedKeys(curves.DefaultCurves())
	}

	for _, curveId := range fan.Curves {
		if _, ok := config.FindCurve(curveId); !ok {
			return newConfigError("Controller", controller.Id, "fan %d: no curve definition with id '%s' found", fan.Idx, curveId)
		}
	}
	if duplicate, found := util.FindDuplicate(fan.Curves); found {
		return newConfigError("Controller", controller.Id, "fan %d: curve '%s' is listed twice", fan.Idx, duplicate)
	}

	if len(fan.ActiveCurve) <= 0 {
		return newConfigError("Controller", controller.Id, "fan %d: missing active_curve", fan.Idx)
	}
	if !util.ContainsString(assignable, fan.ActiveCurve) {
		return newConfigError("Controller", controller.Id, "fan %d: active curve '%s' is not among the fan's curves: %s", fan.Idx, fan.ActiveCurve, strings.Join(assignable, ", "))
	}
	return nil
}

func validateMappings(config *Configuration) error {
	for _, mapping := range config.Mappings {
		if _, ok := config.FindSensor(mapping.Sensor); !ok {
			return newConfigError("Mapping", mapping.Sensor, "no sensor definition with id '%s' found", mapping.Sensor)
		}
		for _, target := range mapping.Targets {
			if !config.HasTarget(target) {
				return newConfigError("Mapping", mapping.Sensor, "target controller %d fan %d does not exist", target.Controller, target.FanIdx)
			}
		}
	}
	return nil
}

func validateColors(config *Configuration) error {
	names := make([]string, 0, len(config.Colors))
	for _, color := range config.Colors {
		if len(color.Color) <= 0 {
			return newConfigError("Color", "", "missing color name")
		}
		names = append(names, color.Color)

		if len(color.Rgb) != 3 {
			return newConfigError("Color", color.Color, "rgb needs exactly 3 values, got %d", len(color.Rgb))
		}
		for _, c := range color.Rgb {
			if c < 0 || c > 255 {
				return newConfigError("Color", color.Color, "rgb value %d out of range [0..255]", c)
			}
		}
	}
	if duplicate, found := util.FindDuplicate(names); found {
		return newConfigError("Color", duplicate, "duplicate color")
	}

	for _, mapping := range config.ColorMappings {
		if _, ok := config.FindColor(mapping.Color); !ok {
			return newConfigError("ColorMapping", mapping.Color, "no color definition with name '%s' found", mapping.Color)
		}
		for _, target := range mapping.Targets {
			if !config.HasTarget(target) {
				return newConfigError("ColorMapping", mapping.Color, "target controller %d fan %d does not exist", target.Controller, target.FanIdx)
			}
		}
	}
	return nil
}
