package sensors

import (
	"context"
	"fmt"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/hwmon"
	"github.com/At1ass/tt-riingd/internal/util"
	"strconv"
	"time"
)

const cmdTimeout = 2 * time.Second

type LmSensorsReader func(chip string, feature string) (float64, error)

type backend struct {
	lmSensors LmSensorsReader
}

// NewBackend returns a Backend that reads lm-sensors features through libsensors.
func NewBackend() Backend {
	return NewBackendWithReader(hwmon.ReadTemperature)
}

// NewBackendWithReader returns a Backend using the given lm-sensors reader.
func NewBackendWithReader(reader LmSensorsReader) Backend {
	return &backend{
		lmSensors: reader,
	}
}

func (b *backend) ReadTemperature(ctx context.Context, sensor Sensor) (float64, error) {
	var value float64
	var err error

	switch sensor.Kind {
	case configuration.SensorKindLmSensors:
		value, err = b.lmSensors(sensor.Chip, sensor.Feature)
	case configuration.SensorKindFile:
		value, err = readFile(sensor.Path)
	case configuration.SensorKindCmd:
		value, err = readCmd(ctx, sensor.Exec, sensor.Args)
	default:
		err = fmt.Errorf("unsupported sensor kind %q", sensor.Kind)
	}

	if err == nil && !util.IsFinite(value) {
		err = fmt.Errorf("reading is not a finite number: %v", value)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrSensorUnavailable, sensor.Id, err)
	}
	return value, nil
}

// readFile reads a sysfs style value in millidegrees
func readFile(path string) (float64, error) {
	filePath, err := util.ExpandPath(path)
	if err != nil {
		return 0, err
	}

	milli, err := util.ReadIntFromFile(filePath)
	if err != nil {
		return 0, err
	}
	return float64(milli) / 1000, nil
}

func readCmd(ctx context.Context, exec string, args []string) (float64, error) {
	output, err := util.SafeCmdExecution(ctx, exec, args, cmdTimeout)
	if err != nil {
		return 0, err
	}

	temp, err := strconv.ParseFloat(output, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse command output %q: %w", output, err)
	}
	return temp, nil
}
