package hwmon

import (
	"errors"
	"fmt"
	"github.com/At1ass/tt-riingd/internal/util"
	"github.com/md14454/gosensors"
	"path/filepath"
	"sync"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

var (
	ErrChipNotFound    = errors.New("chip not found")
	ErrFeatureNotFound = errors.New("feature not found")
)

// libsensors keeps global state between Init and Cleanup
var libsensorsLock sync.Mutex

// Chip is a hwmon device that exposes at least one temperature input.
type Chip struct {
	// Name is the libsensors style identifier, e.g. "k10temp-pci-00c3"
	Name   string
	Prefix string
	Path   string

	Temperatures []TempFeature
}

type TempFeature struct {
	// Name is the feature name as reported by libsensors, e.g. "temp1"
	Name  string
	Label string
	// Value is the current reading in °C
	Value float64

	Max    float64
	HasMax bool
	Min    float64
	HasMin bool
}

// GetChips returns every detected chip with temperature inputs.
func GetChips() []*Chip {
	libsensorsLock.Lock()
	defer libsensorsLock.Unlock()

	gosensors.Init()
	defer gosensors.Cleanup()

	return scanChips(gosensors.GetDetectedChips())
}

// ReadTemperature returns the current value of the given temperature feature in °C.
// The chip may be given by its identifier or its prefix, the feature by its name or label.
func ReadTemperature(chip string, feature string) (float64, error) {
	temp, err := FindTemperature(GetChips(), chip, feature)
	if err != nil {
		return 0, err
	}
	return temp.Value, nil
}

// FindTemperature looks up a temperature feature in an already scanned chip list.
func FindTemperature(chips []*Chip, chip string, feature string) (TempFeature, error) {
	for _, c := range chips {
		if c.Name != chip && c.Prefix != chip {
			continue
		}
		for _, t := range c.Temperatures {
			if t.Name == feature || t.Label == feature {
				return t, nil
			}
		}
		return TempFeature{}, fmt.Errorf("%w: %s on %s", ErrFeatureNotFound, feature, chip)
	}
	return TempFeature{}, fmt.Errorf("%w: %s", ErrChipNotFound, chip)
}

func scanChips(chips []gosensors.Chip) []*Chip {
	var list []*Chip
	for _, chip := range chips {
		temps := getTempFeatures(chip)
		if len(temps) <= 0 {
			continue
		}
		list = append(list, &Chip{
			Name:         computeIdentifier(chip),
			Prefix:       chip.Prefix,
			Path:         chip.Path,
			Temperatures: temps,
		})
	}
	return list
}

func getTempFeatures(chip gosensors.Chip) []TempFeature {
	var result []TempFeature
	for _, feature := range chip.GetFeatures() {
		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}

		subfeatures := feature.GetSubFeatures()
		input, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeTempInput)
		if !ok {
			continue
		}

		temp := TempFeature{
			Name:  feature.Name,
			Label: util.GetLabel(chip.Path, input.Name),
			Value: input.GetValue(),
		}
		if maxInput, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeTempMax); ok {
			temp.Max = maxInput.GetValue()
			temp.HasMax = true
		}
		if minInput, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeTempMin); ok {
			temp.Min = minInput.GetValue()
			temp.HasMin = true
		}
		result = append(result, temp)
	}
	return result
}

func findSubFeature(subfeatures []gosensors.SubFeature, kind gosensors.SubFeatureType) (gosensors.SubFeature, bool) {
	for _, s := range subfeatures {
		if s.Type == kind {
			return s, true
		}
	}
	return gosensors.SubFeature{}, false
}

func computeIdentifier(chip gosensors.Chip) string {
	name := chip.Prefix

	devicePath := chip.Path
	if len(name) <= 0 {
		name = util.GetDeviceName(devicePath)
	}

	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}

	switch chip.Bus.Type {
	case BusTypeIsa:
		return fmt.Sprintf("%s-isa-%04x", name, chip.Addr)
	case BusTypePci:
		return fmt.Sprintf("%s-pci-%04x", name, chip.Addr)
	case BusTypeAcpi:
		return fmt.Sprintf("%s-acpi-%x", name, chip.Addr)
	}

	return name
}
