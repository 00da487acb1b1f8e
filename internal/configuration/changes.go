package configuration

import (
	"reflect"
)

// ChangeSet describes the difference between the running topology and a reloaded one.
type ChangeSet struct {
	Settings    bool
	Controllers bool
	Sensors     bool
	Mappings    bool
	Colors      bool
	// CurveKinds is set when an existing curve id changed its kind
	CurveKinds bool
	// Curves lists the ids of curves whose parameters changed
	Curves []string
}

// Diff compares two validated topologies
func Diff(current *Configuration, updated *Configuration) ChangeSet {
	changes := ChangeSet{
		Settings: current.Version != updated.Version ||
			current.TickSeconds != updated.TickSeconds ||
			current.EnableBroadcast != updated.EnableBroadcast ||
			current.BroadcastInterval != updated.BroadcastInterval ||
			!reflect.DeepEqual(current.Statistics, updated.Statistics) ||
			!reflect.DeepEqual(current.Api, updated.Api) ||
			!reflect.DeepEqual(current.Dbus, updated.Dbus),
		Controllers: !reflect.DeepEqual(current.Controllers, updated.Controllers),
		Sensors:     !reflect.DeepEqual(current.Sensors, updated.Sensors),
		Mappings:    !reflect.DeepEqual(current.Mappings, updated.Mappings),
		Colors: !reflect.DeepEqual(current.Colors, updated.Colors) ||
			!reflect.DeepEqual(current.ColorMappings, updated.ColorMappings),
	}

	for _, curve := range updated.Curves {
		previous, ok := current.FindCurve(curve.Id)
		if !ok {
			// new curves can only be used by changed fan definitions
			continue
		}
		if previous.Kind != curve.Kind {
			changes.CurveKinds = true
			continue
		}
		if !reflect.DeepEqual(*previous, curve) {
			changes.Curves = append(changes.Curves, curve.Id)
		}
	}

	return changes
}

// RequiresRestart is true if the change can not be applied to the running daemon
func (c ChangeSet) RequiresRestart() bool {
	return len(c.RestartSections()) > 0
}

// IsEmpty is true if nothing relevant changed
func (c ChangeSet) IsEmpty() bool {
	return !c.RequiresRestart() && len(c.Curves) == 0
}

// RestartSections names the changed sections that need a restart to take effect
func (c ChangeSet) RestartSections() []string {
	var sections []string
	flags := []struct {
		name    string
		changed bool
	}{
		{"settings", c.Settings},
		{"controllers", c.Controllers},
		{"sensors", c.Sensors},
		{"mappings", c.Mappings},
		{"colors", c.Colors},
		{"curve kinds", c.CurveKinds},
	}
	for _, flag := range flags {
		if flag.changed {
			sections = append(sections, flag.name)
		}
	}
	return sections
}
