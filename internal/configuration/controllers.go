package configuration

const (
	ControllerKindRiingQuad = "riing-quad"

	// RiingQuadChannels is the number of fan ports of a Riing Quad controller
	RiingQuadChannels = 5

	// DefaultActiveCurve is activated for fans that list no curves of their own
	DefaultActiveCurve = "Constant"
)

type ControllerConfig struct {
	Id   string      `json:"id"`
	Kind string      `json:"kind"`
	Usb  UsbConfig   `json:"usb"`
	Fans []FanConfig `json:"fans"`
}

type UsbConfig struct {
	Vid    UsbId  `json:"vid"`
	Pid    UsbId  `json:"pid"`
	Serial string `json:"serial,omitempty"`
}

type FanConfig struct {
	Idx         int      `json:"idx"`
	Name        string   `json:"name"`
	ActiveCurve string   `json:"active_curve" mapstructure:"active_curve"`
	Curves      []string `json:"curve" mapstructure:"curve"`
	// UsesDefaultCurves is set for fans without a curve list, they get the built-in curve set
	UsesDefaultCurves bool `json:"-" mapstructure:"-"`
}

// FindFan returns the fan with the given channel index
func (c *ControllerConfig) FindFan(idx int) (*FanConfig, bool) {
	for i := range c.Fans {
		if c.Fans[i].Idx == idx {
			return &c.Fans[i], true
		}
	}
	return nil, false
}

// ControllerByNumber returns the controller at the given 1-based position
func (c *Configuration) ControllerByNumber(number int) (*ControllerConfig, bool) {
	if number < 1 || number > len(c.Controllers) {
		return nil, false
	}
	return &c.Controllers[number-1], true
}

// FansWithCurve returns the fans that list the curve with the given id.
// Fans on the built-in curve set never reference config curves, even if the ids collide.
func (c *Configuration) FansWithCurve(id string) []FanTarget {
	var result []FanTarget
	for i, controller := range c.Controllers {
		for _, fan := range controller.Fans {
			if fan.UsesDefaultCurves {
				continue
			}
			for _, curveId := range fan.Curves {
				if curveId == id {
					result = append(result, FanTarget{Controller: i + 1, FanIdx: fan.Idx})
					break
				}
			}
		}
	}
	return result
}

// HasTarget checks that the target addresses an existing controller+fan pair
func (c *Configuration) HasTarget(target FanTarget) bool {
	controller, ok := c.ControllerByNumber(target.Controller)
	if !ok {
		return false
	}
	_, ok = controller.FindFan(target.FanIdx)
	return ok
}

func (c *Configuration) applyFanDefaults() {
	for i := range c.Controllers {
		for j := range c.Controllers[i].Fans {
			fan := &c.Controllers[i].Fans[j]
			if len(fan.Curves) == 0 {
				fan.UsesDefaultCurves = true
				if fan.ActiveCurve == "" {
					fan.ActiveCurve = DefaultActiveCurve
				}
			}
		}
	}
}
