package configuration

// FanTarget addresses a fan by the 1-based position of its controller
// in the controllers list and its channel index.
type FanTarget struct {
	Controller int `json:"controller"`
	FanIdx     int `json:"fan_idx" mapstructure:"fan_idx"`
}

type MappingConfig struct {
	Sensor  string      `json:"sensor"`
	Targets []FanTarget `json:"targets"`
}

type ColorConfig struct {
	Color string `json:"color"`
	Rgb   []int  `json:"rgb"`
}

type ColorMappingConfig struct {
	Color   string      `json:"color"`
	Targets []FanTarget `json:"targets"`
}

// FindColor returns the color definition with the given name
func (c *Configuration) FindColor(name string) (*ColorConfig, bool) {
	for i := range c.Colors {
		if c.Colors[i].Color == name {
			return &c.Colors[i], true
		}
	}
	return nil, false
}
