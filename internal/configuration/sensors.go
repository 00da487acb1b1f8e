package configuration

const (
	SensorKindLmSensors = "lm-sensors"
	SensorKindFile      = "file"
	SensorKindCmd       = "cmd"
)

type SensorConfig struct {
	Id   string `json:"id"`
	Kind string `json:"kind"`

	// lm-sensors
	Chip    string `json:"chip,omitempty"`
	Feature string `json:"feature,omitempty"`

	// file, value in millidegrees celsius
	Path string `json:"path,omitempty"`

	// cmd, value in degrees celsius
	Exec string   `json:"exec,omitempty"`
	Args []string `json:"args,omitempty"`
}

// FindSensor returns the sensor definition with the given id
func (c *Configuration) FindSensor(id string) (*SensorConfig, bool) {
	for i := range c.Sensors {
		if c.Sensors[i].Id == id {
			return &c.Sensors[i], true
		}
	}
	return nil, false
}
