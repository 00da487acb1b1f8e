package configuration

import "fmt"

// ConfigError reports a malformed or internally inconsistent topology.
// It is fatal at startup.
type ConfigError struct {
	Section string
	Id      string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Id == "" {
		return fmt.Sprintf("%s: %s", e.Section, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", e.Section, e.Id, e.Reason)
}

func newConfigError(section string, id string, format string, a ...interface{}) *ConfigError {
	return &ConfigError{
		Section: section,
		Id:      id,
		Reason:  fmt.Sprintf(format, a...),
	}
}
