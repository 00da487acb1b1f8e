package configuration

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

const (
	DbusSessionBus = "session"
	DbusSystemBus  = "system"
)

type DbusConfig struct {
	// Bus is either "session" or "system"
	Bus string `json:"bus"`
}
