package configuration

import (
	"errors"
	"fmt"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	SupportedVersion = 1

	EnvConfigPath   = "TT_RIINGD_CONFIG"
	configName      = "config"
	configType      = "yml"
	configDirName   = "tt_riingd"
	systemConfigDir = "/etc/tt_riingd"
)

// Configuration is the validated, in-memory topology of the daemon.
// It is loaded once at startup and handed to every component explicitly.
type Configuration struct {
	Version int `json:"version"`

	TickSeconds       int  `json:"tick_seconds" mapstructure:"tick_seconds"`
	EnableBroadcast   bool `json:"enable_broadcast" mapstructure:"enable_broadcast"`
	BroadcastInterval int  `json:"broadcast_interval" mapstructure:"broadcast_interval"`

	Controllers   []ControllerConfig   `json:"controllers"`
	Curves        []CurveConfig        `json:"curves"`
	Sensors       []SensorConfig       `json:"sensors"`
	Mappings      []MappingConfig      `json:"mappings"`
	Colors        []ColorConfig        `json:"colors"`
	ColorMappings []ColorMappingConfig `json:"color_mappings" mapstructure:"color_mappings"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
	Dbus       DbusConfig       `json:"dbus"`
}

// TickInterval is the cadence of the control loop.
func (c *Configuration) TickInterval() time.Duration {
	return time.Duration(c.TickSeconds) * time.Second
}

// BroadcastCadence is the cadence of the color broadcast.
func (c *Configuration) BroadcastCadence() time.Duration {
	return time.Duration(c.BroadcastInterval) * time.Second
}

// InitConfig sets up the lookup of the config file and ENV variables.
// The explicit cfgFile (from the --config flag) wins over the
// TT_RIINGD_CONFIG environment variable, which wins over the standard locations.
func InitConfig(cfgFile string) {
	viper.SetConfigName(configName)
	viper.SetConfigType(configType)

	if cfgFile == "" {
		cfgFile = os.Getenv(EnvConfigPath)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		for _, dir := range configSearchPaths() {
			viper.AddConfigPath(dir)
		}
	}

	setDefaultValues(viper.GetViper())
}

// configSearchPaths returns the standard config directories in lookup order
func configSearchPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, configDirName))
	}

	home, err := homedir.Dir()
	if err != nil {
		ui.Warning("Couldn't detect home directory: %v", err)
	} else {
		paths = append(paths, filepath.Join(home, ".config", configDirName))
	}

	return append(paths, systemConfigDir)
}

// DefaultUserConfigPath is the location `config init` writes to when no path is given.
func DefaultUserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDirName, configName+"."+configType), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", configDirName, configName+"."+configType), nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("version", SupportedVersion)
	v.SetDefault("tick_seconds", 2)
	v.SetDefault("enable_broadcast", false)
	v.SetDefault("broadcast_interval", 2)

	v.SetDefault("statistics.enabled", false)
	v.SetDefault("statistics.port", 9000)

	v.SetDefault("api.enabled", false)
	v.SetDefault("api.host", "localhost")
	v.SetDefault("api.port", 8080)

	v.SetDefault("dbus.bus", DbusSessionBus)
}

// ReadConfigFile locates and reads the config file and returns the path that was used.
func ReadConfigFile() (string, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", &ConfigError{Section: "config", Reason: "configuration file not found in any standard location"}
		}
		return "", &ConfigError{Section: "config", Reason: err.Error()}
	}
	return viper.ConfigFileUsed(), nil
}

// LoadConfig decodes the config file that was read by ReadConfigFile.
func LoadConfig() (*Configuration, error) {
	return decode(viper.GetViper())
}

// ParseConfig decodes a YAML document without touching the global config lookup.
func ParseConfig(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType(configType)
	setDefaultValues(v)
	if err := v.ReadConfig(r); err != nil {
		return nil, &ConfigError{Section: "config", Reason: err.Error()}
	}
	return decode(v)
}

// ParseConfigFile decodes the YAML document at the given path.
func ParseConfigFile(path string) (*Configuration, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Section: "config", Reason: err.Error()}
	}
	defer file.Close()
	return ParseConfig(file)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var config Configuration
	err := v.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			usbIdHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, &ConfigError{Section: "config", Reason: fmt.Sprintf("unable to decode into struct: %v", err)}
	}
	config.applyFanDefaults()
	return &config, nil
}
