package global

import (
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/ui"
)

// Version is overwritten at build time using -ldflags "-X github.com/At1ass/tt-riingd/cmd/global.Version=..."
var Version = "0.1.0"

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// LoadConfig reads, decodes and validates the config file selected by the root command flags.
// Any error terminates the process.
func LoadConfig() (*configuration.Configuration, string) {
	configPath, err := configuration.ReadConfigFile()
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}
	ui.Info("Using configuration file at: %s", configPath)

	config, err := configuration.LoadConfig()
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}
	if err := configuration.Validate(config, configPath); err != nil {
		ui.FatalWithoutStacktrace("Validation failed: %v", err)
	}
	return config, configPath
}
