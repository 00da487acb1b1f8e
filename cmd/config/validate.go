package config

import (
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/spf13/cobra"
	"os"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// note: config file path parameter comes from the root command (-c)
		configPath, err := configuration.ReadConfigFile()
		if err != nil {
			ui.Error("%v", err)
			os.Exit(1)
		}
		ui.Info("Using configuration file at: %s", configPath)

		config, err := configuration.LoadConfig()
		if err != nil {
			ui.Error("%v", err)
			os.Exit(1)
		}

		if err := configuration.Validate(config, configPath); err != nil {
			ui.Error("Validation failed: %v", err)
			os.Exit(1)
		}

		ui.Success("Config looks good! :)")
		return nil
	},
}

func init() {
	Command.AddCommand(validateCmd)
}
