package config

import (
	"fmt"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/At1ass/tt-riingd/internal/util"
	"github.com/spf13/cobra"
	"os"
)

var force bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Writes an example configuration",
	Long:  `Writes an example configuration to the given path, or to the user config directory if no path is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) > 0 {
			path = args[0]
		} else {
			defaultPath, err := configuration.DefaultUserConfigPath()
			if err != nil {
				return err
			}
			path = defaultPath
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite it", path)
		}

		if err := util.WriteFileAtomic(path, []byte(configuration.ExampleConfig)); err != nil {
			return err
		}
		ui.Success("Example configuration written to %s", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	Command.AddCommand(initCmd)
}
