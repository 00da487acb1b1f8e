package cmd

import (
	"github.com/At1ass/tt-riingd/cmd/global"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tt-riingd",
	Long:  `All software has versions. This is tt-riingd's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln(global.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
