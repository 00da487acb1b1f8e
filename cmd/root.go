package cmd

import (
	"fmt"
	"github.com/At1ass/tt-riingd/cmd/config"
	"github.com/At1ass/tt-riingd/cmd/ctl"
	"github.com/At1ass/tt-riingd/cmd/curve"
	"github.com/At1ass/tt-riingd/cmd/fan"
	"github.com/At1ass/tt-riingd/cmd/global"
	"github.com/At1ass/tt-riingd/cmd/sensor"
	"github.com/At1ass/tt-riingd/internal"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"os"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tt-riingd",
	Short: "A daemon to control Thermaltake Riing fans.",
	Long: `tt-riingd drives the fans attached to Thermaltake Riing Quad
controllers based on temperature sensors and exposes a D-Bus control plane.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()
		printHeader()

		config, configPath := global.LoadConfig()
		internal.RunDaemon(config, configPath, global.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/tt_riingd/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(ctl.Command)

	rootCmd.AddCommand(fan.Command)
	rootCmd.AddCommand(curve.Command)
	rootCmd.AddCommand(sensor.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("tt", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("-", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("riingd", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("tt-riingd")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		setupUi()
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
