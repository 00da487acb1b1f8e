package ctl

import (
	"fmt"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/controlplane"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/At1ass/tt-riingd/internal/util"
	"github.com/spf13/cobra"
)

var bus string

var Command = &cobra.Command{
	Use:   "ctl",
	Short: "Talk to a running daemon",
	Long:  ``,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the daemon version and the last sensor temperatures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlplane.Dial(bus)
		if err != nil {
			return err
		}
		defer client.Close()

		version, err := client.Version()
		if err != nil {
			return err
		}
		temperatures, err := client.GetTemperatures()
		if err != nil {
			return err
		}

		ui.Printfln("tt-riingd %s", version)
		for _, id := range util.SortedKeys(temperatures) {
			ui.Printfln("%-16s %6.1f °C", id, temperatures[id])
		}
		return nil
	},
}

var firmwareController uint8

var firmwareCmd = &cobra.Command{
	Use:   "firmware",
	Short: "Print the firmware version of a controller",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlplane.Dial(bus)
		if err != nil {
			return err
		}
		defer client.Close()

		version, err := client.GetFirmwareVersion(firmwareController)
		if err != nil {
			return err
		}
		fmt.Println(version)
		return nil
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the config file of the daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlplane.Dial(bus)
		if err != nil {
			return err
		}
		defer client.Close()

		result, err := client.ReloadConfig()
		if err != nil {
			return err
		}
		ui.Success("Config reloaded: %s", result)
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlplane.Dial(bus)
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Stop(); err != nil {
			return err
		}
		ui.Success("Stop requested")
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&bus,
		"bus", "",
		configuration.DbusSessionBus,
		fmt.Sprintf("Message bus of the daemon (%s | %s)", configuration.DbusSessionBus, configuration.DbusSystemBus),
	)

	firmwareCmd.Flags().Uint8VarP(&firmwareController, "controller", "C", 0, "Controller number, starting at 1 in config order")
	_ = firmwareCmd.MarkFlagRequired("controller")

	Command.AddCommand(statusCmd)
	Command.AddCommand(firmwareCmd)
	Command.AddCommand(reloadCmd)
	Command.AddCommand(stopCmd)
}
