package fan

import (
	"fmt"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/spf13/cobra"
)

var (
	controllerIdx uint8
	fanIdx        uint8
	bus           string
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands of a running daemon",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().Uint8VarP(
		&controllerIdx,
		"controller", "C",
		0,
		"Controller number, starting at 1 in config order",
	)
	Command.PersistentFlags().Uint8VarP(
		&fanIdx,
		"fan", "f",
		0,
		"Fan channel index on the controller",
	)
	Command.PersistentFlags().StringVarP(
		&bus,
		"bus", "",
		configuration.DbusSessionBus,
		fmt.Sprintf("Message bus of the daemon (%s | %s)", configuration.DbusSessionBus, configuration.DbusSystemBus),
	)
	_ = Command.MarkPersistentFlagRequired("controller")
	_ = Command.MarkPersistentFlagRequired("fan")
}
