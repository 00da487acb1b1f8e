package fan

import (
	"fmt"
	"github.com/At1ass/tt-riingd/internal/controlplane"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/spf13/cobra"
	"io"
	"os"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Inspect and change the curves of a fan",
}

var curveGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the name of the active curve",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlplane.Dial(bus)
		if err != nil {
			return err
		}
		defer client.Close()

		name, err := client.GetActiveCurve(controllerIdx, fanIdx)
		if err != nil {
			return err
		}
		fmt.Println(name)
		return nil
	},
}

var curveSwitchCmd = &cobra.Command{
	Use:   "switch <curve>",
	Short: "Switch the active curve",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlplane.Dial(bus)
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.SwitchActiveCurve(controllerIdx, fanIdx, args[0]); err != nil {
			return err
		}
		ui.Success("Fan %d/%d now uses curve %s", controllerIdx, fanIdx, args[0])
		return nil
	},
}

var curveUpdateCmd = &cobra.Command{
	Use:   "update <curve> <json|->",
	Short: "Replace the data of a curve",
	Long: `Replace the data of a curve, e.g.:

  tt-riingd fan curve update -C 1 -f 1 silent '{"t":"StepCurve","c":{"temps":[30,60],"speeds":[20,100]}}'

Use "-" to read the curve from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		curveJson := args[1]
		if curveJson == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			curveJson = string(data)
		}

		client, err := controlplane.Dial(bus)
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.UpdateCurveData(controllerIdx, fanIdx, args[0], curveJson); err != nil {
			return err
		}
		ui.Success("Curve %s of fan %d/%d updated", args[0], controllerIdx, fanIdx)
		return nil
	},
}

func init() {
	curveCmd.AddCommand(curveGetCmd)
	curveCmd.AddCommand(curveSwitchCmd)
	curveCmd.AddCommand(curveUpdateCmd)
	Command.AddCommand(curveCmd)
}
