package sensor

import (
	"context"
	"fmt"
	"github.com/At1ass/tt-riingd/cmd/global"
	"github.com/At1ass/tt-riingd/internal/sensors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var sensorId string

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current temperature of a sensor",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		config, _ := global.LoadConfig()
		sensorConfig, ok := config.FindSensor(sensorId)
		if !ok {
			var ids []string
			for _, s := range config.Sensors {
				ids = append(ids, s.Id)
			}
			return fmt.Errorf("no sensor with id found: %s, options: %v", sensorId, ids)
		}

		value, err := sensors.NewBackend().ReadTemperature(context.Background(), sensors.NewSensor(*sensorConfig))
		if err != nil {
			return err
		}
		fmt.Printf("%.1f\n", value)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}
