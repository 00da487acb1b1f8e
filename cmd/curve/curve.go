package curve

import (
	"bytes"
	"fmt"
	"github.com/At1ass/tt-riingd/cmd/global"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/curves"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"strconv"
)

var curveId string

var Command = &cobra.Command{
	Use:   "curve",
	Short: "Print the configured curve(s) to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, _ := global.LoadConfig()

		printed := 0
		for _, curveConfig := range config.Curves {
			if curveId != "" && curveConfig.Id != curveId {
				continue
			}

			curve, err := curveConfig.ToCurve()
			if err != nil {
				return err
			}

			if printed > 0 {
				ui.Printfln("")
				ui.Printfln("")
			}
			if err := printCurve(curveConfig, curve); err != nil {
				return err
			}
			printed++
		}

		if printed == 0 && curveId != "" {
			return fmt.Errorf("no curve with id found: %s", curveId)
		}
		return nil
	},
}

func init() {
	Command.Flags().StringVarP(
		&curveId,
		"id", "i",
		"",
		"Curve ID as specified in the config",
	)
}

func printCurve(config configuration.CurveConfig, curve curves.Curve) error {
	ui.Printfln("> %s (%s)", config.Id, curve.Kind)

	var rows [][]string
	switch curve.Kind {
	case curves.KindConstant:
		rows = append(rows, []string{"any", strconv.Itoa(curve.Speed)})
	case curves.KindStep:
		for i := range curve.Temps {
			rows = append(rows, []string{strconv.FormatFloat(curve.Temps[i], 'f', 1, 64), strconv.Itoa(curve.Speeds[i])})
		}
	case curves.KindBezier:
		for _, p := range curve.Points {
			rows = append(rows, []string{strconv.FormatFloat(p.X, 'f', 1, 64), strconv.FormatFloat(p.Y, 'f', 1, 64)})
		}
	}

	tab := table.Table{
		Headers: []string{"Temp °C", "Speed %"},
		Rows:    rows,
	}
	var buf bytes.Buffer
	tableErr := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if tableErr != nil {
		return tableErr
	}
	ui.Printfln(buf.String())

	values := make([]float64, 0, 101)
	for temp := 0; temp <= 100; temp++ {
		speed, err := curves.Evaluate(curve, float64(temp))
		if err != nil {
			return err
		}
		values = append(values, float64(speed))
	}

	caption := "Speed % / Temp °C"
	graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
	ui.Printfln(graph)
	return nil
}
