package cmd

import (
	"bytes"
	"fmt"
	"github.com/At1ass/tt-riingd/cmd/global"
	"github.com/At1ass/tt-riingd/internal/device"
	"github.com/At1ass/tt-riingd/internal/hwmon"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"strconv"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects all temperature sensors and Thermaltake controllers and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		// === Print detected sensors ===
		for _, chip := range hwmon.GetChips() {
			if len(chip.Name) <= 0 || len(chip.Temperatures) <= 0 {
				continue
			}

			ui.Printfln("> %s (%s)", chip.Name, chip.Prefix)

			var rows [][]string
			for _, feature := range chip.Temperatures {
				maxText := "N/A"
				if feature.HasMax {
					maxText = formatTemp(feature.Max)
				}
				minText := "N/A"
				if feature.HasMin {
					minText = formatTemp(feature.Min)
				}
				rows = append(rows, []string{
					"", feature.Name, feature.Label, formatTemp(feature.Value), minText, maxText,
				})
			}

			printTable(table.Table{
				Headers: []string{"Sensors", "Feature", "Label", "Value", "Min", "Max"},
				Rows:    rows,
			}, tableConfig)
		}

		// === Print detected controllers ===
		if err := device.InitHid(); err != nil {
			ui.Error("Cannot initialize hidapi: %v", err)
			return
		}
		defer func() {
			_ = device.ExitHid()
		}()

		devices, err := device.Enumerate()
		if err != nil {
			ui.Error("Cannot enumerate USB HID devices: %v", err)
			return
		}
		if len(devices) <= 0 {
			ui.Printfln("No Thermaltake controllers found")
			return
		}

		ui.Printfln("> Thermaltake controllers")
		var rows [][]string
		for _, info := range devices {
			rows = append(rows, []string{
				"",
				fmt.Sprintf("%#04x", info.Vid),
				fmt.Sprintf("%#04x", info.Pid),
				info.Serial,
				info.Product,
				info.Path,
			})
		}
		printTable(table.Table{
			Headers: []string{"USB", "VID", "PID", "Serial", "Product", "Path"},
			Rows:    rows,
		}, tableConfig)
	},
}

func formatTemp(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}

func printTable(t table.Table, config *table.Config) {
	if t.Rows == nil {
		return
	}
	var buf bytes.Buffer
	if err := t.WriteTable(&buf, config); err != nil {
		ui.Fatal("Error printing table: %v", err)
	}
	ui.Printfln(buf.String())
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
