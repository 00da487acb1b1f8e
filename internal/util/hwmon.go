package util

import (
	"os"
	"path/filepath"
	"strings"
)

// GetDeviceName read the name of a hwmon device
func GetDeviceName(devicePath string) string {
	content, _ := os.ReadFile(filepath.Join(devicePath, "name"))
	return strings.TrimSpace(string(content))
}

// GetLabel read the label of an input of a hwmon device,
// falling back to the input name without its "_input" suffix
func GetLabel(devicePath string, input string) string {
	labelPath := filepath.Join(devicePath, strings.TrimSuffix(input, "input")+"label")

	content, _ := os.ReadFile(labelPath)
	label := strings.TrimSpace(string(content))
	if len(label) <= 0 {
		label = strings.TrimSuffix(input, "_input")
	}
	return label
}
