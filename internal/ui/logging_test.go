package ui

import (
	"github.com/pterm/pterm"
	"os"
)

func setupExample() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
}

func ExamplePrintfln() {
	setupExample()

	Printfln("%-8s %6.1f °C", "cpu", 55.0)
	// Output:
	// cpu        55.0 °C
}

func ExampleDebug() {
	setupExample()
	SetDebugEnabled(true)
	defer SetDebugEnabled(false)

	Debug("Fan %d:%d set to %d%% (curve %s)", 1, 2, 36, "silent")
	// Output:
	// DEBUG: Fan 1:2 set to 36% (curve silent)
}

func ExampleInfo() {
	setupExample()

	Info("Controller %d (%s) reconnected", 1, "front")
	// Output:
	// INFO: Controller 1 (front) reconnected
}

func ExampleSuccess() {
	setupExample()

	Success("Curve %s of fan %d/%d updated", "silent", 1, 1)
	// Output:
	// SUCCESS: Curve silent of fan 1/1 updated
}

func ExampleWarning() {
	setupExample()

	Warning("Skipping %d fan(s) of sensor %s", 2, "cpu")
	// Output:
	// WARNING: Skipping 2 fan(s) of sensor cpu
}

func ExampleError() {
	setupExample()

	Error("Cannot connect to the %s bus: %v", "session", os.ErrClosed)
	// Output:
	// ERROR: Cannot connect to the session bus: file already closed
}
