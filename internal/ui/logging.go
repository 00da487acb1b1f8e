package ui

import (
	"github.com/pterm/pterm"
	"sync"
)

// pterm printers keep unguarded state, all output goes through this lock
var outputMu sync.Mutex

func SetDebugEnabled(enabled bool) {
	outputMu.Lock()
	defer outputMu.Unlock()
	pterm.PrintDebugMessages = enabled
}

func Printf(format string, a ...interface{}) {
	outputMu.Lock()
	defer outputMu.Unlock()
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	outputMu.Lock()
	defer outputMu.Unlock()
	pterm.Printfln(format, a...)
}

func Sprintf(format string, a ...interface{}) string {
	return pterm.Sprintf(format, a...)
}

func Debug(format string, a ...interface{}) {
	outputMu.Lock()
	defer outputMu.Unlock()
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	outputMu.Lock()
	defer outputMu.Unlock()
	pterm.Info.Printfln(format, a...)
}

func Success(format string, a ...interface{}) {
	outputMu.Lock()
	defer outputMu.Unlock()
	pterm.Success.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	outputMu.Lock()
	defer outputMu.Unlock()
	pterm.Warning.Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	outputMu.Lock()
	defer outputMu.Unlock()
	pterm.Error.Printfln(format, a...)
}

func Fatal(format string, a ...interface{}) {
	outputMu.Lock()
	defer outputMu.Unlock()
	pterm.Fatal.Printfln(format, a...)
}

// FatalWithoutStacktrace prints the message as an error and exits with status 1
// without the stacktrace pterm.Fatal would print.
func FatalWithoutStacktrace(format string, a ...interface{}) {
	outputMu.Lock()
	defer outputMu.Unlock()
	pterm.Error.WithFatal(true).Printfln(format, a...)
}
