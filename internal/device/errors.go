package device

import (
	"errors"
	"fmt"
)

var (
	// ErrDegraded is returned while a controller waits for its next reconnect attempt
	ErrDegraded       = errors.New("controller degraded")
	ErrClosed         = errors.New("controller closed")
	ErrIncompleteRead = errors.New("incomplete read")
	ErrInvalidChannel = errors.New("invalid fan channel")
	ErrInvalidSpeed   = errors.New("speed out of range")
)

// DeviceError is a failed operation on a controller.
type DeviceError struct {
	Controller int
	Op         string
	Err        error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("controller %d: %s: %v", e.Controller, e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
