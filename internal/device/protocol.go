package device

import (
	"errors"
	"fmt"
)

const (
	// VendorThermaltake is the USB vendor id of all Riing controllers
	VendorThermaltake = 0x264A

	// ReportSize is the length of every response report
	ReportSize = 193

	StatusOk byte = 0xFC

	// ModePerLed sets every LED of a fan to an individual color
	ModePerLed byte = 0x24
	// LedsPerFan is the number of addressable LEDs of a Riing Quad fan
	LedsPerFan = 52

	speedModeManual byte = 0x01
)

var (
	ErrShortResponse = errors.New("short response")
	ErrBadStatus     = errors.New("unexpected status")
)

type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func initCommand() []byte {
	return []byte{0x00, 0xFE, 0x33}
}

func firmwareVersionCommand() []byte {
	return []byte{0x00, 0x33, 0x50}
}

func getDataCommand(port uint8) []byte {
	return []byte{0x00, 0x33, 0x51, port}
}

func setSpeedCommand(port uint8, speed uint8) []byte {
	return []byte{0x00, 0x32, 0x51, port, speedModeManual, speed}
}

// setRgbCommand paints all LEDs of a port in one color, the device expects GRB order
func setRgbCommand(port uint8, mode byte, color RGB) []byte {
	buf := make([]byte, 0, 5+3*LedsPerFan)
	buf = append(buf, 0x00, 0x32, 0x52, port, mode)
	for i := 0; i < LedsPerFan; i++ {
		buf = append(buf, color.G, color.R, color.B)
	}
	return buf
}

func parseStatus(buf []byte) error {
	if len(buf) < 3 {
		return fmt.Errorf("%w: %d bytes", ErrShortResponse, len(buf))
	}
	if buf[2] != StatusOk {
		return fmt.Errorf("%w: 0x%02x", ErrBadStatus, buf[2])
	}
	return nil
}

func parseFirmwareVersion(buf []byte) (string, error) {
	if len(buf) < 3 {
		return "", fmt.Errorf("%w: %d bytes", ErrShortResponse, len(buf))
	}
	return fmt.Sprintf("%d.%d.%d", buf[0], buf[1], buf[2]), nil
}

func parseData(buf []byte) (speed int, rpm int, err error) {
	if len(buf) < 5 {
		return 0, 0, fmt.Errorf("%w: %d bytes", ErrShortResponse, len(buf))
	}
	speed = int(buf[2])
	rpm = int(buf[4])<<8 | int(buf[3])
	return speed, rpm, nil
}
