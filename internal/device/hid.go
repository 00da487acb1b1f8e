package device

import (
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/sstallion/go-hid"
	"time"
)

// HidDevice is an open HID handle.
type HidDevice interface {
	Write(p []byte) (int, error)
	ReadWithTimeout(p []byte, timeout time.Duration) (int, error)
	Close() error
}

// UsbSelector identifies the USB device of a controller.
type UsbSelector struct {
	Vid    uint16
	Pid    uint16
	Serial string
}

func NewUsbSelector(config configuration.UsbConfig) UsbSelector {
	return UsbSelector{
		Vid:    uint16(config.Vid),
		Pid:    uint16(config.Pid),
		Serial: config.Serial,
	}
}

// Opener opens the HID device matching the selector.
type Opener func(selector UsbSelector) (HidDevice, error)

// InitHid initializes the hidapi library, call once before OpenHid.
func InitHid() error {
	return hid.Init()
}

func ExitHid() error {
	return hid.Exit()
}

// OpenHid opens the first device matching vid and pid, or the one with the given serial.
func OpenHid(selector UsbSelector) (HidDevice, error) {
	var dev *hid.Device
	var err error
	if selector.Serial != "" {
		dev, err = hid.Open(selector.Vid, selector.Pid, selector.Serial)
	} else {
		dev, err = hid.OpenFirst(selector.Vid, selector.Pid)
	}
	if err != nil {
		return nil, err
	}
	return dev, nil
}

// DeviceInfo describes a connected Thermaltake USB device.
type DeviceInfo struct {
	Path    string
	Vid     uint16
	Pid     uint16
	Serial  string
	Product string
}

// Enumerate lists all connected Thermaltake HID devices.
func Enumerate() ([]DeviceInfo, error) {
	var result []DeviceInfo
	err := hid.Enumerate(VendorThermaltake, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
		result = append(result, DeviceInfo{
			Path:    info.Path,
			Vid:     info.VendorID,
			Pid:     info.ProductID,
			Serial:  info.SerialNbr,
			Product: info.ProductStr,
		})
		return nil
	})
	return result, err
}
