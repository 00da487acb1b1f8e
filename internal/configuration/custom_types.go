package configuration

import (
	"fmt"
	"github.com/mitchellh/mapstructure"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// UsbId is a USB vendor or product identifier. In YAML it can be given
// as an integer (0x264a, 9802) or as a hex string ("0x264a", "264a").
type UsbId uint16

func (id UsbId) String() string {
	return fmt.Sprintf("0x%04x", uint16(id))
}

// usbIdHookFunc returns a mapstructure decode hook that parses UsbId values
func usbIdHookFunc() mapstructure.DecodeHookFuncType {
	usbIdType := reflect.TypeOf(UsbId(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != usbIdType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return parseUsbId(v)
		case int:
			return intToUsbId(int64(v))
		case int64:
			return intToUsbId(v)
		case uint64:
			if v > math.MaxUint16 {
				return nil, fmt.Errorf("usb id %d out of range", v)
			}
			return UsbId(v), nil
		case float64:
			return intToUsbId(int64(v))
		}
		return data, nil
	}
}

func parseUsbId(text string) (UsbId, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	text = strings.TrimPrefix(text, "0x")
	value, err := strconv.ParseUint(text, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid usb id %q: %w", text, err)
	}
	return UsbId(value), nil
}

func intToUsbId(value int64) (UsbId, error) {
	if value < 0 || value > math.MaxUint16 {
		return 0, fmt.Errorf("usb id %d out of range", value)
	}
	return UsbId(value), nil
}
