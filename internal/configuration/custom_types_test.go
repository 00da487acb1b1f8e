package configuration

import (
	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func decodeUsb(t *testing.T, input map[string]interface{}) (UsbConfig, error) {
	var result UsbConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: usbIdHookFunc(),
		Result:     &result,
	})
	require.NoError(t, err)
	err = decoder.Decode(input)
	return result, err
}

func TestUsbIdHookFunc(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected UsbId
	}{
		{name: "integer", input: 0x264a, expected: 0x264a},
		{name: "hex string with prefix", input: "0x2330", expected: 0x2330},
		{name: "hex string without prefix", input: "264A", expected: 0x264a},
		{name: "float from json", input: float64(9802), expected: 0x264a},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			result, err := decodeUsb(t, map[string]interface{}{"vid": tt.input})

			// THEN
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Vid)
		})
	}
}

func TestUsbIdHookFunc_OutOfRange(t *testing.T) {
	// WHEN
	_, err := decodeUsb(t, map[string]interface{}{"vid": 70000})

	// THEN
	assert.Error(t, err)
}

func TestUsbIdHookFunc_InvalidString(t *testing.T) {
	// WHEN
	_, err := decodeUsb(t, map[string]interface{}{"pid": "riing"})

	// THEN
	assert.Error(t, err)
}

func TestUsbId_String(t *testing.T) {
	assert.Equal(t, "0x264a", UsbId(0x264a).String())
}
