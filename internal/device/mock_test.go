package device

import (
	"errors"
	"github.com/At1ass/tt-riingd/internal/testingutils"
	"sync"
)

// mockOpener hands out the given devices in order and fails while failures > 0.
type mockOpener struct {
	mu       sync.Mutex
	devices  []*testingutils.MockHidDevice
	failures int
	calls    int
}

func (o *mockOpener) open(selector UsbSelector) (HidDevice, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.calls++
	if o.failures > 0 {
		o.failures--
		return nil, errors.New("no such device")
	}
	if len(o.devices) == 0 {
		return nil, errors.New("no such device")
	}
	dev := o.devices[0]
	o.devices = o.devices[1:]
	return dev, nil
}
