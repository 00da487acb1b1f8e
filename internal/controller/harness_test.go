package controller

import (
	"errors"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/device"
	"github.com/At1ass/tt-riingd/internal/sensors"
	"github.com/At1ass/tt-riingd/internal/state"
	"github.com/At1ass/tt-riingd/internal/testingutils"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

type harness struct {
	config    *configuration.Configuration
	store     *state.Store
	backend   *testingutils.MockSensorBackend
	transport *device.Transport
	readings  *sensors.Readings
	clock     *testingutils.FakeClock

	mu      sync.Mutex
	devices map[uint16][]*testingutils.MockHidDevice
	front   *testingutils.MockHidDevice
	rear    *testingutils.MockHidDevice
}

func newHarness(t *testing.T) *harness {
	config := testingutils.CreateConfig()
	store, err := state.NewStore(config)
	require.NoError(t, err)

	h := &harness{
		config:   config,
		store:    store,
		backend:  testingutils.NewMockSensorBackend(map[string]float64{"cpu": 55, "gpu": 40}),
		readings: sensors.NewReadings(),
		clock:    testingutils.NewFakeClock(),
		front:    testingutils.NewMockHidDevice(),
		rear:     testingutils.NewMockHidDevice(),
	}
	h.devices = map[uint16][]*testingutils.MockHidDevice{
		0x2260: {h.front},
		0x2261: {h.rear},
	}

	h.transport = device.NewTransport(config, h.open)
	for _, c := range h.transport.Controllers() {
		c.SetClock(h.clock.Now)
	}
	h.transport.OpenAll()
	return h
}

// open hands out the queued devices of the requested product id
func (h *harness) open(selector device.UsbSelector) (device.HidDevice, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	queue := h.devices[selector.Pid]
	if len(queue) == 0 {
		return nil, errors.New("no such device")
	}
	h.devices[selector.Pid] = queue[1:]
	return queue[0], nil
}

func (h *harness) plugIn(pid uint16, dev *testingutils.MockHidDevice) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.devices[pid] = append(h.devices[pid], dev)
}

func (h *harness) loop() *ControlLoop {
	return NewControlLoop(h.config, h.store, h.backend, h.transport, h.readings)
}
