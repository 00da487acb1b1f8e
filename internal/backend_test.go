package internal

import (
	"context"
	"errors"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/controlplane"
	"github.com/At1ass/tt-riingd/internal/device"
	"github.com/At1ass/tt-riingd/internal/testingutils"
	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

type deviceRack struct {
	mu      sync.Mutex
	devices map[uint16]*testingutils.MockHidDevice
}

func newDeviceRack() *deviceRack {
	return &deviceRack{
		devices: map[uint16]*testingutils.MockHidDevice{
			0x2260: testingutils.NewMockHidDevice(),
			0x2261: testingutils.NewMockHidDevice(),
		},
	}
}

func (r *deviceRack) open(selector device.UsbSelector) (device.HidDevice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dev, ok := r.devices[selector.Pid]
	if !ok {
		return nil, errors.New("no such device")
	}
	return dev, nil
}

func noBus(bus string) (*dbus.Conn, error) {
	return nil, errors.New("no bus in tests")
}

func newTestDaemon(config *configuration.Configuration, rack *deviceRack) *Daemon {
	backend := testingutils.NewMockSensorBackend(map[string]float64{"cpu": 55, "gpu": 40})
	d := NewDaemon(config, "", "test", rack.open, backend)
	d.connectBus = noBus
	return d
}

func TestDaemon_StopRequest(t *testing.T) {
	// GIVEN
	rack := newDeviceRack()
	d := newTestDaemon(testingutils.CreateConfig(), rack)
	require.NoError(t, d.Start())
	assert.Equal(t, StateStarting, d.Lifecycle())

	done := make(chan error, 1)
	go func() {
		done <- d.Run(context.Background())
	}()

	front := rack.devices[0x2260]
	assert.Eventually(t, func() bool {
		return len(front.SpeedCommands()) >= 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return d.Lifecycle() == StateRunning
	}, time.Second, 10*time.Millisecond)

	// WHEN
	err := d.Service().Stop()

	// THEN
	require.NoError(t, err)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}
	assert.Equal(t, StateStopped, d.Lifecycle())
	assert.True(t, front.Closed())
	assert.True(t, rack.devices[0x2261].Closed())
	assert.Contains(t, front.SpeedCommands(), [2]int{1, 36})
	assert.Contains(t, front.SpeedCommands(), [2]int{2, 100})
}

func TestDaemon_ContextCancel(t *testing.T) {
	// GIVEN
	rack := newDeviceRack()
	config := testingutils.CreateConfig()
	config.EnableBroadcast = false
	d := newTestDaemon(config, rack)
	require.NoError(t, d.Start())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- d.Run(ctx)
	}()

	// WHEN
	cancel()

	// THEN
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}
	assert.Equal(t, StateStopped, d.Lifecycle())
	assert.True(t, d.Service().Stopping())
	assert.ErrorIs(t, d.Service().Stop(), controlplane.ErrShuttingDown)
}

func TestDaemon_StartWithMissingDevices(t *testing.T) {
	// GIVEN
	rack := &deviceRack{devices: map[uint16]*testingutils.MockHidDevice{}}
	d := newTestDaemon(testingutils.CreateConfig(), rack)

	// WHEN
	err := d.Start()

	// THEN
	require.NoError(t, err)
	statuses, err := d.Service().Controllers()
	require.NoError(t, err)
	for _, status := range statuses {
		assert.False(t, status.Connected)
	}
}

func TestDaemon_StartWithInvalidActiveCurve(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Controllers[0].Fans[0].ActiveCurve = "missing"
	d := newTestDaemon(config, newDeviceRack())

	// WHEN
	err := d.Start()

	// THEN
	assert.Error(t, err)
}

func TestLifecycleState_String(t *testing.T) {
	assert.Equal(t, "Starting", StateStarting.String())
	assert.Equal(t, "Running", StateRunning.String())
	assert.Equal(t, "Stopping", StateStopping.String())
	assert.Equal(t, "Stopped", StateStopped.String())
}

func TestLifecycle_OnlyMovesForward(t *testing.T) {
	// GIVEN
	var l Lifecycle
	l.advance(StateStopping)

	// WHEN
	l.advance(StateRunning)

	// THEN
	assert.Equal(t, StateStopping, l.State())
}
