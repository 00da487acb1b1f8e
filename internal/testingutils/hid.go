package testingutils

import (
	"errors"
	"sync"
	"time"
)

const (
	reportSize = 193
	statusOk   = 0xFC
)

// MockHidDevice emulates the HID interface of a Riing Quad controller.
type MockHidDevice struct {
	mu sync.Mutex

	written [][]byte
	closed  bool

	status    byte
	firmware  [3]byte
	rpm       map[uint8]int
	speeds    map[uint8]uint8
	failWrite error
	failRead  error

	pending []byte
}

func NewMockHidDevice() *MockHidDevice {
	return &MockHidDevice{
		status:   statusOk,
		firmware: [3]byte{1, 4, 2},
		rpm:      map[uint8]int{},
		speeds:   map[uint8]uint8{},
	}
}

func (d *MockHidDevice) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, errors.New("device closed")
	}
	if d.failWrite != nil {
		return 0, d.failWrite
	}
	d.written = append(d.written, append([]byte(nil), p...))

	resp := make([]byte, reportSize)
	switch {
	case p[1] == 0x33 && p[2] == 0x50:
		copy(resp, d.firmware[:])
	case p[1] == 0x33 && p[2] == 0x51:
		port := p[3]
		rpm := d.rpm[port]
		resp[2] = d.speeds[port]
		resp[3] = byte(rpm & 0xFF)
		resp[4] = byte(rpm >> 8)
	case p[1] == 0x32 && p[2] == 0x51:
		d.speeds[p[3]] = p[5]
		resp[2] = d.status
	default:
		resp[2] = d.status
	}
	d.pending = resp
	return len(p), nil
}

func (d *MockHidDevice) ReadWithTimeout(p []byte, timeout time.Duration) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failRead != nil {
		return 0, d.failRead
	}
	n := copy(p, d.pending)
	d.pending = nil
	return n, nil
}

func (d *MockHidDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *MockHidDevice) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Commands returns a copy of all reports written so far.
func (d *MockHidDevice) Commands() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([][]byte(nil), d.written...)
}

// SpeedCommands returns the (port, speed) pairs of all set speed reports.
func (d *MockHidDevice) SpeedCommands() [][2]int {
	d.mu.Lock()
	defer d.mu.Unlock()

	var result [][2]int
	for _, w := range d.written {
		if len(w) >= 6 && w[1] == 0x32 && w[2] == 0x51 {
			result = append(result, [2]int{int(w[3]), int(w[5])})
		}
	}
	return result
}

// ColorCommands returns the ports of all set color reports.
func (d *MockHidDevice) ColorCommands() []int {
	d.mu.Lock()
	defer d.mu.Unlock()

	var result []int
	for _, w := range d.written {
		if len(w) >= 5 && w[1] == 0x32 && w[2] == 0x52 {
			result = append(result, int(w[3]))
		}
	}
	return result
}

func (d *MockHidDevice) SetStatus(status byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = status
}

func (d *MockHidDevice) SetRpm(port uint8, rpm int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rpm[port] = rpm
}

func (d *MockHidDevice) FailWrites(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failWrite = err
}

func (d *MockHidDevice) FailReads(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failRead = err
}

// FakeClock is a manually advanced time source.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Unix(1000, 0)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
