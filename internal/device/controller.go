package device

import (
	"fmt"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/At1ass/tt-riingd/internal/util"
	"github.com/asecurityteam/rolling"
	"sync"
	"time"
)

const (
	ReadTimeout = 250 * time.Millisecond

	rpmWindowSize = 10
)

// ChannelTelemetry is the last known state of a fan port.
type ChannelTelemetry struct {
	Fan    int     `json:"fan"`
	Speed  int     `json:"speed"`
	Rpm    int     `json:"rpm"`
	AvgRpm float64 `json:"avgRpm"`
}

type channel struct {
	speed     int
	rpm       int
	rpmWindow *rolling.PointPolicy
	samples   int
}

// Controller drives one Riing Quad controller.
// All I/O is serialized, a failed operation closes the handle and the controller
// stays degraded until a reconnect succeeds.
type Controller struct {
	Number int
	Id     string

	selector UsbSelector
	opener   Opener
	now      func() time.Time

	mu       sync.Mutex
	dev      HidDevice
	closed   bool
	backoff  *Backoff
	lastErr  error
	channels map[int]*channel
}

// NewController creates a closed controller, call Open to connect.
// number is the 1-based position of the controller in the configuration.
func NewController(number int, config configuration.ControllerConfig, opener Opener) *Controller {
	channels := map[int]*channel{}
	for idx := 1; idx <= configuration.RiingQuadChannels; idx++ {
		channels[idx] = &channel{
			rpmWindow: util.CreateRollingWindow(rpmWindowSize),
		}
	}

	return &Controller{
		Number:   number,
		Id:       config.Id,
		selector: NewUsbSelector(config.Usb),
		opener:   opener,
		now:      time.Now,
		backoff:  NewBackoff(),
		channels: channels,
	}
}

// SetClock replaces the time source used to schedule reconnects.
func (c *Controller) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Open connects to the device and sends the init command.
// On failure the controller is degraded and reconnects on a later operation.
func (c *Controller) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.newError("open", ErrClosed)
	}
	if c.dev != nil {
		return nil
	}
	return c.connect()
}

// Close releases the handle, the controller does not reconnect afterwards.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.dev == nil {
		return nil
	}
	err := c.dev.Close()
	c.dev = nil
	if err != nil {
		return c.newError("close", err)
	}
	return nil
}

// Connected reports whether the controller currently holds an open handle.
func (c *Controller) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dev != nil
}

// Degraded reports whether the last connection attempt or I/O operation failed.
func (c *Controller) Degraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dev == nil && !c.closed
}

// LastError is the error that degraded the controller, nil while connected.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dev != nil {
		return nil
	}
	return c.lastErr
}

// SendSpeed sets the duty cycle of the given fan port in percent.
func (c *Controller) SendSpeed(fan int, speed int) error {
	if err := c.checkChannel("set speed", fan); err != nil {
		return err
	}
	if speed < 0 || speed > 100 {
		return c.newError("set speed", fmt.Errorf("%w: %d", ErrInvalidSpeed, speed))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	op := fmt.Sprintf("set speed of fan %d", fan)
	resp, err := c.request(op, setSpeedCommand(uint8(fan), uint8(speed)))
	if err != nil {
		return err
	}
	if err := parseStatus(resp); err != nil {
		return c.fail(op, err)
	}

	c.channels[fan].speed = speed
	return nil
}

// ReadRpm queries the current speed and RPM of the given fan port.
func (c *Controller) ReadRpm(fan int) (int, error) {
	if err := c.checkChannel("read rpm", fan); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	op := fmt.Sprintf("read rpm of fan %d", fan)
	resp, err := c.request(op, getDataCommand(uint8(fan)))
	if err != nil {
		return 0, err
	}
	speed, rpm, err := parseData(resp)
	if err != nil {
		return 0, c.fail(op, err)
	}

	ch := c.channels[fan]
	ch.speed = speed
	ch.rpm = rpm
	if ch.samples == 0 {
		util.FillWindow(ch.rpmWindow, rpmWindowSize, float64(rpm))
	} else {
		ch.rpmWindow.Append(float64(rpm))
	}
	ch.samples++
	return rpm, nil
}

// SendColor paints all LEDs of the given fan port in one color.
func (c *Controller) SendColor(fan int, color RGB) error {
	if err := c.checkChannel("set color", fan); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	op := fmt.Sprintf("set color of fan %d", fan)
	resp, err := c.request(op, setRgbCommand(uint8(fan), ModePerLed, color))
	if err != nil {
		return err
	}
	if err := parseStatus(resp); err != nil {
		return c.fail(op, err)
	}
	return nil
}

// FirmwareVersion queries the firmware version as "major.minor.patch".
func (c *Controller) FirmwareVersion() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	op := "read firmware version"
	resp, err := c.request(op, firmwareVersionCommand())
	if err != nil {
		return "", err
	}
	version, err := parseFirmwareVersion(resp)
	if err != nil {
		return "", c.fail(op, err)
	}
	return version, nil
}

// Telemetry returns the last known state of all fan ports, ordered by port.
func (c *Controller) Telemetry() []ChannelTelemetry {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]ChannelTelemetry, 0, len(c.channels))
	for idx := 1; idx <= configuration.RiingQuadChannels; idx++ {
		ch := c.channels[idx]
		result = append(result, ChannelTelemetry{
			Fan:    idx,
			Speed:  ch.speed,
			Rpm:    ch.rpm,
			AvgRpm: util.GetWindowAvg(ch.rpmWindow),
		})
	}
	return result
}

func (c *Controller) checkChannel(op string, fan int) error {
	if _, ok := c.channels[fan]; !ok {
		return c.newError(op, fmt.Errorf("%w: %d", ErrInvalidChannel, fan))
	}
	return nil
}

// request writes a command and reads its response, reconnecting first if the
// backoff allows it. Must be called with mu held.
func (c *Controller) request(op string, cmd []byte) ([]byte, error) {
	if err := c.ensureConnected(op); err != nil {
		return nil, err
	}

	if _, err := c.dev.Write(cmd); err != nil {
		return nil, c.fail(op, err)
	}

	buf := make([]byte, ReportSize)
	n, err := c.dev.ReadWithTimeout(buf, ReadTimeout)
	if err != nil {
		return nil, c.fail(op, err)
	}
	if n <= 0 {
		return nil, c.fail(op, ErrIncompleteRead)
	}
	return buf[:n], nil
}

func (c *Controller) ensureConnected(op string) error {
	if c.closed {
		return c.newError(op, ErrClosed)
	}
	if c.dev != nil {
		return nil
	}
	if !c.backoff.Ready(c.now()) {
		return c.newError(op, fmt.Errorf("%w, next reconnect at %s", ErrDegraded, c.backoff.NextAttempt().Format(time.TimeOnly)))
	}
	return c.connect()
}

func (c *Controller) connect() error {
	dev, err := c.opener(c.selector)
	if err != nil {
		return c.fail("open", err)
	}
	c.dev = dev

	if _, err := dev.Write(initCommand()); err != nil {
		return c.fail("init", err)
	}
	buf := make([]byte, ReportSize)
	n, err := dev.ReadWithTimeout(buf, ReadTimeout)
	if err != nil {
		return c.fail("init", err)
	}
	if err := parseStatus(buf[:n]); err != nil {
		return c.fail("init", err)
	}

	if c.backoff.Failures() > 0 {
		ui.Info("Controller %d (%s) reconnected", c.Number, c.Id)
	}
	c.backoff.Reset()
	c.lastErr = nil
	return nil
}

// fail closes the handle and schedules a reconnect. Must be called with mu held.
func (c *Controller) fail(op string, err error) error {
	if c.dev != nil {
		_ = c.dev.Close()
		c.dev = nil
	}
	c.backoff.Failed(c.now())

	deviceErr := c.newError(op, err)
	c.lastErr = deviceErr
	ui.Warning("%v, retrying in %s", deviceErr, c.backoff.NextAttempt().Sub(c.now()).Round(time.Second))
	return deviceErr
}

func (c *Controller) newError(op string, err error) *DeviceError {
	return &DeviceError{Controller: c.Number, Op: op, Err: err}
}
