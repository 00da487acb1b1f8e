package controller

import (
	"context"
	"errors"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/curves"
	"github.com/At1ass/tt-riingd/internal/device"
	"github.com/At1ass/tt-riingd/internal/sensors"
	"github.com/At1ass/tt-riingd/internal/state"
	"github.com/At1ass/tt-riingd/internal/ui"
	"maps"
	"sync"
	"time"
)

// TemperatureListener is called after every tick with the temperatures read in that tick.
type TemperatureListener func(temperatures map[string]float64)

type binding struct {
	sensor  sensors.Sensor
	targets []configuration.FanTarget
}

type speedCommand struct {
	fan   int
	speed int
	curve string
}

// ControlLoop periodically reads all sensors and applies the active curve of
// every mapped fan.
type ControlLoop struct {
	interval  time.Duration
	bindings  []binding
	store     *state.Store
	backend   sensors.Backend
	transport *device.Transport
	readings  *sensors.Readings

	listenersMu sync.Mutex
	listeners   []TemperatureListener
}

func NewControlLoop(
	config *configuration.Configuration,
	store *state.Store,
	backend sensors.Backend,
	transport *device.Transport,
	readings *sensors.Readings,
) *ControlLoop {
	var bindings []binding
	for _, s := range sensors.NewSensors(config) {
		b := binding{sensor: s}
		for _, m := range config.Mappings {
			if m.Sensor == s.Id {
				b.targets = append(b.targets, m.Targets...)
			}
		}
		bindings = append(bindings, b)
	}

	return &ControlLoop{
		interval:  config.TickInterval(),
		bindings:  bindings,
		store:     store,
		backend:   backend,
		transport: transport,
		readings:  readings,
	}
}

func (l *ControlLoop) AddTemperatureListener(listener TemperatureListener) {
	l.listenersMu.Lock()
	defer l.listenersMu.Unlock()
	l.listeners = append(l.listeners, listener)
}

// Run ticks immediately and then every tick interval until ctx is cancelled.
// Cancellation is only observed between ticks.
func (l *ControlLoop) Run(ctx context.Context) error {
	ui.Info("Starting control loop, tick every %s", l.interval)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ui.Info("Control loop stopped")
			return nil
		default:
		}

		l.Tick(ctx)

		select {
		case <-ctx.Done():
			ui.Info("Control loop stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Tick reads every sensor once and commands the fans mapped from the sensors
// that could be read. Fans of failed sensors keep their previous speed.
func (l *ControlLoop) Tick(ctx context.Context) {
	commands := map[int][]speedCommand{}
	temperatures := map[string]float64{}

	for _, b := range l.bindings {
		temp, err := l.backend.ReadTemperature(ctx, b.sensor)
		if err != nil {
			ui.Warning("Skipping %d fan(s) of sensor %s: %v", len(b.targets), b.sensor.Id, err)
			continue
		}
		l.readings.Set(b.sensor.Id, temp)
		temperatures[b.sensor.Id] = temp

		for _, target := range b.targets {
			key := state.FanKey{Controller: uint8(target.Controller), Fan: uint8(target.FanIdx)}
			curveId, curve, err := l.store.GetActive(key)
			if err != nil {
				ui.Error("Cannot resolve curve of fan %s: %v", key, err)
				continue
			}
			speed, err := curves.Evaluate(curve, temp)
			if err != nil {
				ui.Warning("Cannot evaluate curve %s of fan %s at %.1f°C: %v", curveId, key, temp, err)
				continue
			}
			commands[target.Controller] = append(commands[target.Controller], speedCommand{
				fan:   target.FanIdx,
				speed: speed,
				curve: curveId,
			})
		}
	}

	l.submit(commands)
	l.notify(temperatures)
}

// submit sends the commands of every controller in order, controllers run concurrently
func (l *ControlLoop) submit(commands map[int][]speedCommand) {
	var wg sync.WaitGroup
	for number, cmds := range commands {
		c, ok := l.transport.Controller(number)
		if !ok {
			ui.Error("Unknown controller %d", number)
			continue
		}

		wg.Add(1)
		go func(c *device.Controller, cmds []speedCommand) {
			defer wg.Done()
			for _, cmd := range cmds {
				if err := c.SendSpeed(cmd.fan, cmd.speed); err != nil {
					if errors.Is(err, device.ErrDegraded) {
						ui.Debug("Skipping controller %d: %v", c.Number, err)
						return
					}
					ui.Debug("Cannot set speed of fan %d:%d: %v", c.Number, cmd.fan, err)
					continue
				}
				ui.Debug("Fan %d:%d set to %d%% (curve %s)", c.Number, cmd.fan, cmd.speed, cmd.curve)

				if _, err := c.ReadRpm(cmd.fan); err != nil {
					ui.Debug("Cannot read rpm of fan %d:%d: %v", c.Number, cmd.fan, err)
				}
			}
		}(c, cmds)
	}
	wg.Wait()
}

func (l *ControlLoop) notify(temperatures map[string]float64) {
	if len(temperatures) <= 0 {
		return
	}

	l.listenersMu.Lock()
	listeners := append([]TemperatureListener(nil), l.listeners...)
	l.listenersMu.Unlock()

	for _, listener := range listeners {
		listener(maps.Clone(temperatures))
	}
}
