package controller

import (
	"context"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/device"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/At1ass/tt-riingd/internal/util"
	"sync"
	"time"
)

type colorCommand struct {
	fan   int
	name  string
	color device.RGB
}

// ColorBroadcaster periodically pushes the static color assignment to all mapped fans.
// Failures are logged and retried on the next broadcast.
type ColorBroadcaster struct {
	interval    time.Duration
	transport   *device.Transport
	assignments map[int][]colorCommand
}

func NewColorBroadcaster(config *configuration.Configuration, transport *device.Transport) *ColorBroadcaster {
	assignments := map[int][]colorCommand{}
	for _, mapping := range config.ColorMappings {
		color, ok := config.FindColor(mapping.Color)
		if !ok {
			ui.Warning("Color %s is not defined, skipping its mapping", mapping.Color)
			continue
		}
		rgb := toRGB(color.Rgb)
		for _, target := range mapping.Targets {
			assignments[target.Controller] = append(assignments[target.Controller], colorCommand{
				fan:   target.FanIdx,
				name:  color.Color,
				color: rgb,
			})
		}
	}

	return &ColorBroadcaster{
		interval:    config.BroadcastCadence(),
		transport:   transport,
		assignments: assignments,
	}
}

func toRGB(values []int) device.RGB {
	channel := func(i int) uint8 {
		if i >= len(values) {
			return 0
		}
		return uint8(util.Clamp(values[i], 0, 255))
	}
	return device.RGB{R: channel(0), G: channel(1), B: channel(2)}
}

// Run broadcasts immediately and then every broadcast interval until ctx is cancelled.
func (b *ColorBroadcaster) Run(ctx context.Context) error {
	ui.Info("Starting color broadcast, every %s", b.interval)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b.Broadcast()

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Broadcast sends every color assignment once, controllers are served concurrently.
func (b *ColorBroadcaster) Broadcast() {
	var wg sync.WaitGroup
	for _, number := range util.SortedKeys(b.assignments) {
		c, ok := b.transport.Controller(number)
		if !ok {
			ui.Warning("Color mapping references unknown controller %d", number)
			continue
		}

		wg.Add(1)
		go func(c *device.Controller, cmds []colorCommand) {
			defer wg.Done()
			for _, cmd := range cmds {
				if err := c.SendColor(cmd.fan, cmd.color); err != nil {
					ui.Debug("Cannot set color %s of fan %d:%d: %v", cmd.name, c.Number, cmd.fan, err)
				}
			}
		}(c, b.assignments[number])
	}
	wg.Wait()
}
