package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/At1ass/tt-riingd/internal/api"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/controller"
	"github.com/At1ass/tt-riingd/internal/controlplane"
	"github.com/At1ass/tt-riingd/internal/device"
	"github.com/At1ass/tt-riingd/internal/sensors"
	"github.com/At1ass/tt-riingd/internal/state"
	"github.com/At1ass/tt-riingd/internal/statistics"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/godbus/dbus/v5"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
)

const shutdownTimeout = 5 * time.Second

type LifecycleState int32

const (
	StateStarting LifecycleState = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s LifecycleState) String() string {
	switch s {
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateStopped:
		return "Stopped"
	}
	return fmt.Sprintf("LifecycleState(%d)", int32(s))
}

// Lifecycle tracks the daemon state, it only ever moves forward.
type Lifecycle struct {
	state atomic.Int32
}

func (l *Lifecycle) State() LifecycleState {
	return LifecycleState(l.state.Load())
}

func (l *Lifecycle) advance(to LifecycleState) {
	for {
		current := l.state.Load()
		if current >= int32(to) {
			return
		}
		if l.state.CompareAndSwap(current, int32(to)) {
			ui.Debug("Daemon %s", to)
			return
		}
	}
}

// Daemon wires the control loop, the control plane and the hardware of one topology.
type Daemon struct {
	config     *configuration.Configuration
	configPath string
	version    string

	opener      device.Opener
	backend     sensors.Backend
	connectBus  func(bus string) (*dbus.Conn, error)
	watchConfig bool

	lifecycle Lifecycle

	store       *state.Store
	readings    *sensors.Readings
	transport   *device.Transport
	service     *controlplane.Service
	loop        *controller.ControlLoop
	broadcaster *controller.ColorBroadcaster
	dbusServer  *controlplane.DbusServer
}

func NewDaemon(config *configuration.Configuration, configPath string, version string, opener device.Opener, backend sensors.Backend) *Daemon {
	return &Daemon{
		config:     config,
		configPath: configPath,
		version:    version,
		opener:     opener,
		backend:    backend,
		connectBus: controlplane.ConnectBus,
	}
}

func (d *Daemon) Lifecycle() LifecycleState {
	return d.lifecycle.State()
}

func (d *Daemon) Service() *controlplane.Service {
	return d.service
}

// Start builds the runtime state and opens all controllers.
// Controllers that cannot be opened stay degraded and are retried by the control loop.
func (d *Daemon) Start() error {
	store, err := state.NewStore(d.config)
	if err != nil {
		return err
	}
	d.store = store
	d.readings = sensors.NewReadings()

	d.transport = device.NewTransport(d.config, d.opener)
	d.transport.OpenAll()

	d.service = controlplane.NewService(d.version, d.config, d.configPath, d.store, d.readings, d.transport)
	d.loop = controller.NewControlLoop(d.config, d.store, d.backend, d.transport, d.readings)
	if d.config.EnableBroadcast {
		d.broadcaster = controller.NewColorBroadcaster(d.config, d.transport)
	}
	return nil
}

// RegisterCollectors registers the prometheus collectors of the running state.
func (d *Daemon) RegisterCollectors() {
	statistics.Register(prometheus.DefaultRegisterer, statistics.Collectors(d.readings, d.transport, d.store)...)
}

// Run blocks until ctx is cancelled, a termination signal is received or a
// stop is requested over the control plane, then shuts everything down.
func (d *Daemon) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := func() {
		d.lifecycle.advance(StateStopping)
		d.service.Shutdown()
		cancel()
	}

	var g run.Group
	{
		// === control loop
		g.Add(func() error {
			return d.loop.Run(runCtx)
		}, func(err error) {
			stop()
		})
	}
	if d.broadcaster != nil {
		// === color broadcast
		g.Add(func() error {
			return d.broadcaster.Run(runCtx)
		}, func(err error) {
			stop()
		})
	}
	if conn, err := d.connectBus(d.config.Dbus.Bus); err != nil {
		ui.Error("Cannot connect to the %s bus, control plane disabled: %v", d.config.Dbus.Bus, err)
	} else {
		// === D-Bus control plane
		server := controlplane.NewDbusServer(d.service, conn)
		if err := server.Start(); err != nil {
			_ = conn.Close()
			d.lifecycle.advance(StateStopping)
			d.shutdown()
			d.lifecycle.advance(StateStopped)
			return err
		}
		d.dbusServer = server
		d.loop.AddTemperatureListener(server.EmitTemperatures)
		g.Add(func() error {
			<-runCtx.Done()
			return nil
		}, func(err error) {
			stop()
		})
	}
	if d.config.Api.Enabled {
		// === REST API
		rest := api.CreateRestService(d.service, prometheus.DefaultRegisterer)
		g.Add(func() error {
			addr := fmt.Sprintf("%s:%d", d.config.Api.Host, d.config.Api.Port)
			ui.Info("REST API listening on %s", addr)
			if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("cannot start REST API: %w", err)
			}
			return nil
		}, func(err error) {
			stop()
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			if err := rest.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping REST API: %v", err)
			}
		})
	}
	if d.config.Statistics.Enabled {
		// === Prometheus Exporter
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", d.config.Statistics.Port),
			Handler: promhttp.Handler(),
		}
		g.Add(func() error {
			ui.Info("Prometheus metrics available on %s/metrics", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("cannot start prometheus metrics endpoint: %w", err)
			}
			return nil
		}, func(err error) {
			stop()
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			if err := server.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping statistics server: %v", err)
			}
		})
	}
	if d.watchConfig && d.configPath != "" {
		// === config file watcher
		g.Add(func() error {
			configuration.Watch(func(path string) {
				ui.Info("Config file %s changed, reloading...", path)
				result, err := d.service.ReloadConfig()
				if err != nil {
					ui.ErrorAndNotify("Config Reload Failed", "Cannot reload config: %v", err)
					return
				}
				ui.Info("Config reloaded: %s", result)
			})
			<-runCtx.Done()
			return nil
		}, func(err error) {
			stop()
		})
	}
	{
		// === signal handler
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
			case <-runCtx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			stop()
		})
	}
	{
		// === stop requests from the control plane
		g.Add(func() error {
			select {
			case <-d.service.StopRequested():
			case <-runCtx.Done():
			}
			return nil
		}, func(err error) {
			stop()
		})
	}

	d.lifecycle.advance(StateRunning)
	err := g.Run()

	d.lifecycle.advance(StateStopping)
	d.shutdown()
	d.lifecycle.advance(StateStopped)
	return err
}

// shutdown runs after all actors returned, so no device write is in flight
func (d *Daemon) shutdown() {
	ui.Info("Closing controllers...")
	d.transport.CloseAll()

	if d.dbusServer != nil {
		d.dbusServer.EmitStopped()
		if err := d.dbusServer.Close(); err != nil {
			ui.Warning("Error closing bus connection: %v", err)
		}
	}
}

// RunDaemon runs the daemon on the real hardware until it is stopped.
func RunDaemon(config *configuration.Configuration, configPath string, version string) {
	if err := device.InitHid(); err != nil {
		ui.FatalWithoutStacktrace("Cannot initialize hidapi: %v", err)
	}
	defer func() {
		if err := device.ExitHid(); err != nil {
			ui.Warning("Error finalizing hidapi: %v", err)
		}
	}()

	d := NewDaemon(config, configPath, version, device.OpenHid, sensors.NewBackend())
	d.watchConfig = true
	if err := d.Start(); err != nil {
		ui.FatalWithoutStacktrace("Cannot start daemon: %v", err)
	}
	if config.Statistics.Enabled {
		d.RegisterCollectors()
	}

	if err := d.Run(context.Background()); err != nil {
		ui.Error("Daemon stopped with error: %v", err)
		os.Exit(1)
	}
	ui.Info("Done.")
}
