package controlplane

import (
	"errors"
	"fmt"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/curves"
	"github.com/At1ass/tt-riingd/internal/device"
	"github.com/At1ass/tt-riingd/internal/sensors"
	"github.com/At1ass/tt-riingd/internal/state"
	"github.com/At1ass/tt-riingd/internal/ui"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	ErrShuttingDown      = errors.New("daemon is shutting down")
	ErrUnknownController = errors.New("unknown controller")
)

// ControllerStatus is the connection state and fan telemetry of a controller.
type ControllerStatus struct {
	Number    int                       `json:"number"`
	Id        string                    `json:"id"`
	Connected bool                      `json:"connected"`
	Degraded  bool                      `json:"degraded"`
	Error     string                    `json:"error,omitempty"`
	Fans      []device.ChannelTelemetry `json:"fans"`
}

// ReloadResult describes what a config reload changed in the running daemon.
type ReloadResult struct {
	Applied         []string `json:"applied"`
	RestartRequired bool     `json:"restartRequired"`
	RestartSections []string `json:"restartSections"`
}

func (r ReloadResult) String() string {
	var parts []string
	if len(r.Applied) > 0 {
		parts = append(parts, fmt.Sprintf("updated curves: %s", strings.Join(r.Applied, ", ")))
	}
	if r.RestartRequired {
		parts = append(parts, fmt.Sprintf("restart required for: %s", strings.Join(r.RestartSections, ", ")))
	}
	if len(parts) <= 0 {
		return "no changes"
	}
	return strings.Join(parts, "; ")
}

// Service implements the control plane operations independent of the transport
// they are exposed on. All state access goes through the per-fan operations of the store.
type Service struct {
	version    string
	configPath string
	store      *state.Store
	readings   *sensors.Readings
	transport  *device.Transport

	// baseline is the topology the daemon was started with, overrides
	// are the curve definitions applied by later reloads
	reloadMu  sync.Mutex
	baseline  *configuration.Configuration
	overrides map[string]configuration.CurveConfig

	stopping      atomic.Bool
	stopOnce      sync.Once
	stopRequested chan struct{}
}

func NewService(
	version string,
	config *configuration.Configuration,
	configPath string,
	store *state.Store,
	readings *sensors.Readings,
	transport *device.Transport,
) *Service {
	return &Service{
		version:       version,
		configPath:    configPath,
		store:         store,
		readings:      readings,
		transport:     transport,
		baseline:      config,
		overrides:     map[string]configuration.CurveConfig{},
		stopRequested: make(chan struct{}),
	}
}

func (s *Service) Version() string {
	return s.version
}

// StopRequested is closed once shutdown begins, either through Stop or Shutdown.
func (s *Service) StopRequested() <-chan struct{} {
	return s.stopRequested
}

func (s *Service) Stopping() bool {
	return s.stopping.Load()
}

// Shutdown refuses all further requests and triggers the shutdown of the daemon.
// It is idempotent.
func (s *Service) Shutdown() {
	s.stopOnce.Do(func() {
		s.stopping.Store(true)
		close(s.stopRequested)
	})
}

// Stop is the control plane request to shut down the daemon.
func (s *Service) Stop() error {
	if s.stopping.Load() {
		return ErrShuttingDown
	}
	ui.Info("Shutdown requested over the control plane")
	s.Shutdown()
	return nil
}

func (s *Service) GetActiveCurve(controller uint8, fan uint8) (string, error) {
	if s.stopping.Load() {
		return "", ErrShuttingDown
	}
	name, _, err := s.store.GetActive(state.FanKey{Controller: controller, Fan: fan})
	return name, err
}

func (s *Service) SwitchActiveCurve(controller uint8, fan uint8, name string) error {
	if s.stopping.Load() {
		return ErrShuttingDown
	}
	key := state.FanKey{Controller: controller, Fan: fan}
	if err := s.store.SetActive(key, name); err != nil {
		return err
	}
	ui.Info("Fan %s switched to curve %s", key, name)
	return nil
}

// UpdateCurveData replaces the definition of one of the fan's curves,
// it does not activate the curve.
func (s *Service) UpdateCurveData(controller uint8, fan uint8, name string, curveJson string) error {
	if s.stopping.Load() {
		return ErrShuttingDown
	}
	curve, err := curves.Parse(curveJson)
	if err != nil {
		return err
	}
	key := state.FanKey{Controller: controller, Fan: fan}
	if err := s.store.UpdateCurveData(key, name, curve); err != nil {
		return err
	}
	ui.Info("Curve %s of fan %s updated", name, key)
	return nil
}

// Fans returns the runtime state of all fans.
func (s *Service) Fans() ([]state.FanSnapshot, error) {
	if s.stopping.Load() {
		return nil, ErrShuttingDown
	}
	return s.store.Snapshot(), nil
}

// Fan returns the runtime state of one fan.
func (s *Service) Fan(controller uint8, fan uint8) (state.FanSnapshot, error) {
	if s.stopping.Load() {
		return state.FanSnapshot{}, ErrShuttingDown
	}
	return s.store.Fan(state.FanKey{Controller: controller, Fan: fan})
}

// Curves returns the curve set of one fan.
func (s *Service) Curves(controller uint8, fan uint8) (map[string]curves.Curve, error) {
	if s.stopping.Load() {
		return nil, ErrShuttingDown
	}
	return s.store.Curves(state.FanKey{Controller: controller, Fan: fan})
}

// GetTemperatures returns the last successful reading of every sensor.
func (s *Service) GetTemperatures() (map[string]float64, error) {
	if s.stopping.Load() {
		return nil, ErrShuttingDown
	}
	return s.readings.All(), nil
}

func (s *Service) GetFirmwareVersion(controller uint8) (string, error) {
	if s.stopping.Load() {
		return "", ErrShuttingDown
	}
	c, ok := s.transport.Controller(int(controller))
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownController, controller)
	}
	return c.FirmwareVersion()
}

func (s *Service) Controllers() ([]ControllerStatus, error) {
	if s.stopping.Load() {
		return nil, ErrShuttingDown
	}
	var result []ControllerStatus
	for _, c := range s.transport.Controllers() {
		status := ControllerStatus{
			Number:    c.Number,
			Id:        c.Id,
			Connected: c.Connected(),
			Degraded:  c.Degraded(),
			Fans:      c.Telemetry(),
		}
		if err := c.LastError(); err != nil {
			status.Error = err.Error()
		}
		result = append(result, status)
	}
	return result, nil
}

// ReloadConfig re-reads and validates the config file and applies what can be applied live.
func (s *Service) ReloadConfig() (ReloadResult, error) {
	if s.stopping.Load() {
		return ReloadResult{}, ErrShuttingDown
	}
	if s.configPath == "" {
		return ReloadResult{}, &configuration.ConfigError{Section: "config", Reason: "daemon was started without a config file"}
	}

	updated, err := configuration.ParseConfigFile(s.configPath)
	if err != nil {
		return ReloadResult{}, err
	}
	if err := configuration.Validate(updated, s.configPath); err != nil {
		return ReloadResult{}, err
	}
	return s.ApplyConfig(updated)
}

// ApplyConfig pushes changed curve parameters into the store, changes to any
// other section are only reported since they need a restart.
func (s *Service) ApplyConfig(updated *configuration.Configuration) (ReloadResult, error) {
	if s.stopping.Load() {
		return ReloadResult{}, ErrShuttingDown
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	changes := configuration.Diff(s.running(), updated)
	if changes.IsEmpty() {
		ui.Debug("Reloaded config has no relevant changes")
		return ReloadResult{}, nil
	}
	result := ReloadResult{
		RestartRequired: changes.RequiresRestart(),
		RestartSections: changes.RestartSections(),
	}

	var errs []error
	for _, id := range changes.Curves {
		curveConfig, _ := updated.FindCurve(id)
		curve, err := curveConfig.ToCurve()
		if err != nil {
			errs = append(errs, err)
			continue
		}

		failed := false
		for _, target := range s.baseline.FansWithCurve(id) {
			key := state.FanKey{Controller: uint8(target.Controller), Fan: uint8(target.FanIdx)}
			if err := s.store.UpdateCurveData(key, id, curve); err != nil {
				errs = append(errs, fmt.Errorf("fan %s: %w", key, err))
				failed = true
			}
		}
		if failed {
			continue
		}

		s.overrides[id] = *curveConfig
		result.Applied = append(result.Applied, id)
	}

	if len(result.Applied) > 0 {
		ui.Info("Applied changed curves: %s", strings.Join(result.Applied, ", "))
	}
	if result.RestartRequired {
		ui.Warning("Config changes in %s need a restart to take effect", strings.Join(result.RestartSections, ", "))
	}

	return result, errors.Join(errs...)
}

// running is the topology the current runtime state corresponds to. Must be called with reloadMu held.
func (s *Service) running() *configuration.Configuration {
	current := *s.baseline
	current.Curves = make([]configuration.CurveConfig, len(s.baseline.Curves))
	for i, curve := range s.baseline.Curves {
		if override, ok := s.overrides[curve.Id]; ok {
			curve = override
		}
		current.Curves[i] = curve
	}
	return &current
}
