package controlplane

import (
	"errors"
	"fmt"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/curves"
	"github.com/At1ass/tt-riingd/internal/state"
	"github.com/At1ass/tt-riingd/internal/ui"
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	"sync"
)

const (
	BusName                    = "io.github.tt_riingd"
	ObjectPath dbus.ObjectPath = "/io/github/tt_riingd"
	Interface                  = "io.github.tt_riingd1"

	ErrorUnknownCurve      = Interface + ".Error.UnknownCurve"
	ErrorUnknownFan        = Interface + ".Error.UnknownFan"
	ErrorUnknownController = Interface + ".Error.UnknownController"
	ErrorValidation        = Interface + ".Error.ValidationError"
	ErrorShuttingDown      = Interface + ".Error.ShuttingDown"
	ErrorFailed            = Interface + ".Error.Failed"

	SignalStopped            = Interface + ".Stopped"
	SignalTemperatureChanged = Interface + ".TemperatureChanged"
)

// ConnectBus opens a private connection to the session or system bus.
func ConnectBus(bus string) (*dbus.Conn, error) {
	if bus == configuration.DbusSystemBus {
		return dbus.ConnectSystemBus()
	}
	return dbus.ConnectSessionBus()
}

// dbusHandler holds the exported methods, every exported method is a D-Bus method.
type dbusHandler struct {
	service *Service
}

func (h *dbusHandler) GetActiveCurve(controller byte, fan byte) (string, *dbus.Error) {
	name, err := h.service.GetActiveCurve(controller, fan)
	return name, toDbusError(err)
}

func (h *dbusHandler) SwitchActiveCurve(controller byte, fan byte, name string) *dbus.Error {
	return toDbusError(h.service.SwitchActiveCurve(controller, fan, name))
}

func (h *dbusHandler) UpdateCurveData(controller byte, fan byte, name string, curveJson string) *dbus.Error {
	return toDbusError(h.service.UpdateCurveData(controller, fan, name, curveJson))
}

func (h *dbusHandler) Stop() *dbus.Error {
	return toDbusError(h.service.Stop())
}

func (h *dbusHandler) GetTemperatures() (map[string]float64, *dbus.Error) {
	temps, err := h.service.GetTemperatures()
	return temps, toDbusError(err)
}

func (h *dbusHandler) GetFirmwareVersion(controller byte) (string, *dbus.Error) {
	version, err := h.service.GetFirmwareVersion(controller)
	return version, toDbusError(err)
}

func (h *dbusHandler) ReloadConfig() (string, *dbus.Error) {
	result, err := h.service.ReloadConfig()
	if err != nil {
		return "", toDbusError(err)
	}
	return result.String(), nil
}

func toDbusError(err error) *dbus.Error {
	if err == nil {
		return nil
	}

	name := ErrorFailed
	var validationErr *curves.ValidationError
	switch {
	case errors.Is(err, ErrShuttingDown):
		name = ErrorShuttingDown
	case errors.Is(err, state.ErrUnknownCurve):
		name = ErrorUnknownCurve
	case errors.Is(err, state.ErrUnknownFan):
		name = ErrorUnknownFan
	case errors.Is(err, ErrUnknownController):
		name = ErrorUnknownController
	case errors.As(err, &validationErr):
		name = ErrorValidation
	}
	return dbus.NewError(name, []interface{}{err.Error()})
}

// DbusServer exposes a Service on the bus.
type DbusServer struct {
	service *Service
	conn    *dbus.Conn

	stoppedOnce sync.Once
}

func NewDbusServer(service *Service, conn *dbus.Conn) *DbusServer {
	return &DbusServer{
		service: service,
		conn:    conn,
	}
}

// Start exports the object and claims the well known bus name.
func (s *DbusServer) Start() error {
	handler := &dbusHandler{service: s.service}
	if err := s.conn.Export(handler, ObjectPath, Interface); err != nil {
		return fmt.Errorf("cannot export control plane: %w", err)
	}

	props, err := prop.Export(s.conn, ObjectPath, prop.Map{
		Interface: {
			"Version": {
				Value:    s.service.Version(),
				Writable: false,
				Emit:     prop.EmitFalse,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("cannot export properties: %w", err)
	}

	node := introspectionNode(handler, props)
	if err := s.conn.Export(introspect.NewIntrospectable(node), ObjectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("cannot export introspection data: %w", err)
	}

	reply, err := s.conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("cannot request bus name %s: %w", BusName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s is already taken", BusName)
	}

	ui.Info("Control plane listening on %s %s", BusName, ObjectPath)
	return nil
}

func introspectionNode(handler *dbusHandler, props *prop.Properties) *introspect.Node {
	return &introspect.Node{
		Name: string(ObjectPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       Interface,
				Methods:    introspect.Methods(handler),
				Properties: props.Introspection(Interface),
				Signals: []introspect.Signal{
					{Name: "Stopped"},
					{
						Name: "TemperatureChanged",
						Args: []introspect.Arg{
							{Name: "temperatures", Type: "a{sd}"},
						},
					},
				},
			},
		},
	}
}

// EmitStopped signals the shutdown, only the first call emits.
func (s *DbusServer) EmitStopped() {
	s.stoppedOnce.Do(func() {
		if err := s.conn.Emit(ObjectPath, SignalStopped); err != nil {
			ui.Warning("Cannot emit Stopped signal: %v", err)
		}
	})
}

// EmitTemperatures signals the temperatures read in the last tick.
func (s *DbusServer) EmitTemperatures(temperatures map[string]float64) {
	if err := s.conn.Emit(ObjectPath, SignalTemperatureChanged, temperatures); err != nil {
		ui.Debug("Cannot emit TemperatureChanged signal: %v", err)
	}
}

// Close releases the bus name and the connection.
func (s *DbusServer) Close() error {
	if _, err := s.conn.ReleaseName(BusName); err != nil {
		ui.Debug("Cannot release bus name: %v", err)
	}
	return s.conn.Close()
}
