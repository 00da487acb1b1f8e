package controlplane

import (
	"fmt"
	"github.com/godbus/dbus/v5"
)

// Client calls a running daemon over D-Bus.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

func NewClient(conn *dbus.Conn) *Client {
	return &Client{
		conn: conn,
		obj:  conn.Object(BusName, ObjectPath),
	}
}

// Dial connects a client to the daemon on the given bus.
func Dial(bus string) (*Client, error) {
	conn, err := ConnectBus(bus)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the %s bus: %w", bus, err)
	}
	return NewClient(conn), nil
}

func (c *Client) GetActiveCurve(controller uint8, fan uint8) (name string, err error) {
	err = c.obj.Call(Interface+".GetActiveCurve", 0, controller, fan).Store(&name)
	return name, err
}

func (c *Client) SwitchActiveCurve(controller uint8, fan uint8, name string) error {
	return c.obj.Call(Interface+".SwitchActiveCurve", 0, controller, fan, name).Err
}

func (c *Client) UpdateCurveData(controller uint8, fan uint8, name string, curveJson string) error {
	return c.obj.Call(Interface+".UpdateCurveData", 0, controller, fan, name, curveJson).Err
}

func (c *Client) GetTemperatures() (temperatures map[string]float64, err error) {
	err = c.obj.Call(Interface+".GetTemperatures", 0).Store(&temperatures)
	return temperatures, err
}

func (c *Client) GetFirmwareVersion(controller uint8) (version string, err error) {
	err = c.obj.Call(Interface+".GetFirmwareVersion", 0, controller).Store(&version)
	return version, err
}

func (c *Client) ReloadConfig() (result string, err error) {
	err = c.obj.Call(Interface+".ReloadConfig", 0).Store(&result)
	return result, err
}

func (c *Client) Stop() error {
	return c.obj.Call(Interface+".Stop", 0).Err
}

func (c *Client) Version() (string, error) {
	variant, err := c.obj.GetProperty(Interface + ".Version")
	if err != nil {
		return "", err
	}
	version, _ := variant.Value().(string)
	return version, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
