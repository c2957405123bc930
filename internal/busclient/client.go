// Package busclient is the small client library behind the command-line
// sender: a synchronous wrapper over the org.freedesktop.Notifications
// methods.
package busclient

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName = "org.freedesktop.Notifications"
	busPath = dbus.ObjectPath("/org/freedesktop/Notifications")
)

// Client holds one session-bus connection to the notification daemon.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Connect opens the session bus and resolves the notification object.
func Connect() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("busclient: session bus connect: %w", err)
	}
	return &Client{conn: conn, obj: conn.Object(busName, busPath)}, nil
}

// Request is one Notify call's arguments in typed form.
type Request struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // flat key/label pairs, as on the wire
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // milliseconds; -1 default, 0 never
}

// Notify sends the request and returns the server-assigned id.
func (c *Client) Notify(req Request) (uint32, error) {
	hints := req.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}
	var id uint32
	err := c.obj.Call(busName+".Notify", 0,
		req.AppName, req.ReplacesID, req.AppIcon, req.Summary, req.Body,
		req.Actions, hints, req.ExpireTimeout,
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("busclient: Notify: %w", err)
	}
	return id, nil
}

// CloseNotification asks the daemon to close id.
func (c *Client) CloseNotification(id uint32) error {
	if call := c.obj.Call(busName+".CloseNotification", 0, id); call.Err != nil {
		return fmt.Errorf("busclient: CloseNotification: %w", call.Err)
	}
	return nil
}

// ServerInformation is the GetServerInformation reply.
type ServerInformation struct {
	Name, Vendor, Version, SpecVersion string
}

// GetServerInformation queries the daemon's identity.
func (c *Client) GetServerInformation() (ServerInformation, error) {
	var info ServerInformation
	err := c.obj.Call(busName+".GetServerInformation", 0).
		Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion)
	if err != nil {
		return ServerInformation{}, fmt.Errorf("busclient: GetServerInformation: %w", err)
	}
	return info, nil
}

// GetCapabilities queries the daemon's capability list.
func (c *Client) GetCapabilities() ([]string, error) {
	var caps []string
	if err := c.obj.Call(busName+".GetCapabilities", 0).Store(&caps); err != nil {
		return nil, fmt.Errorf("busclient: GetCapabilities: %w", err)
	}
	return caps, nil
}

// Close drops the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
