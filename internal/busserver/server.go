// Package busserver serves org.freedesktop.Notifications on the session
// bus: it accepts Notify/CloseNotification calls, forwards them as Actions
// to the renderer side, and re-emits the renderer's closures and action
// invocations as bus signals.
package busserver

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"

	"notid/internal/errs"
	"notid/internal/logging"
	"notid/internal/notification"
	"notid/internal/wm"
)

const (
	busName = "org.freedesktop.Notifications"
	busPath = dbus.ObjectPath("/org/freedesktop/Notifications")

	specVersion = "1.2"
)

// capabilities is the fixed capability set this server reports.
var capabilities = []string{
	"action-icons", "actions", "body", "body-hyperlinks", "body-images",
	"body-markup", "icon-multi", "icon-static", "persistence", "sound",
}

// uniqueID is the process-wide monotonic id counter; only the bus server
// increments it, and the first assigned id is 1.
var uniqueID atomic.Uint32

// NextID assigns a fresh notification id.
func NextID() uint32 {
	return uniqueID.Add(1)
}

// Sink receives each accepted request; the supervisor drains it and
// forwards over the renderer channel.
type Sink interface {
	Send(Action) error
}

// Server owns the bus connection and the exported notification object.
type Server struct {
	conn    *dbus.Conn
	sink    Sink
	name    string
	version string
}

// handler is the exported D-Bus object; split from Server so only the
// interface's methods are reachable over the bus.
type handler struct {
	srv *Server
}

// Init connects to the session bus, claims the well-known name, and
// exports the notification object. Losing the name to another daemon is
// fatal: two notification servers cannot coexist on one session.
func Init(sink Sink, name, version string) (*Server, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: session bus connect: %v", errs.ErrFatal, err)
	}

	srv := &Server{conn: conn, sink: sink, name: name, version: version}

	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: request %s: %v", errs.ErrFatal, busName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, fmt.Errorf("%w: %s is already owned by another notification daemon", errs.ErrFatal, busName)
	}

	h := &handler{srv: srv}
	if err := conn.Export(h, busPath, busName); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: export notification object: %v", errs.ErrFatal, err)
	}

	logging.Infof("busserver: serving %s", busName)
	return srv, nil
}

// EmitClosed emits NotificationClosed(id, reason).
func (s *Server) EmitClosed(id uint32, reason wm.ClosingReason) error {
	return s.conn.Emit(busPath, busName+".NotificationClosed", id, uint32(reason))
}

// EmitActionInvoked emits ActionInvoked(id, action_key).
func (s *Server) EmitActionInvoked(id uint32, actionKey string) error {
	return s.conn.Emit(busPath, busName+".ActionInvoked", id, actionKey)
}

// Close releases the bus name and drops the connection.
func (s *Server) Close() error {
	return s.conn.Close()
}

// Notify accepts one notification request and returns its assigned id:
// fresh when replaces_id is zero, replaces_id verbatim otherwise.
func (h *handler) Notify(appName string, replacesID uint32, appIcon, summary, body string, actions []string, hints map[string]dbus.Variant, expireTimeout int32) (uint32, *dbus.Error) {
	id := replacesID
	if id == 0 {
		id = NextID()
	}

	n := notification.New(
		id, appName, appIcon, summary, body,
		ParseActions(actions), ParseHints(hints),
		expireTimeout, time.Now().Unix(),
	)
	n.ReplacesID = replacesID

	logging.Debugf("busserver: Notify from %q assigned id %d", appName, id)
	if err := h.srv.sink.Send(Action{Kind: ActionShow, Notification: &n}); err != nil {
		return 0, dbus.MakeFailedError(err)
	}
	return id, nil
}

// CloseNotification emits the NotificationClosed signal first, then
// forwards the close, so clients observe the signal before the internal
// close completes.
func (h *handler) CloseNotification(id uint32) *dbus.Error {
	if err := h.srv.EmitClosed(id, wm.ReasonCallCloseNotification); err != nil {
		return dbus.MakeFailedError(err)
	}
	target := id
	if err := h.srv.sink.Send(Action{Kind: ActionClose, ID: &target}); err != nil {
		return dbus.MakeFailedError(err)
	}
	return nil
}

func (h *handler) GetServerInformation() (string, string, string, string, *dbus.Error) {
	return h.srv.name, "notid developers", h.srv.version, specVersion, nil
}

func (h *handler) GetCapabilities() ([]string, *dbus.Error) {
	return capabilities, nil
}
