// Package wm is the window manager: it owns the Wayland connection, the
// banner stack, and one layer-shell surface per banner, and turns
// compositor events plus renderer requests into banner lifecycle changes.
package wm

import "notid/internal/notification"

// ClosingReason is why a banner left the screen, mirrored verbatim onto the
// NotificationClosed bus signal. Values match the freedesktop spec.
type ClosingReason uint32

const (
	ReasonExpired               ClosingReason = 1
	ReasonDismissedByUser       ClosingReason = 2
	ReasonCallCloseNotification ClosingReason = 3
	ReasonOther                 ClosingReason = 4
)

func (r ClosingReason) String() string {
	switch r {
	case ReasonExpired:
		return "Expired"
	case ReasonDismissedByUser:
		return "DismissedByUser"
	case ReasonCallCloseNotification:
		return "CallCloseNotification"
	default:
		return "Other"
	}
}

// ServerMessage travels server → renderer over the unbounded channel.
type ServerMessage struct {
	Show  *notification.Notification // set for ShowNotification
	Close *uint32                    // set for CloseNotification
}

// ShowNotification wraps n for the renderer.
func ShowNotification(n notification.Notification) ServerMessage {
	return ServerMessage{Show: &n}
}

// CloseNotification asks the renderer to destroy the banner with this id.
func CloseNotification(id uint32) ServerMessage {
	return ServerMessage{Close: &id}
}

// BackendMessage travels renderer → server: either a closure to re-emit as
// NotificationClosed, or an invoked action to re-emit as ActionInvoked.
type BackendMessage struct {
	ID        uint32
	Reason    ClosingReason // valid when ActionKey is empty
	ActionKey string        // non-empty for ActionInvoked
}
