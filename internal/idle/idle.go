// Package idle gates banner creation on the compositor's
// ext-idle-notify-v1 protocol: while the user is idle past the configured
// threshold, new banners are deferred and redraws stop until activity
// resumes.
package idle

import (
	"notid/internal/config"
	"notid/internal/logging"
	"notid/internal/wlshell"
)

// State is the last idle transition the compositor reported.
type State int

const (
	// None means no transition has been seen since (re)subscription.
	None State = iota
	Idled
	Resumed
)

// Notifier owns the ext_idle_notification_v1 subscription. The seat and
// notifier globals are handed in by the window manager as the registry
// advertises them; until both are present the gate stays open.
type Notifier struct {
	seat     *wlshell.Seat
	notifier *wlshell.IdleNotifier
	sub      *wlshell.IdleNotification

	threshold uint32
	state     State
	wasIdled  bool
}

// New returns a Notifier with no subscription; threshold comes from the
// current config and 0 disables idle detection entirely.
func New(threshold uint32) *Notifier {
	return &Notifier{threshold: threshold}
}

// BindSeat hands the notifier the wl_seat it subscribes against.
func (n *Notifier) BindSeat(seat *wlshell.Seat) {
	n.seat = seat
	n.subscribe()
}

// BindNotifier hands the notifier the ext_idle_notifier_v1 global.
func (n *Notifier) BindNotifier(notifier *wlshell.IdleNotifier) {
	n.notifier = notifier
	n.subscribe()
}

func (n *Notifier) subscribe() {
	if n.sub != nil || n.notifier == nil || n.seat == nil || n.threshold == 0 {
		return
	}
	sub := n.notifier.GetIdleNotification(n.threshold, n.seat)
	sub.OnIdled = func() {
		n.state = Idled
		n.wasIdled = true
		logging.Debugf("idle: idled past %dms", n.threshold)
	}
	sub.OnResumed = func() {
		n.state = Resumed
		logging.Debugf("idle: resumed")
	}
	n.sub = sub
}

// Recreate destroys any active subscription, re-reads the threshold from
// cfg, and re-subscribes iff the threshold is non-zero and a seat is
// bound. Called on config hot-reload.
func (n *Notifier) Recreate(cfg *config.Config) {
	n.threshold = cfg.General.IdleThreshold

	if n.sub != nil {
		n.sub.Destroy()
		n.sub = nil
		n.state = None
		n.wasIdled = false
	}
	n.subscribe()
}

// State reports the last transition seen.
func (n *Notifier) State() State { return n.state }

// IsIdled reports whether banner creation should currently be deferred.
func (n *Notifier) IsIdled() bool { return n.state == Idled }

// WasIdled reports the latched flag: true once an idle period has occurred
// since the subscription was (re)created.
func (n *Notifier) WasIdled() bool { return n.wasIdled }

// ConsumeResumed reports whether an idle period just ended, and resets the
// transition so deferred banners are released exactly once.
func (n *Notifier) ConsumeResumed() bool {
	if n.state != Resumed || !n.wasIdled {
		return false
	}
	n.state = None
	n.wasIdled = false
	return true
}

// Destroy drops the subscription; the seat and notifier globals belong to
// the window manager and are not destroyed here.
func (n *Notifier) Destroy() {
	if n.sub != nil {
		n.sub.Destroy()
		n.sub = nil
	}
}
