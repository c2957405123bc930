// ext_idle_notifier_v1 / ext_idle_notification_v1 binding backing
// internal/idle: a subscription against a wl_seat that fires idled and
// resumed transitions. Like layershell.go, the wayland-scanner-generated
// protocol header is vendored next to this file.
package wlshell

// #cgo pkg-config: wayland-client
// #include <wayland-client.h>
// #include "ext-idle-notify-v1-client-protocol.h"
//
// int notid_add_idle_notification_listener(struct ext_idle_notification_v1 *notification, void *data);
import "C"

import "runtime/cgo"

type IdleNotifier struct {
	hnd *C.struct_ext_idle_notifier_v1
}

func (r *ExtRegistry) BindIdleNotifier(name, version uint32) *IdleNotifier {
	return &IdleNotifier{hnd: (*C.struct_ext_idle_notifier_v1)(r.bind(name, &C.ext_idle_notifier_v1_interface, version))}
}

// GetIdleNotification subscribes to idle/resume transitions for seat after
// thresholdMs milliseconds of inactivity.
func (n *IdleNotifier) GetIdleNotification(thresholdMs uint32, seat *Seat) *IdleNotification {
	hnd := C.ext_idle_notifier_v1_get_idle_notification(n.hnd, C.uint32_t(thresholdMs), seat.hnd)
	sub := &IdleNotification{hnd: hnd}
	sub.handle = cgo.NewHandle(sub)
	C.notid_add_idle_notification_listener(hnd, handlePointer(sub.handle))
	return sub
}

func (n *IdleNotifier) Destroy() {
	C.ext_idle_notifier_v1_destroy(n.hnd)
}

// IdleNotification fires OnIdled once the configured threshold elapses
// without input and OnResumed on the next activity; internal/idle is the
// sole consumer of these callbacks.
type IdleNotification struct {
	hnd    *C.struct_ext_idle_notification_v1
	handle cgo.Handle

	OnIdled   func()
	OnResumed func()
}

func (in *IdleNotification) Destroy() {
	C.ext_idle_notification_v1_destroy(in.hnd)
	in.handle.Delete()
}
