// ext.go is the seam between honnef.co/go/libwayland's Display (used
// wholesale for the core protocol) and the two extension protocols
// (layer-shell, idle-notify) and wl_seat binding that package doesn't
// cover. It opens a second wl_registry over the same connection — the
// upstream package exports Display.Handle() precisely so an extension can
// do this — and runs its own minimal proxy/listener bookkeeping for just
// the objects it binds: wl_seat, zwlr_layer_shell_v1,
// ext_idle_notifier_v1, and the surfaces/notifications they create.
package wlshell

// #cgo pkg-config: wayland-client
// #include <stdlib.h>
// #include <wayland-client.h>
// #include "zwlr-layer-shell-unstable-v1-client-protocol.h"
// #include "ext-idle-notify-v1-client-protocol.h"
//
// int notid_add_registry_listener(struct wl_registry *registry, void *data);
// int notid_add_seat_listener(struct wl_seat *seat, void *data);
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

// ExtRegistry lists globals for the extension protocols notid binds
// directly, parallel to wayland.Registry for the upstream-covered ones.
type ExtRegistry struct {
	dsp    *Display
	hnd    *C.struct_wl_registry
	handle cgo.Handle

	OnGlobal       func(name uint32, iface string, version uint32)
	OnGlobalRemove func(name uint32)
}

// NewExtRegistry issues a second wl_display_get_registry request over dsp's
// existing connection, so callers see the exact same set of globals the
// upstream Registry enumerates.
func NewExtRegistry(dsp *Display) *ExtRegistry {
	raw := (*C.struct_wl_display)(dsp.Handle())
	r := &ExtRegistry{
		dsp: dsp,
		hnd: C.wl_display_get_registry(raw),
	}
	r.handle = cgo.NewHandle(r)
	C.notid_add_registry_listener(r.hnd, handlePointer(r.handle))
	return r
}

func (r *ExtRegistry) bind(name uint32, iface *C.struct_wl_interface, version uint32) unsafe.Pointer {
	return unsafe.Pointer(C.wl_registry_bind(r.hnd, C.uint32_t(name), iface, C.uint32_t(version)))
}

func (r *ExtRegistry) Destroy() {
	C.wl_registry_destroy(r.hnd)
	r.handle.Delete()
}

// Seat is the minimal wl_seat binding notid needs: pointer enter/leave and
// button events drive the window manager's click/hover handling, and the
// seat object itself is handed to ext_idle_notifier_v1's
// get_idle_notification.
type Seat struct {
	hnd     *C.struct_wl_seat
	pointer *C.struct_wl_pointer
	handle  cgo.Handle

	OnPointerEnter  func(surface unsafe.Pointer, x, y float64)
	OnPointerLeave  func(surface unsafe.Pointer)
	OnPointerButton func(button uint32, pressed bool)
}

// BindSeat binds the wl_seat global. The bound version is capped at 7, the
// newest revision whose pointer events the listener table covers.
func (r *ExtRegistry) BindSeat(name, version uint32) *Seat {
	if version > 7 {
		version = 7
	}
	s := &Seat{hnd: (*C.struct_wl_seat)(r.bind(name, &C.wl_seat_interface, version))}
	s.handle = cgo.NewHandle(s)
	C.notid_add_seat_listener(s.hnd, handlePointer(s.handle))
	return s
}

func (s *Seat) Destroy() {
	if s.pointer != nil {
		C.wl_pointer_release(s.pointer)
		s.pointer = nil
	}
	C.wl_seat_destroy(s.hnd)
	s.handle.Delete()
}

// handlePointer smuggles a cgo.Handle through a listener's void *data.
func handlePointer(h cgo.Handle) unsafe.Pointer {
	return unsafe.Pointer(uintptr(h))
}

func freeCString(p *C.char) { C.free(unsafe.Pointer(p)) }
