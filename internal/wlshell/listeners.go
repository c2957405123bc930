// Go side of the listener glue in notid-listeners.c: each proxy's user
// data is a runtime/cgo Handle to its Go wrapper, resolved back here and
// fanned out to the wrapper's On* callbacks. The //export functions run on
// the renderer thread, inside dispatch_pending, so no locking is needed
// beyond what the wrappers themselves do.
package wlshell

// #cgo pkg-config: wayland-client
// #include <wayland-client.h>
// #include "zwlr-layer-shell-unstable-v1-client-protocol.h"
// #include "ext-idle-notify-v1-client-protocol.h"
//
// int notid_add_registry_listener(struct wl_registry *registry, void *data);
// int notid_add_seat_listener(struct wl_seat *seat, void *data);
// int notid_add_pointer_listener(struct wl_pointer *pointer, void *data);
// int notid_add_layer_surface_listener(struct zwlr_layer_surface_v1 *surface, void *data);
// int notid_add_idle_notification_listener(struct ext_idle_notification_v1 *notification, void *data);
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

const seatCapabilityPointer = 1

func fixedToFloat(v C.wl_fixed_t) float64 {
	return float64(v) / 256.0
}

//export notidRegistryGlobal
func notidRegistryGlobal(data unsafe.Pointer, _ *C.struct_wl_registry, name C.uint32_t, iface *C.char, version C.uint32_t) {
	r := cgo.Handle(uintptr(data)).Value().(*ExtRegistry)
	if r.OnGlobal != nil {
		r.OnGlobal(uint32(name), C.GoString(iface), uint32(version))
	}
}

//export notidRegistryGlobalRemove
func notidRegistryGlobalRemove(data unsafe.Pointer, _ *C.struct_wl_registry, name C.uint32_t) {
	r := cgo.Handle(uintptr(data)).Value().(*ExtRegistry)
	if r.OnGlobalRemove != nil {
		r.OnGlobalRemove(uint32(name))
	}
}

//export notidSeatCapabilities
func notidSeatCapabilities(data unsafe.Pointer, _ *C.struct_wl_seat, capabilities C.uint32_t) {
	s := cgo.Handle(uintptr(data)).Value().(*Seat)
	hasPointer := capabilities&seatCapabilityPointer != 0
	switch {
	case hasPointer && s.pointer == nil:
		s.pointer = C.wl_seat_get_pointer(s.hnd)
		C.notid_add_pointer_listener(s.pointer, handlePointer(s.handle))
	case !hasPointer && s.pointer != nil:
		C.wl_pointer_release(s.pointer)
		s.pointer = nil
	}
}

//export notidPointerEnter
func notidPointerEnter(data unsafe.Pointer, _ *C.struct_wl_pointer, _ C.uint32_t, surface *C.struct_wl_surface, sx, sy C.wl_fixed_t) {
	s := cgo.Handle(uintptr(data)).Value().(*Seat)
	if s.OnPointerEnter != nil {
		s.OnPointerEnter(unsafe.Pointer(surface), fixedToFloat(sx), fixedToFloat(sy))
	}
}

//export notidPointerLeave
func notidPointerLeave(data unsafe.Pointer, _ *C.struct_wl_pointer, _ C.uint32_t, surface *C.struct_wl_surface) {
	s := cgo.Handle(uintptr(data)).Value().(*Seat)
	if s.OnPointerLeave != nil {
		s.OnPointerLeave(unsafe.Pointer(surface))
	}
}

//export notidPointerButton
func notidPointerButton(data unsafe.Pointer, _ *C.struct_wl_pointer, _, _ C.uint32_t, button, state C.uint32_t) {
	s := cgo.Handle(uintptr(data)).Value().(*Seat)
	if s.OnPointerButton != nil {
		s.OnPointerButton(uint32(button), state == 1)
	}
}

//export notidLayerConfigure
func notidLayerConfigure(data unsafe.Pointer, _ *C.struct_zwlr_layer_surface_v1, serial, width, height C.uint32_t) {
	s := cgo.Handle(uintptr(data)).Value().(*LayerSurface)
	if s.OnConfigure != nil {
		s.OnConfigure(uint32(serial), uint32(width), uint32(height))
	}
}

//export notidLayerClosed
func notidLayerClosed(data unsafe.Pointer, _ *C.struct_zwlr_layer_surface_v1) {
	s := cgo.Handle(uintptr(data)).Value().(*LayerSurface)
	if s.OnClosed != nil {
		s.OnClosed()
	}
}

//export notidIdleIdled
func notidIdleIdled(data unsafe.Pointer, _ *C.struct_ext_idle_notification_v1) {
	n := cgo.Handle(uintptr(data)).Value().(*IdleNotification)
	if n.OnIdled != nil {
		n.OnIdled()
	}
}

//export notidIdleResumed
func notidIdleResumed(data unsafe.Pointer, _ *C.struct_ext_idle_notification_v1) {
	n := cgo.Handle(uintptr(data)).Value().(*IdleNotification)
	if n.OnResumed != nil {
		n.OnResumed()
	}
}
