// Layer-shell (zwlr_layer_shell_v1 / zwlr_layer_surface_v1) is the
// compositor protocol every banner surface is anchored through. This file
// is the minimal binding the window manager needs to create, anchor,
// size, and destroy one layer surface per banner, written the way
// upstream wayland.go binds xdg-shell: a thin proxy wrapper plus
// wayland-scanner-generated protocol headers
// (zwlr-layer-shell-unstable-v1-client-protocol.h) vendored next to this
// file and pulled in by the cgo preamble below.
package wlshell

// #cgo pkg-config: wayland-client
// #include <stdlib.h>
// #include <wayland-client.h>
// #include "zwlr-layer-shell-unstable-v1-client-protocol.h"
//
// int notid_add_layer_surface_listener(struct zwlr_layer_surface_v1 *surface, void *data);
import "C"

import "runtime/cgo"

// Anchor bits match zwlr_layer_surface_v1's anchor enum exactly (top=1,
// bottom=2, left=4, right=8); config.Anchor is translated to a combination
// of these by internal/wm.
type Anchor uint32

const (
	AnchorTop    Anchor = 1
	AnchorBottom Anchor = 2
	AnchorLeft   Anchor = 4
	AnchorRight  Anchor = 8
)

// Layer selects the stacking band; notification banners render above
// normal windows, matching every layer-shell-based notifier's convention.
type Layer uint32

const (
	LayerOverlay Layer = 3
)

type LayerShell struct {
	ext *ExtRegistry
	hnd *C.struct_zwlr_layer_shell_v1
}

// BindLayerShell binds the zwlr_layer_shell_v1 global advertised at name on
// r's registry.
func (r *ExtRegistry) BindLayerShell(name, version uint32) *LayerShell {
	return &LayerShell{ext: r, hnd: (*C.struct_zwlr_layer_shell_v1)(r.bind(name, &C.zwlr_layer_shell_v1_interface, version))}
}

// GetLayerSurface requests a layer_surface role for surface, identified to
// the compositor as namespace (the daemon's process name).
func (ls *LayerShell) GetLayerSurface(surface *Surface, layer Layer, namespace string) *LayerSurface {
	ns := C.CString(namespace)
	defer freeCString(ns)

	surfaceHnd := (*C.struct_wl_surface)(surface.Handle())
	hnd := C.zwlr_layer_shell_v1_get_layer_surface(ls.hnd, surfaceHnd, nil, C.uint32_t(layer), ns)
	s := &LayerSurface{hnd: hnd, surface: surface}
	s.handle = cgo.NewHandle(s)
	C.notid_add_layer_surface_listener(hnd, handlePointer(s.handle))
	return s
}

func (ls *LayerShell) Destroy() {
	C.zwlr_layer_shell_v1_destroy(ls.hnd)
}

// LayerSurface is one banner's anchored, sized surface. OnConfigure must
// ack_configure and then commit the underlying wl_surface with content
// sized to (width, height); OnClosed fires if the compositor dismisses the
// surface out from under the daemon (output removal, etc.) and is treated
// by internal/wm exactly like a user dismissal.
type LayerSurface struct {
	hnd     *C.struct_zwlr_layer_surface_v1
	surface *Surface
	handle  cgo.Handle

	OnConfigure func(serial uint32, width, height uint32)
	OnClosed    func()
}

func (s *LayerSurface) SetSize(width, height uint32) {
	C.zwlr_layer_surface_v1_set_size(s.hnd, C.uint32_t(width), C.uint32_t(height))
}

func (s *LayerSurface) SetAnchor(anchor Anchor) {
	C.zwlr_layer_surface_v1_set_anchor(s.hnd, C.uint32_t(anchor))
}

// SetMargin sets the per-edge offset from the anchored edge(s); only the
// margins on the anchored sides are honoured by the compositor.
func (s *LayerSurface) SetMargin(top, right, bottom, left int32) {
	C.zwlr_layer_surface_v1_set_margin(s.hnd, C.int32_t(top), C.int32_t(right), C.int32_t(bottom), C.int32_t(left))
}

// SetExclusiveZone is left at -1 (do not reserve output space) for every
// banner; notifications overlay content rather than pushing it aside.
func (s *LayerSurface) SetExclusiveZone(zone int32) {
	C.zwlr_layer_surface_v1_set_exclusive_zone(s.hnd, C.int32_t(zone))
}

func (s *LayerSurface) AckConfigure(serial uint32) {
	C.zwlr_layer_surface_v1_ack_configure(s.hnd, C.uint32_t(serial))
}

func (s *LayerSurface) Surface() *Surface { return s.surface }

func (s *LayerSurface) Destroy() {
	C.zwlr_layer_surface_v1_destroy(s.hnd)
	s.handle.Delete()
}
