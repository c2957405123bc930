// Package wlshell provides the subset of libwayland client bindings the
// window manager needs: display/registry/compositor/shm/surface object
// lifecycle and the dispatch-pending/flush/prepare-read/read-events
// primitives the window manager's event pump is built on, plus a
// hand-written cgo extension for the layer-shell and idle-notify
// protocols (layershell.go, idlenotify.go).
//
// The core object lifecycle is honnef.co/go/libwayland used wholesale, not
// reimplemented: Display, Registry, Compositor, Shm, Surface, and the
// DispatchPending/Flush/PrepareRead/ReadEvents primitives are that
// package's own types, aliased here so the rest of notid imports one
// package. That package's own doc comment says "no thought has been given
// to ... supporting arbitrary user-supplied protocol extensions" and ships
// a go:generate hook for exactly this; layershell.go and idlenotify.go are
// that extension, reaching the same C wl_display through Display.Handle()
// (the one seam the upstream package exports for this purpose) to drive
// their own cgo-bound proxies for requests upstream never declared.
package wlshell

import (
	wayland "honnef.co/go/libwayland"
)

// Display is honnef.co/go/libwayland's connection handle, re-exported so
// internal/wm and internal/idle depend on one package for the whole
// Wayland surface.
type Display = wayland.Display

// Connect opens the default Wayland display (honouring WAYLAND_DISPLAY).
func Connect() (*Display, error) {
	return wayland.Connect()
}

type (
	Registry   = wayland.Registry
	Compositor = wayland.Compositor
	Shm        = wayland.Shm
	ShmPool    = wayland.ShmPool
	Surface    = wayland.Surface
	Buffer     = wayland.Buffer
	ShmFormat  = wayland.ShmFormat
)

// ShmFormatArgb8888 is the only pixel format notid asks for: it matches
// internal/color.BGRA's in-memory byte order on every little-endian target
// Wayland runs on.
const ShmFormatArgb8888 = wayland.ShmFormatArgb8888
