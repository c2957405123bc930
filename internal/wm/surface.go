package wm

import (
	"fmt"

	"golang.org/x/sys/unix"

	"notid/internal/color"
	"notid/internal/config"
	"notid/internal/wlshell"
)

// surface bundles everything one on-screen banner owns on the compositor
// side: the wl_surface, its layer-shell role, and a single shm-backed
// pixel buffer the framebuffer is blitted into.
type surface struct {
	wl    *wlshell.Surface
	layer *wlshell.LayerSurface

	pool   *wlshell.ShmPool
	buffer *wlshell.Buffer
	fd     int
	data   []byte

	width, height int
	configured    bool
	closedByComp  bool
}

func newSurface(compositor *wlshell.Compositor, shell *wlshell.LayerShell, shm *wlshell.Shm, width, height int) (*surface, error) {
	wl := compositor.CreateSurface()
	layer := shell.GetLayerSurface(wl, wlshell.LayerOverlay, "notid")

	s := &surface{wl: wl, layer: layer, width: width, height: height, fd: -1}

	layer.OnConfigure = func(serial, _, _ uint32) {
		layer.AckConfigure(serial)
		s.configured = true
	}
	layer.OnClosed = func() {
		s.closedByComp = true
	}

	if err := s.allocate(shm); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

// allocate backs the surface with a sealed memfd large enough for one
// width*height ARGB8888 frame.
func (s *surface) allocate(shm *wlshell.Shm) error {
	size := s.width * s.height * 4

	fd, err := unix.MemfdCreate("notid-banner", unix.MFD_CLOEXEC)
	if err != nil {
		return fmt.Errorf("wm: memfd_create: %w", err)
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		unix.Close(fd)
		return fmt.Errorf("wm: ftruncate shm pool: %w", err)
	}
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return fmt.Errorf("wm: mmap shm pool: %w", err)
	}

	s.fd = fd
	s.data = data
	s.pool = shm.CreatePool(int32(fd), int32(size))
	s.buffer = s.pool.CreateBuffer(0, int32(s.width), int32(s.height), int32(s.width*4), wlshell.ShmFormatArgb8888)
	return nil
}

// anchorBits translates the config anchor to the layer-shell anchor mask.
func anchorBits(a config.Anchor) wlshell.Anchor {
	var bits wlshell.Anchor
	if a.IsTop() {
		bits |= wlshell.AnchorTop
	}
	if a.IsBottom() {
		bits |= wlshell.AnchorBottom
	}
	if a.IsLeft() {
		bits |= wlshell.AnchorLeft
	}
	if a.IsRight() {
		bits |= wlshell.AnchorRight
	}
	if bits == 0 {
		bits = wlshell.AnchorTop | wlshell.AnchorRight
	}
	return bits
}

// margins computes the per-edge offsets for a banner stackOffset pixels
// along the stack from the anchored edge: top anchors grow downward by
// pushing the top margin, bottom anchors grow upward by pushing the
// bottom margin.
func margins(g config.General, stackOffset int) (top, right, bottom, left int32) {
	top, right, bottom, left = int32(g.OffsetY), int32(g.OffsetX), int32(g.OffsetY), int32(g.OffsetX)
	if g.Anchor.IsTop() {
		top += int32(stackOffset)
	} else if g.Anchor.IsBottom() {
		bottom += int32(stackOffset)
	}
	return top, right, bottom, left
}

// place sizes and anchors the layer surface, with stackOffset the total
// main-axis distance (prior banner heights plus gaps) from the anchored
// edge.
func (s *surface) place(cfg *config.Config, stackOffset int) {
	s.layer.SetSize(uint32(s.width), uint32(s.height))
	s.layer.SetAnchor(anchorBits(cfg.General.Anchor))
	s.layer.SetExclusiveZone(-1)

	top, right, bottom, left := margins(cfg.General, stackOffset)
	s.layer.SetMargin(top, right, bottom, left)
	s.wl.Commit()
}

// present blits the banner's framebuffer into the shm buffer as
// premultiplied ARGB8888 and commits it to the compositor.
func (s *surface) present(fb *color.Buffer) error {
	if fb.W != s.width || fb.H != s.height {
		return fmt.Errorf("wm: framebuffer %dx%d does not match surface %dx%d", fb.W, fb.H, s.width, s.height)
	}

	for i, px := range fb.Pix {
		o := i * 4
		s.data[o+0] = channelByte(px.B)
		s.data[o+1] = channelByte(px.G)
		s.data[o+2] = channelByte(px.R)
		s.data[o+3] = channelByte(px.A)
	}

	s.wl.Attach(s.buffer)
	s.wl.Damage(0, 0, int32(s.width), int32(s.height))
	s.wl.Commit()
	return nil
}

func channelByte(v float32) byte {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return byte(v*255 + 0.5)
	}
}

// Destroy releases the compositor objects and the shm backing in reverse
// creation order; safe to call on a partially constructed surface.
func (s *surface) Destroy() {
	if s.buffer != nil {
		s.buffer.Destroy()
		s.buffer = nil
	}
	if s.pool != nil {
		s.pool.Destroy()
		s.pool = nil
	}
	if s.data != nil {
		unix.Munmap(s.data)
		s.data = nil
	}
	if s.fd >= 0 {
		unix.Close(s.fd)
		s.fd = -1
	}
	if s.layer != nil {
		s.layer.Destroy()
		s.layer = nil
	}
	if s.wl != nil {
		s.wl.Destroy()
		s.wl = nil
	}
}
