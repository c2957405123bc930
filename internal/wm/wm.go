package wm

import (
	"fmt"
	"time"
	"unsafe"

	"notid/internal/banner"
	"notid/internal/config"
	"notid/internal/errs"
	"notid/internal/idle"
	"notid/internal/layout"
	"notid/internal/logging"
	"notid/internal/notification"
	"notid/internal/wlshell"
)

// Linux input event codes for the three pointer buttons the daemon reacts
// to.
const (
	btnLeft   = 272
	btnMiddle = 274
	btnRight  = 273
)

type buttonEvent struct {
	button  uint32
	surface unsafe.Pointer // surface under the pointer when pressed
}

// WindowManager owns the Wayland connection and every banner's surface,
// translating renderer requests and compositor events into banner
// lifecycle changes. It lives entirely on the renderer thread.
type WindowManager struct {
	display *wlshell.Display
	ext     *wlshell.ExtRegistry

	compositor *wlshell.Compositor
	shm        *wlshell.Shm
	shell      *wlshell.LayerShell
	seat       *wlshell.Seat
	idle       *idle.Notifier

	stack    *Stack
	surfaces map[uint32]*surface

	// deferred holds notifications that arrived while the user was idle,
	// released in arrival order on resume.
	deferred []notification.Notification

	events []BackendMessage

	hovered unsafe.Pointer
	clicks  []buttonEvent

	shapers banner.Shapers
	cache   *layout.Cache
}

// Init connects to the compositor and binds every global the manager
// needs. It fails fatally when the compositor lacks layer-shell, since the
// daemon cannot place a single banner without it.
func Init(cfg *config.Config, shapers banner.Shapers, cache *layout.Cache) (*WindowManager, error) {
	display, err := wlshell.Connect()
	if err != nil {
		return nil, fmt.Errorf("%w: wayland connect: %v", errs.ErrFatal, err)
	}

	m := &WindowManager{
		display:  display,
		stack:    NewStack(cfg.General.Sorting),
		surfaces: make(map[uint32]*surface),
		idle:     idle.New(cfg.General.IdleThreshold),
		shapers:  shapers,
		cache:    cache,
	}

	reg := display.Registry()
	reg.OnGlobal = func(name uint32, iface string, version uint32) {
		switch iface {
		case "wl_compositor":
			m.compositor = reg.BindCompositor(name, version)
		case "wl_shm":
			m.shm = reg.BindShm(name, version)
		}
	}

	m.ext = wlshell.NewExtRegistry(display)
	m.ext.OnGlobal = func(name uint32, iface string, version uint32) {
		switch iface {
		case "zwlr_layer_shell_v1":
			m.shell = m.ext.BindLayerShell(name, version)
		case "wl_seat":
			m.seat = m.ext.BindSeat(name, version)
			m.bindPointer()
			m.idle.BindSeat(m.seat)
		case "ext_idle_notifier_v1":
			m.idle.BindNotifier(m.ext.BindIdleNotifier(name, version))
		}
	}

	if _, err := display.Roundtrip(); err != nil {
		display.Disconnect()
		return nil, fmt.Errorf("%w: wayland roundtrip: %v", errs.ErrFatal, err)
	}

	if m.compositor == nil || m.shm == nil {
		display.Disconnect()
		return nil, fmt.Errorf("%w: compositor is missing wl_compositor or wl_shm", errs.ErrFatal)
	}
	if m.shell == nil {
		display.Disconnect()
		return nil, fmt.Errorf("%w: compositor does not support zwlr_layer_shell_v1", errs.ErrFatal)
	}

	logging.Debugf("wm: initialized (seat=%v, idle=%v)", m.seat != nil, cfg.General.IdleThreshold)
	return m, nil
}

func (m *WindowManager) bindPointer() {
	m.seat.OnPointerEnter = func(surf unsafe.Pointer, _, _ float64) {
		m.hovered = surf
		if b := m.bannerAt(surf); b != nil {
			b.ResetTimeout()
		}
	}
	m.seat.OnPointerLeave = func(unsafe.Pointer) {
		m.hovered = nil
	}
	m.seat.OnPointerButton = func(button uint32, pressed bool) {
		if !pressed || m.hovered == nil {
			return
		}
		m.clicks = append(m.clicks, buttonEvent{button: button, surface: m.hovered})
	}
}

func (m *WindowManager) bannerAt(surf unsafe.Pointer) *banner.Banner {
	for id, s := range m.surfaces {
		if s.wl != nil && s.wl.Handle() == surf {
			b, _ := m.stack.ByID(id)
			return b
		}
	}
	return nil
}

// CreateNotifications shows each incoming notification: a same-id arrival
// replaces the existing banner in place, a fresh id gets a new surface at
// its sort-ordered position. While the user is idle, arrivals are deferred
// instead. Overflow past cfg's limit closes the oldest banners as Expired.
func (m *WindowManager) CreateNotifications(ns []notification.Notification, cfg *config.Config) {
	if m.idle.IsIdled() {
		m.deferred = append(m.deferred, ns...)
		logging.Debugf("wm: deferred %d notification(s) while idle", len(ns))
		return
	}

	m.stack.SetSorting(cfg.General.Sorting)

	for _, n := range ns {
		b, replaced := m.stack.Put(n)
		if replaced {
			if err := m.redraw(b, cfg); err != nil {
				m.stack.Remove(n.ID)
				m.destroyBanner(n.ID)
				m.surrender(n.ID, err)
			}
			continue
		}

		s, err := newSurface(m.compositor, m.shell, m.shm, cfg.General.Width, cfg.General.Height)
		if err != nil {
			m.stack.Remove(n.ID)
			m.surrender(n.ID, err)
			continue
		}
		m.surfaces[n.ID] = s

		if err := m.redraw(b, cfg); err != nil {
			m.destroyBanner(n.ID)
			m.surrender(n.ID, err)
			continue
		}
		b.MarkLive()
	}

	for _, id := range m.stack.Overflow(cfg.General.Limit) {
		m.closeWithReason(id, ReasonExpired)
	}
	m.reposition(cfg)
}

// redraw compiles and paints b, then presents the result on its surface.
func (m *WindowManager) redraw(b *banner.Banner, cfg *config.Config) error {
	if err := b.Draw(cfg, m.shapers, m.cache); err != nil {
		return err
	}
	s, ok := m.surfaces[b.Notification().ID]
	if !ok {
		return fmt.Errorf("wm: banner %d has no surface", b.Notification().ID)
	}
	return s.present(b.Framebuffer())
}

// surrender drops an unrenderable notification, reporting it closed with
// reason Other so the bus side can tell the sender.
func (m *WindowManager) surrender(id uint32, err error) {
	logging.Warnf("wm: %v", &errs.UnrenderedError{ID: id, Err: err})
	m.events = append(m.events, BackendMessage{ID: id, Reason: ReasonOther})
}

// reposition recomputes every surface's margin from its stack position:
// offset plus the heights of all banners nearer the anchor plus the
// per-slot gap.
func (m *WindowManager) reposition(cfg *config.Config) {
	offset := 0
	for i, b := range m.stack.Banners() {
		s, ok := m.surfaces[b.Notification().ID]
		if !ok {
			continue
		}
		s.place(cfg, offset+i*cfg.General.Gap)
		offset += s.height
	}
}

// CloseNotifications destroys the surfaces for every id present, reporting
// reason CallCloseNotification. Unknown ids are a no-op (idempotent
// close), but the bus side has already emitted the signal.
func (m *WindowManager) CloseNotifications(ids []uint32, cfg *config.Config) {
	for _, id := range ids {
		if b, _ := m.stack.ByID(id); b == nil {
			continue
		}
		m.closeWithReason(id, ReasonCallCloseNotification)
	}
	m.reposition(cfg)
}

// RemoveExpired destroys every banner whose effective timeout has passed.
func (m *WindowManager) RemoveExpired(cfg *config.Config) {
	now := time.Now()
	var expired []uint32
	for _, b := range m.stack.Banners() {
		if b.IsExpired(now, cfg.General.DefaultTimeout) {
			expired = append(expired, b.Notification().ID)
		}
	}
	for _, id := range expired {
		m.closeWithReason(id, ReasonExpired)
	}
	if len(expired) > 0 {
		m.reposition(cfg)
	}
}

func (m *WindowManager) closeWithReason(id uint32, reason ClosingReason) {
	b := m.stack.Remove(id)
	if b == nil {
		return
	}
	switch reason {
	case ReasonExpired:
		b.MarkExpired()
	case ReasonDismissedByUser:
		b.Dismiss()
	default:
		b.Close()
	}
	m.destroyBanner(id)
	m.events = append(m.events, BackendMessage{ID: id, Reason: reason})
	logging.Debugf("wm: closed banner %d (%s)", id, reason)
}

func (m *WindowManager) destroyBanner(id uint32) {
	if s, ok := m.surfaces[id]; ok {
		s.Destroy()
		delete(m.surfaces, id)
	}
}

// HandleActions drains the queued pointer clicks: left-click invokes the
// banner's default action (when present) and dismisses; right-click
// dismisses; middle-click is reserved and does nothing.
func (m *WindowManager) HandleActions(cfg *config.Config) {
	clicks := m.clicks
	m.clicks = nil

	for _, click := range clicks {
		b := m.bannerAt(click.surface)
		if b == nil {
			continue
		}
		id := b.Notification().ID

		switch click.button {
		case btnLeft:
			if action, ok := b.Notification().DefaultAction(); ok {
				m.events = append(m.events, BackendMessage{ID: id, ActionKey: action.Key})
			}
			m.closeWithReason(id, ReasonDismissedByUser)
		case btnRight:
			m.closeWithReason(id, ReasonDismissedByUser)
		case btnMiddle:
		}
	}

	if len(clicks) > 0 {
		m.reposition(cfg)
	}
}

// Dispatch pumps the Wayland event queue, releases banners deferred during
// an idle period once activity resumes, reaps surfaces the compositor
// dismissed out from under the daemon, and redraws any banner whose layout
// or data changed since its last draw.
func (m *WindowManager) Dispatch(cfg *config.Config) error {
	if _, err := dispatchQueue(m.display); err != nil {
		return err
	}

	for id, s := range m.surfaces {
		if s.closedByComp {
			m.closeWithReason(id, ReasonDismissedByUser)
		}
	}

	if m.idle.ConsumeResumed() {
		released := m.deferred
		m.deferred = nil
		if len(released) > 0 {
			logging.Debugf("wm: releasing %d deferred notification(s)", len(released))
			m.CreateNotifications(released, cfg)
		}
	}

	m.redrawDirty(cfg)
	return nil
}

// redrawDirty reloads any layout file edited since the last tick, marks
// the banners rendering with it, and repaints every dirty banner. Idle
// suppresses the repaints the same way it defers creation.
func (m *WindowManager) redrawDirty(cfg *config.Config) {
	if m.cache != nil {
		m.cache.Update()
		for _, path := range m.cache.TakeChanged() {
			for _, b := range m.stack.Banners() {
				if cfg.DisplayByApp(b.Notification().AppName).Layout.Path == path {
					b.MarkDirty()
				}
			}
		}
	}
	if m.idle.IsIdled() {
		return
	}

	dirty := make([]*banner.Banner, 0, m.stack.Len())
	for _, b := range m.stack.Banners() {
		if b.IsDirty() {
			dirty = append(dirty, b)
		}
	}

	closed := false
	for _, b := range dirty {
		if err := m.redraw(b, cfg); err != nil {
			logging.Warnf("wm: %v", &errs.UnrenderedError{ID: b.Notification().ID, Err: err})
			m.closeWithReason(b.Notification().ID, ReasonOther)
			closed = true
		}
	}
	if closed {
		m.reposition(cfg)
	}
}

// UpdateByConfig re-applies a hot-reloaded configuration: layout and theme
// changes re-render every live banner, geometry changes re-anchor them,
// and a changed surface size reallocates the shm backing. No banner is
// closed by a config change.
func (m *WindowManager) UpdateByConfig(cfg *config.Config) {
	m.idle.Recreate(cfg)
	m.stack.SetSorting(cfg.General.Sorting)

	for _, b := range m.stack.Banners() {
		id := b.Notification().ID
		s, ok := m.surfaces[id]
		if !ok {
			continue
		}
		if s.width != cfg.General.Width || s.height != cfg.General.Height {
			s.Destroy()
			ns, err := newSurface(m.compositor, m.shell, m.shm, cfg.General.Width, cfg.General.Height)
			if err != nil {
				m.surrender(id, err)
				m.stack.Remove(id)
				delete(m.surfaces, id)
				continue
			}
			m.surfaces[id] = ns
		}
		if err := m.redraw(b, cfg); err != nil {
			logging.Warnf("wm: %v", &errs.UnrenderedError{ID: id, Err: err})
			m.closeWithReason(id, ReasonOther)
		}
	}
	m.reposition(cfg)
}

// PopEvent drains one outbound message for the renderer loop to forward,
// reporting false when none remain.
func (m *WindowManager) PopEvent() (BackendMessage, bool) {
	if len(m.events) == 0 {
		return BackendMessage{}, false
	}
	ev := m.events[0]
	m.events = m.events[1:]
	return ev, true
}

// SetShapers swaps the text shapers after a font config change.
func (m *WindowManager) SetShapers(shapers banner.Shapers) {
	m.shapers = shapers
}

// Destroy tears down every surface and the connection itself.
func (m *WindowManager) Destroy() {
	for id := range m.surfaces {
		m.destroyBanner(id)
	}
	m.idle.Destroy()
	if m.seat != nil {
		m.seat.Destroy()
	}
	if m.shell != nil {
		m.shell.Destroy()
	}
	m.ext.Destroy()
	m.display.Disconnect()
}
