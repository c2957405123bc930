package renderer

import (
	"fmt"
	"time"

	"notid/internal/banner"
	"notid/internal/config"
	"notid/internal/errs"
	"notid/internal/layout"
	"notid/internal/logging"
	"notid/internal/notification"
	"notid/internal/scheduler"
	"notid/internal/sound"
	"notid/internal/store"
	"notid/internal/text"
	"notid/internal/wm"
)

// tick is the loop cadence, capping redraws at 50Hz.
const tick = 50 * time.Millisecond

// Renderer owns the synchronous half of the daemon. New builds it on the
// supervisor's goroutine; Run must then be called exactly once on a
// dedicated, locked OS thread, because the Wayland connection it opens is
// not shareable.
type Renderer struct {
	in  *Queue[wm.ServerMessage]
	out *Queue[wm.BackendMessage]

	configPath string
	cfg        config.Config
	watcher    *config.Watcher

	manager *wm.WindowManager
	sched   *scheduler.Scheduler
	cache   *layout.Cache
	history *store.Store
	shapers banner.Shapers
}

// New loads the configuration and the support services, returning the
// renderer plus the two channel ends the supervisor forwards through. A
// missing or unopenable history database is logged and skipped; it never
// stops the daemon.
func New(configPath string) (*Renderer, *Queue[wm.ServerMessage], *Queue[wm.BackendMessage], error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	cache, err := layout.NewCache()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("renderer: layout cache: %w", err)
	}

	r := &Renderer{
		in:         NewQueue[wm.ServerMessage](),
		out:        NewQueue[wm.BackendMessage](),
		configPath: configPath,
		cfg:        cfg,
		sched:      scheduler.New(),
		cache:      cache,
	}
	r.cache.Extend(layoutPaths(&cfg))

	if watcher, err := config.NewWatcher(configPath); err != nil {
		logging.Warnf("renderer: config watch disabled: %v", err)
	} else {
		r.watcher = watcher
	}

	if path, err := store.DefaultPath(); err != nil {
		logging.Warnf("renderer: history disabled: %v", err)
	} else if history, err := store.Open(path); err != nil {
		logging.Warnf("renderer: history disabled: %v", err)
	} else {
		r.history = history
	}

	return r, r.in, r.out, nil
}

// layoutPaths collects every layout file the configuration references.
func layoutPaths(cfg *config.Config) []string {
	var paths []string
	if !cfg.Layout.IsDefault() {
		paths = append(paths, cfg.Layout.Path)
	}
	for _, display := range cfg.PerApp {
		if !display.Layout.IsDefault() {
			paths = append(paths, display.Layout.Path)
		}
	}
	return paths
}

func (r *Renderer) buildShapers() error {
	fontData, err := text.LoadDefaultFont()
	if err != nil {
		return fmt.Errorf("renderer: load font: %w", err)
	}
	title, err := text.NewShaper(fontData, r.cfg.FontSize+2)
	if err != nil {
		return fmt.Errorf("renderer: title shaper: %w", err)
	}
	body, err := text.NewShaper(fontData, r.cfg.FontSize)
	if err != nil {
		return fmt.Errorf("renderer: body shaper: %w", err)
	}
	r.shapers = banner.Shapers{Title: title, Body: body}
	return nil
}

// Run is the cooperative loop of the renderer thread. It returns only on a
// fatal error; everything recoverable is logged and the loop continues.
func (r *Renderer) Run() error {
	if err := r.buildShapers(); err != nil {
		return err
	}

	manager, err := wm.Init(&r.cfg, r.shapers, r.cache)
	if err != nil {
		return err
	}
	r.manager = manager
	defer r.manager.Destroy()

	var toShow []notification.Notification
	var toClose []uint32

	for {
		toShow, toClose = toShow[:0], toClose[:0]

		for {
			msg, ok, err := r.in.TryRecv()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			switch {
			case msg.Show != nil:
				if t := msg.Show.Hints.ScheduleTime; t != "" {
					r.sched.Add(msg.Show.ID, t, *msg.Show, time.Now())
				} else {
					toShow = append(toShow, *msg.Show)
				}
			case msg.Close != nil:
				toClose = append(toClose, *msg.Close)
			}
		}

		for _, item := range r.sched.PopDue(time.Now()) {
			if n, ok := item.Payload.(notification.Notification); ok {
				toShow = append(toShow, n)
			}
		}

		if len(toShow) > 0 {
			r.manager.CreateNotifications(toShow, &r.cfg)
			for i := range toShow {
				r.record(&toShow[i])
				sound.Play(sound.Resolve(&toShow[i], &r.cfg.Sounds))
			}
		}
		if len(toClose) > 0 {
			r.manager.CloseNotifications(toClose, &r.cfg)
		}

		r.manager.RemoveExpired(&r.cfg)

		for {
			ev, ok := r.manager.PopEvent()
			if !ok {
				break
			}
			if err := r.out.Send(ev); err != nil {
				return err
			}
		}

		r.manager.HandleActions(&r.cfg)

		// Dispatch also polls the layout cache and repaints banners whose
		// layout file changed, keeping edits visible within one tick.
		if err := r.manager.Dispatch(&r.cfg); err != nil {
			return err
		}

		r.pollConfig()

		time.Sleep(tick)
	}
}

// record persists n into the history database, skipping on failure.
func (r *Renderer) record(n *notification.Notification) {
	if r.history == nil {
		return
	}
	if err := r.history.Insert(n); err != nil {
		logging.Warnf("renderer: %v (%v)", err, errs.ErrTransient)
	}
}

// pollConfig applies at most one hot-reloaded configuration per tick.
func (r *Renderer) pollConfig() {
	if r.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-r.watcher.Changed:
		if !ok {
			r.watcher = nil
			return
		}
		fontChanged := cfg.FontSize != r.cfg.FontSize || cfg.FontName != r.cfg.FontName
		r.cfg = cfg
		r.cache.Extend(layoutPaths(&r.cfg))
		if fontChanged {
			if err := r.buildShapers(); err != nil {
				logging.Warnf("renderer: keeping previous font: %v", err)
			} else {
				r.manager.SetShapers(r.shapers)
			}
		}
		r.manager.UpdateByConfig(&r.cfg)
		logging.Infof("renderer: configuration reloaded")
	default:
	}
}

// Close releases the services the renderer owns outside the loop.
func (r *Renderer) Close() {
	if r.watcher != nil {
		r.watcher.Close()
	}
	r.cache.Close()
	if r.history != nil {
		r.history.Close()
	}
}
