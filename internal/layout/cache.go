// Package layout caches parsed layout-file widget trees keyed by path,
// watching each for changes with fsnotify and reparsing on write.
package layout

import (
	"log"
	"sync"

	"github.com/fsnotify/fsnotify"

	"notid/internal/layoutparse"
	"notid/internal/widget"
)

type cachedLayout struct {
	widget widget.Widget // nil when the last parse failed
}

// Cache is a path-keyed store of parsed layouts, refreshed as their source
// files change. A failed parse leaves the previous widget (or nil) in
// place; callers fall back to the default layout when Get returns nil.
type Cache struct {
	layouts map[string]*cachedLayout
	watcher *fsnotify.Watcher

	// changed accumulates the paths Update reparsed, until TakeChanged
	// hands them to the window manager to redraw affected banners.
	changed []string

	mu      sync.Mutex
	pending []string
}

// NewCache builds an empty cache with its own fsnotify watcher.
func NewCache() (*Cache, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	c := &Cache{layouts: make(map[string]*cachedLayout), watcher: w}
	go c.run()
	return c, nil
}

// Get returns the cached widget tree for path, or nil if it isn't tracked
// or its last parse failed.
func (c *Cache) Get(path string) widget.Widget {
	entry, ok := c.layouts[path]
	if !ok {
		return nil
	}
	return entry.widget
}

// Extend retains only the given paths, adding a watch and an initial parse
// for any not already tracked, and dropping the watch for any no longer
// named.
func (c *Cache) Extend(paths []string) {
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[p] = true
	}

	for p := range c.layouts {
		if !want[p] {
			c.watcher.Remove(p)
			delete(c.layouts, p)
		}
	}

	for _, p := range paths {
		if _, ok := c.layouts[p]; ok {
			continue
		}
		if err := c.watcher.Add(p); err != nil {
			log.Printf("layout: failed to watch %s: %v", p, err)
			continue
		}
		c.layouts[p] = &cachedLayout{widget: c.load(p)}
	}
}

// Update reloads any path whose last fsnotify event hasn't yet been
// processed. It is a no-op unless called from the same goroutine that owns
// the cache's map, matching the renderer's single-threaded loop.
func (c *Cache) Update() {
	c.mu.Lock()
	due := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, p := range due {
		entry, ok := c.layouts[p]
		if !ok {
			continue
		}
		entry.widget = c.load(p)
		c.changed = append(c.changed, p)
	}
}

// TakeChanged drains the set of paths whose layouts were reparsed since
// the last call, so callers can redraw banners still showing the old
// parse.
func (c *Cache) TakeChanged() []string {
	changed := c.changed
	c.changed = nil
	return changed
}

func (c *Cache) load(path string) widget.Widget {
	w, err := layoutparse.Parse(path)
	if err != nil {
		log.Printf("layout: %s is not a valid layout: %v", path, err)
		return nil
	}
	return w
}

// run drains fsnotify events into c.pending, which Update drains in turn;
// run is the only writer other than Update's own reset, and both sides
// synchronize through mu.
func (c *Cache) run() {
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			c.mu.Lock()
			c.pending = append(c.pending, event.Name)
			c.mu.Unlock()
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("layout: watcher error: %v", err)
		}
	}
}

func (c *Cache) Close() error {
	return c.watcher.Close()
}
