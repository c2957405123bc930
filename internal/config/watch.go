package config

import (
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads Config from disk whenever the file at Path changes, and
// publishes the new value on Changed. The renderer loop drains Changed
// non-blockingly on each tick.
type Watcher struct {
	Path    string
	Changed chan Config

	watcher *fsnotify.Watcher
}

// NewWatcher starts watching path's parent directory (so editors that
// replace-via-rename are caught) and returns a Watcher whose Changed
// channel receives a freshly loaded Config after every write.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{Path: path, Changed: make(chan Config, 1), watcher: fsw}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(w.Path)
			if err != nil {
				log.Printf("config: reload %s failed: %v", w.Path, err)
				continue
			}
			select {
			case w.Changed <- cfg:
			default:
				// drop the stale pending reload, the new one supersedes it.
				select {
				case <-w.Changed:
				default:
				}
				w.Changed <- cfg
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config: watcher error: %v", err)
		}
	}
}

func (w *Watcher) Close() error {
	close(w.Changed)
	return w.watcher.Close()
}
