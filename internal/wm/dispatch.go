package wm

import (
	"fmt"

	"notid/internal/errs"
)

// conn is the slice of wlshell.Display the dispatch discipline needs,
// narrowed to an interface so the algorithm is testable without a
// compositor.
type conn interface {
	DispatchPending() int
	Flush() (int, error)
	PrepareRead() int
	ReadEvents() error
	CancelRead()
}

// dispatchQueue pumps the Wayland event queue without ever blocking:
// drain already-read events first; if that did work, stop there. Otherwise
// flush buffered requests, prepare a read (bailing out if another reader
// holds the queue), read whatever bytes the socket has, and drain once
// more. Any protocol error is fatal to the daemon.
func dispatchQueue(c conn) (bool, error) {
	n := c.DispatchPending()
	if n < 0 {
		return false, fmt.Errorf("%w: wayland dispatch failed", errs.ErrFatal)
	}
	if n > 0 {
		return true, nil
	}

	if _, err := c.Flush(); err != nil {
		return false, fmt.Errorf("%w: wayland flush: %v", errs.ErrFatal, err)
	}

	if c.PrepareRead() != 0 {
		// Another thread is mid-read; nothing to do this tick.
		return false, nil
	}
	if err := c.ReadEvents(); err != nil {
		return false, fmt.Errorf("%w: wayland read: %v", errs.ErrFatal, err)
	}

	n = c.DispatchPending()
	if n < 0 {
		return false, fmt.Errorf("%w: wayland dispatch failed", errs.ErrFatal)
	}
	return n > 0, nil
}
