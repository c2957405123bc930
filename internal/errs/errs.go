// Package errs is the daemon's small sentinel error set, checked with
// errors.Is/errors.As: fatal conditions, unrenderable notifications,
// transient I/O, and malformed input.
package errs

import "errors"

// Fatal conditions terminate the process: bus connection lost, Wayland
// connection lost, a channel endpoint dropped, a thread panic.
var ErrFatal = errors.New("fatal")

// Unrendered wraps a notification that could not be compiled or drawn; the
// daemon stays up and surrenders the payload back to the caller.
var ErrUnrendered = errors.New("notification could not be rendered")

// Transient wraps recoverable I/O failures (icon lookup miss, layout parse
// failure, history write failure) that fall back to a default and log a
// warning.
var ErrTransient = errors.New("transient I/O failure")

// Malformed wraps protocol violations or malformed input (bad hex color,
// unknown hint type, malformed schedule time) where the offending field is
// dropped and defaults are used instead.
var ErrMalformed = errors.New("malformed input")

// UnrenderedError pairs ErrUnrendered with the notification id that failed
// to render, so a caller can report which banner was affected.
type UnrenderedError struct {
	ID  uint32
	Err error
}

func (e *UnrenderedError) Error() string {
	return "notification " + itoa(e.ID) + ": " + e.Err.Error()
}

func (e *UnrenderedError) Unwrap() error { return ErrUnrendered }

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
