package wm

import (
	"errors"
	"testing"

	"notid/internal/errs"
)

type fakeConn struct {
	pending      []int // successive DispatchPending results
	flushErr     error
	prepareBusy  bool
	readErr      error
	flushed      int
	reads        int
	cancelled    int
	dispatchDone int
}

func (f *fakeConn) DispatchPending() int {
	f.dispatchDone++
	if len(f.pending) == 0 {
		return 0
	}
	n := f.pending[0]
	f.pending = f.pending[1:]
	return n
}

func (f *fakeConn) Flush() (int, error) {
	f.flushed++
	return 0, f.flushErr
}

func (f *fakeConn) PrepareRead() int {
	if f.prepareBusy {
		return -1
	}
	return 0
}

func (f *fakeConn) ReadEvents() error {
	f.reads++
	return f.readErr
}

func (f *fakeConn) CancelRead() { f.cancelled++ }

func TestDispatchAlreadyPendingShortCircuits(t *testing.T) {
	c := &fakeConn{pending: []int{3}}
	did, err := dispatchQueue(c)
	if err != nil {
		t.Fatal(err)
	}
	if !did {
		t.Fatal("pending events must report work done")
	}
	if c.flushed != 0 || c.reads != 0 {
		t.Fatalf("short circuit still flushed=%d reads=%d", c.flushed, c.reads)
	}
}

func TestDispatchBusyReaderDoesNothing(t *testing.T) {
	c := &fakeConn{prepareBusy: true}
	did, err := dispatchQueue(c)
	if err != nil {
		t.Fatal(err)
	}
	if did {
		t.Fatal("busy prepare_read must be treated as nothing to do")
	}
	if c.flushed != 1 {
		t.Fatalf("flush not attempted before prepare_read, flushed=%d", c.flushed)
	}
	if c.reads != 0 {
		t.Fatal("read attempted while another thread holds the queue")
	}
}

func TestDispatchReadThenSecondDrain(t *testing.T) {
	c := &fakeConn{pending: []int{0, 2}}
	did, err := dispatchQueue(c)
	if err != nil {
		t.Fatal(err)
	}
	if !did {
		t.Fatal("events read from the socket must report work done")
	}
	if c.reads != 1 || c.dispatchDone != 2 {
		t.Fatalf("reads=%d dispatches=%d, want 1 and 2", c.reads, c.dispatchDone)
	}
}

func TestDispatchErrorsAreFatal(t *testing.T) {
	cases := []struct {
		name string
		conn *fakeConn
	}{
		{"dispatch", &fakeConn{pending: []int{-1}}},
		{"flush", &fakeConn{flushErr: errors.New("broken pipe")}},
		{"read", &fakeConn{readErr: errors.New("connection reset")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dispatchQueue(tc.conn)
			if !errors.Is(err, errs.ErrFatal) {
				t.Fatalf("%s error not fatal: %v", tc.name, err)
			}
		})
	}
}
