package renderer

import (
	"errors"
	"testing"

	"notid/internal/errs"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int]()
	for i := 1; i <= 3; i++ {
		if err := q.Send(i); err != nil {
			t.Fatal(err)
		}
	}
	for want := 1; want <= 3; want++ {
		got, ok, err := q.TryRecv()
		if err != nil || !ok {
			t.Fatalf("recv %d: ok=%v err=%v", want, ok, err)
		}
		if got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
	}
	if _, ok, err := q.TryRecv(); ok || err != nil {
		t.Fatalf("empty open queue: ok=%v err=%v", ok, err)
	}
}

func TestQueueCloseIsFatal(t *testing.T) {
	q := NewQueue[string]()
	if err := q.Send("pending"); err != nil {
		t.Fatal(err)
	}
	q.Close()

	if err := q.Send("late"); !errors.Is(err, errs.ErrFatal) {
		t.Fatalf("send after close: %v", err)
	}

	// Items queued before the close still drain.
	got, ok, err := q.TryRecv()
	if err != nil || !ok || got != "pending" {
		t.Fatalf("drain after close: %q ok=%v err=%v", got, ok, err)
	}

	if _, _, err := q.TryRecv(); !errors.Is(err, errs.ErrFatal) {
		t.Fatalf("recv on drained closed queue: %v", err)
	}
}
