package wm

import (
	"testing"
	"time"

	"notid/internal/config"
	"notid/internal/notification"
)

func note(id uint32, urgency notification.Urgency) notification.Notification {
	return notification.Notification{
		ID:      id,
		AppName: "test",
		Summary: "summary",
		Hints:   notification.Hints{Urgency: urgency},
	}
}

func ids(s *Stack) []uint32 {
	var out []uint32
	for _, b := range s.Banners() {
		out = append(out, b.Notification().ID)
	}
	return out
}

func TestStackInsertionOrder(t *testing.T) {
	s := NewStack(config.SortingInsertion)
	s.Put(note(1, notification.UrgencyNormal))
	s.Put(note(2, notification.UrgencyCritical))
	s.Put(note(3, notification.UrgencyLow))

	got := ids(s)
	want := []uint32{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("insertion order: got %v, want %v", got, want)
		}
	}
}

func TestStackReverseOrder(t *testing.T) {
	s := NewStack(config.SortingReverse)
	s.Put(note(1, notification.UrgencyNormal))
	s.Put(note(2, notification.UrgencyNormal))
	s.Put(note(3, notification.UrgencyNormal))

	got := ids(s)
	want := []uint32{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reverse order: got %v, want %v", got, want)
		}
	}
}

func TestStackUrgencyThenInsertion(t *testing.T) {
	s := NewStack(config.SortingUrgencyThenInsertion)
	s.Put(note(1, notification.UrgencyLow))
	s.Put(note(2, notification.UrgencyCritical))
	s.Put(note(3, notification.UrgencyNormal))
	s.Put(note(4, notification.UrgencyCritical))

	got := ids(s)
	want := []uint32{2, 4, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("urgency order: got %v, want %v", got, want)
		}
	}
}

func TestStackReplacementPreservesPosition(t *testing.T) {
	s := NewStack(config.SortingInsertion)
	s.Put(note(1, notification.UrgencyNormal))
	s.Put(note(2, notification.UrgencyNormal))
	s.Put(note(3, notification.UrgencyNormal))

	_, pos := s.ByID(2)
	replacement := note(2, notification.UrgencyCritical)
	replacement.Summary = "replaced"
	b, replaced := s.Put(replacement)
	if !replaced {
		t.Fatal("expected same-id Put to report a replacement")
	}
	if b.Notification().Summary != "replaced" {
		t.Fatalf("replacement payload not applied: %q", b.Notification().Summary)
	}

	_, newPos := s.ByID(2)
	if newPos != pos {
		t.Fatalf("replacement moved banner from %d to %d", pos, newPos)
	}
	if s.Len() != 3 {
		t.Fatalf("replacement changed stack size to %d", s.Len())
	}
}

func TestStackUniqueIDs(t *testing.T) {
	s := NewStack(config.SortingInsertion)
	s.Put(note(7, notification.UrgencyNormal))
	s.Put(note(7, notification.UrgencyNormal))
	s.Put(note(7, notification.UrgencyNormal))

	if s.Len() != 1 {
		t.Fatalf("stack holds %d banners for one id", s.Len())
	}
}

func TestStackRemove(t *testing.T) {
	s := NewStack(config.SortingInsertion)
	s.Put(note(1, notification.UrgencyNormal))
	s.Put(note(2, notification.UrgencyNormal))

	if b := s.Remove(1); b == nil {
		t.Fatal("Remove(1) returned nil for a live banner")
	}
	if b := s.Remove(1); b != nil {
		t.Fatal("Remove(1) twice returned a banner")
	}
	if s.Len() != 1 {
		t.Fatalf("stack size after remove = %d", s.Len())
	}
}

func TestStackOverflowEvictsOldest(t *testing.T) {
	s := NewStack(config.SortingReverse)
	for id := uint32(1); id <= 4; id++ {
		s.Put(note(id, notification.UrgencyNormal))
		time.Sleep(2 * time.Millisecond)
	}

	got := s.Overflow(2)
	want := []uint32{1, 2}
	if len(got) != len(want) {
		t.Fatalf("overflow ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("overflow ids = %v, want %v", got, want)
		}
	}

	if s.Overflow(0) != nil {
		t.Fatal("zero limit must mean unlimited")
	}
	if s.Overflow(4) != nil {
		t.Fatal("stack at the limit has no overflow")
	}
}
