package scheduler

import (
	"testing"
	"time"
)

func TestParseDurationRelative(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	got, err := parseTime("5m", now)
	if err != nil {
		t.Fatalf("parseTime(5m) error = %v", err)
	}
	if want := now.Add(5 * time.Minute); !got.Equal(want) {
		t.Errorf("parseTime(5m) = %v, want %v", got, want)
	}
}

func TestParseDurationDayWeekUnits(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := parseTime("1d", now)
	if err != nil {
		t.Fatalf("parseTime(1d) error = %v", err)
	}
	if want := now.Add(24 * time.Hour); !got.Equal(want) {
		t.Errorf("parseTime(1d) = %v, want %v", got, want)
	}

	got, err = parseTime("2w", now)
	if err != nil {
		t.Fatalf("parseTime(2w) error = %v", err)
	}
	if want := now.Add(14 * 24 * time.Hour); !got.Equal(want) {
		t.Errorf("parseTime(2w) = %v, want %v", got, want)
	}
}

func TestParseTimeAbsoluteRFC3339(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := parseTime("2030-06-15T10:00:00Z", now)
	if err != nil {
		t.Fatalf("parseTime(rfc3339) error = %v", err)
	}
	want := time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseTime(rfc3339) = %v, want %v", got, want)
	}
}

func TestParseTimeRejectsGarbage(t *testing.T) {
	if _, err := parseTime("not a time", time.Now()); err == nil {
		t.Error("parseTime(garbage) returned nil error")
	}
}

func TestSchedulerPopDueInOrder(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New()
	s.Add(1, "10m", "first-ish", now)
	s.Add(2, "5m", "soonest", now)
	s.Add(3, "1h", "later", now)

	due := s.PopDue(now.Add(20 * time.Minute))
	if len(due) != 2 {
		t.Fatalf("PopDue = %d items, want 2", len(due))
	}
	if due[0].Payload != "soonest" || due[1].Payload != "first-ish" {
		t.Errorf("PopDue order = %v, %v, want soonest then first-ish", due[0].Payload, due[1].Payload)
	}
	if s.Len() != 1 {
		t.Errorf("Len() after PopDue = %d, want 1", s.Len())
	}
}

func TestSchedulerDropsUnparseableTime(t *testing.T) {
	s := New()
	s.Add(1, "garbage", "x", time.Now())
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after a malformed Add", s.Len())
	}
}

func TestPeekNextFire(t *testing.T) {
	s := New()
	if _, ok := s.PeekNextFire(); ok {
		t.Error("PeekNextFire() on empty scheduler returned ok=true")
	}
	now := time.Now()
	s.Add(1, "1m", "x", now)
	fire, ok := s.PeekNextFire()
	if !ok {
		t.Fatal("PeekNextFire() ok=false after Add")
	}
	if !fire.After(now) {
		t.Errorf("PeekNextFire() = %v, want after %v", fire, now)
	}
}
