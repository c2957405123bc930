package idle

import "testing"

func TestConsumeResumedFiresOnce(t *testing.T) {
	n := New(5000)

	if n.ConsumeResumed() {
		t.Fatal("fresh notifier reported a resume")
	}

	// A resume without a preceding idle period releases nothing.
	n.state = Resumed
	if n.ConsumeResumed() {
		t.Fatal("resume without idle period must not release")
	}

	n.state = Idled
	n.wasIdled = true
	if !n.IsIdled() {
		t.Fatal("idled state not reported")
	}
	if n.ConsumeResumed() {
		t.Fatal("still idled, nothing to consume")
	}

	n.state = Resumed
	if !n.ConsumeResumed() {
		t.Fatal("resume after idle period must release exactly once")
	}
	if n.ConsumeResumed() {
		t.Fatal("second consume must be a no-op")
	}
	if n.WasIdled() {
		t.Fatal("latched flag must clear after the release")
	}
}
