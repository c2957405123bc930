package sound

import (
	"testing"

	"notid/internal/config"
	"notid/internal/notification"
)

func TestResolveOrder(t *testing.T) {
	cfg := config.Sounds{Enabled: true, Low: "low", Normal: "notify", Critical: "alert"}

	cases := []struct {
		name  string
		hints notification.Hints
		want  string
	}{
		{"suppressed", notification.Hints{SuppressSound: true, SoundFile: "/s.wav"}, ""},
		{"file wins", notification.Hints{SoundFile: "/s.wav", SoundName: "ping"}, "/s.wav"},
		{"name second", notification.Hints{SoundName: "ping"}, "ping"},
		{"normal default", notification.Hints{Urgency: notification.UrgencyNormal}, "notify"},
		{"critical default", notification.Hints{Urgency: notification.UrgencyCritical}, "alert"},
		{"low default", notification.Hints{Urgency: notification.UrgencyLow}, "low"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := notification.Notification{Hints: tc.hints}
			if got := Resolve(&n, &cfg); got != tc.want {
				t.Errorf("Resolve = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveDisabled(t *testing.T) {
	cfg := config.Sounds{Enabled: false, Normal: "notify"}
	n := notification.Notification{Hints: notification.Hints{SoundName: "ping"}}
	if got := Resolve(&n, &cfg); got != "" {
		t.Errorf("disabled config must silence every source, got %q", got)
	}
}

func TestIsBuiltin(t *testing.T) {
	if !IsBuiltin("ping") || !IsBuiltin("tone:alert") {
		t.Error("known tones not recognized")
	}
	if IsBuiltin("does-not-exist") {
		t.Error("unknown name recognized")
	}
}
