package config

import (
	"os"
	"path/filepath"
	"testing"

	"notid/internal/notification"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.General.Validate(); err != nil {
		t.Fatalf("Default().General.Validate() = %v", err)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load(missing) error = %v", err)
	}
	if cfg.General.Width != Default().General.Width {
		t.Errorf("Load(missing).General.Width = %d, want default", cfg.General.Width)
	}
}

func TestLoadOverridesGeneral(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[general]
width = 400
height = 200
anchor = "bottom-left"
gap = 5
sorting = "urgency"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.General.Width != 400 || cfg.General.Height != 200 {
		t.Errorf("General dims = %dx%d, want 400x200", cfg.General.Width, cfg.General.Height)
	}
	if cfg.General.Anchor != AnchorBottomLeft {
		t.Errorf("Anchor = %v, want AnchorBottomLeft", cfg.General.Anchor)
	}
	if cfg.General.Sorting != SortingUrgencyThenInsertion {
		t.Errorf("Sorting = %v, want SortingUrgencyThenInsertion", cfg.General.Sorting)
	}
}

func TestLoadRejectsInvalidAnchor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	os.WriteFile(path, []byte("[general]\nanchor = \"nowhere\"\n"), 0o644)

	if _, err := Load(path); err == nil {
		t.Error("Load() with invalid anchor returned nil error")
	}
}

func TestAnchorPredicates(t *testing.T) {
	tests := []struct {
		a                            Anchor
		top, bottom, left, right bool
	}{
		{AnchorTopLeft, true, false, true, false},
		{AnchorBottomRight, false, true, false, true},
		{AnchorLeft, false, false, true, false},
	}
	for _, tt := range tests {
		if got := tt.a.IsTop(); got != tt.top {
			t.Errorf("%v.IsTop() = %v, want %v", tt.a, got, tt.top)
		}
		if got := tt.a.IsBottom(); got != tt.bottom {
			t.Errorf("%v.IsBottom() = %v, want %v", tt.a, got, tt.bottom)
		}
		if got := tt.a.IsLeft(); got != tt.left {
			t.Errorf("%v.IsLeft() = %v, want %v", tt.a, got, tt.left)
		}
		if got := tt.a.IsRight(); got != tt.right {
			t.Errorf("%v.IsRight() = %v, want %v", tt.a, got, tt.right)
		}
	}
}

func TestThemeByUrgency(t *testing.T) {
	cfg := Default()
	if cfg.Theme.ByUrgency(notification.UrgencyCritical).Foreground.At(0) != cfg.Theme.Critical.Foreground.At(0) {
		t.Error("ByUrgency(Critical) did not select the critical theme")
	}
	if cfg.Theme.ByUrgency(notification.UrgencyNormal).Foreground.At(0) != cfg.Theme.Normal.Foreground.At(0) {
		t.Error("ByUrgency(Normal) did not select the normal theme")
	}
}

func TestDisplayByAppFallsBackToDefault(t *testing.T) {
	cfg := Default()
	cfg.PerApp = map[string]DisplayOverride{}
	d := cfg.DisplayByApp("unknown-app")
	if !d.Layout.IsDefault() {
		t.Error("DisplayByApp for unconfigured app did not fall back to default layout")
	}
}
