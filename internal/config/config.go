// Package config loads the daemon's hot-swappable configuration from a
// TOML file under the XDG config directory and watches it for changes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"notid/internal/color"
	"notid/internal/notification"
	"notid/internal/value"
	"notid/internal/widget"
)

// Anchor is one of the eight screen-edge positions a banner stack is
// attached to.
type Anchor int

const (
	AnchorTopRight Anchor = iota
	AnchorTop
	AnchorTopLeft
	AnchorBottom
	AnchorBottomLeft
	AnchorBottomRight
	AnchorLeft
	AnchorRight
)

func (a Anchor) IsTop() bool {
	return a == AnchorTop || a == AnchorTopLeft || a == AnchorTopRight
}

func (a Anchor) IsBottom() bool {
	return a == AnchorBottom || a == AnchorBottomLeft || a == AnchorBottomRight
}

func (a Anchor) IsLeft() bool {
	return a == AnchorTopLeft || a == AnchorBottomLeft || a == AnchorLeft
}

func (a Anchor) IsRight() bool {
	return a == AnchorTopRight || a == AnchorBottomRight || a == AnchorRight
}

// ParseAnchor accepts the dash- or space-separated spellings the original
// TOML config used.
func ParseAnchor(s string) (Anchor, error) {
	switch s {
	case "top":
		return AnchorTop, nil
	case "top-left", "top left":
		return AnchorTopLeft, nil
	case "top-right", "top right", "":
		return AnchorTopRight, nil
	case "bottom":
		return AnchorBottom, nil
	case "bottom-left", "bottom left":
		return AnchorBottomLeft, nil
	case "bottom-right", "bottom right":
		return AnchorBottomRight, nil
	case "left":
		return AnchorLeft, nil
	case "right":
		return AnchorRight, nil
	default:
		return 0, fmt.Errorf("config: invalid anchor %q", s)
	}
}

// Sorting selects how the banner stack orders notifications.
type Sorting int

const (
	SortingInsertion Sorting = iota
	SortingUrgencyThenInsertion
	SortingReverse
)

func ParseSorting(s string) (Sorting, error) {
	switch s {
	case "insertion", "":
		return SortingInsertion, nil
	case "urgency", "urgency-then-insertion":
		return SortingUrgencyThenInsertion, nil
	case "reverse":
		return SortingReverse, nil
	default:
		return 0, fmt.Errorf("config: invalid sorting %q", s)
	}
}

// General holds the surface placement and lifecycle knobs.
type General struct {
	Width          int
	Height         int
	Anchor         Anchor
	OffsetX        int
	OffsetY        int
	Gap            int
	DefaultTimeout uint32 // milliseconds
	IdleThreshold  uint32 // milliseconds; 0 disables idle suppression
	Sorting        Sorting
	Limit          int // 0 means unlimited
}

// Validate rejects geometry no compositor could place.
func (g General) Validate() error {
	if g.Width < 1 || g.Height < 1 {
		return fmt.Errorf("config: width and height must be >= 1, got %dx%d", g.Width, g.Height)
	}
	if g.Gap < 0 {
		return fmt.Errorf("config: gap must be >= 0, got %d", g.Gap)
	}
	if g.DefaultTimeout == 0 {
		return fmt.Errorf("config: default timeout must be > 0")
	}
	return nil
}

// Colors is a per-urgency fg/bg/border triple.
type Colors struct {
	Foreground color.Fill
	Background color.Fill
	Border     color.Fill
}

// Theme maps urgency to its color set.
type Theme struct {
	Low      Colors
	Normal   Colors
	Critical Colors
}

func (t Theme) ByUrgency(u notification.Urgency) Colors {
	switch u {
	case notification.UrgencyLow:
		return t.Low
	case notification.UrgencyCritical:
		return t.Critical
	default:
		return t.Normal
	}
}

// Icons controls icon-theme resolution for app_icon lookups.
type Icons struct {
	Theme string
	Sizes []int
	Dirs  []string
}

// Sounds selects the per-urgency fallback cue played when a notification
// carries no sound hint of its own. Values are built-in tone names or wav
// file paths; empty means silence.
type Sounds struct {
	Enabled  bool
	Low      string
	Normal   string
	Critical string
}

// Layout selects between the built-in default layout and a layout file.
type Layout struct {
	Path string // empty means Default
}

func (l Layout) IsDefault() bool { return l.Path == "" }

// DisplayOverride is a per-app_name customization of padding/border/text
// properties, applied only when the default layout is in use (a custom
// layout file's own widget tree is never overridden).
type DisplayOverride struct {
	Padding     widget.Spacing
	Border      widget.Border
	ImageMargin int
	Values      map[string]value.Value
	Layout      Layout
}

// Config is the full hot-swappable configuration value.
type Config struct {
	General  General
	Theme    Theme
	Icons    Icons
	Layout   Layout
	Sounds   Sounds
	PerApp   map[string]DisplayOverride
	FontName string
	FontSize int
}

// DisplayByApp resolves the per-app override for appName, falling back to
// the top-level layout/padding/border defaults when none is configured.
func (c *Config) DisplayByApp(appName string) DisplayOverride {
	if d, ok := c.PerApp[appName]; ok {
		return d
	}
	return DisplayOverride{Layout: c.Layout}
}

// ThemeByApp returns the color set c.Theme maps urgency u to; themes are
// not currently per-app, matching the original's global Theme scope.
func (c *Config) ThemeByApp(_ string, u notification.Urgency) Colors {
	return c.Theme.ByUrgency(u)
}

// tomlConfig is the wire shape TOML unmarshals into before being converted
// to the richer, validated Config.
type tomlConfig struct {
	General struct {
		Width          int    `toml:"width"`
		Height         int    `toml:"height"`
		Anchor         string `toml:"anchor"`
		OffsetX        int    `toml:"offset_x"`
		OffsetY        int    `toml:"offset_y"`
		Gap            int    `toml:"gap"`
		DefaultTimeout int    `toml:"default_timeout_ms"`
		IdleThreshold  int    `toml:"idle_threshold_ms"`
		Sorting        string `toml:"sorting"`
		Limit          int    `toml:"limit"`
	} `toml:"general"`
	Font struct {
		Name string `toml:"name"`
		Size int    `toml:"size"`
	} `toml:"font"`
	Icons struct {
		Theme string   `toml:"theme"`
		Sizes []int    `toml:"sizes"`
		Dirs  []string `toml:"dirs"`
	} `toml:"icons"`
	Layout string `toml:"layout"`
	Sounds struct {
		Enabled  *bool  `toml:"enabled"`
		Low      string `toml:"low"`
		Normal   string `toml:"normal"`
		Critical string `toml:"critical"`
	} `toml:"sounds"`
	Theme struct {
		Low      tomlColors `toml:"low"`
		Normal   tomlColors `toml:"normal"`
		Critical tomlColors `toml:"critical"`
	} `toml:"theme"`
}

type tomlColors struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Border     string `toml:"border"`
}

func (t tomlColors) toColors(defaults Colors) (Colors, error) {
	c := defaults
	if t.Foreground != "" {
		rgba, err := color.ParseHex(t.Foreground)
		if err != nil {
			return Colors{}, err
		}
		c.Foreground = color.SolidFill(rgba.ToBGRA())
	}
	if t.Background != "" {
		rgba, err := color.ParseHex(t.Background)
		if err != nil {
			return Colors{}, err
		}
		c.Background = color.SolidFill(rgba.ToBGRA())
	}
	if t.Border != "" {
		rgba, err := color.ParseHex(t.Border)
		if err != nil {
			return Colors{}, err
		}
		c.Border = color.SolidFill(rgba.ToBGRA())
	}
	return c, nil
}

func defaultColors(fg, bg, border string) Colors {
	f, _ := color.ParseHex(fg)
	b, _ := color.ParseHex(bg)
	r, _ := color.ParseHex(border)
	return Colors{
		Foreground: color.SolidFill(f.ToBGRA()),
		Background: color.SolidFill(b.ToBGRA()),
		Border:     color.SolidFill(r.ToBGRA()),
	}
}

// Default returns the configuration used when no file is present, mirroring
// the original's per-field TOML defaults (300x150, top-right, 10px gap,
// black-on-white normal theme, red-on-white critical theme).
func Default() Config {
	return Config{
		General: General{
			Width: 300, Height: 150,
			Anchor:         AnchorTopRight,
			Gap:            10,
			DefaultTimeout: 5000,
			Sorting:        SortingInsertion,
		},
		Theme: Theme{
			Low:      defaultColors("#000000", "#ffffff", "#000000"),
			Normal:   defaultColors("#000000", "#ffffff", "#000000"),
			Critical: defaultColors("#ff0000", "#ffffff", "#ff0000"),
		},
		FontName: "Noto Sans",
		FontSize: 12,
		Sounds: Sounds{
			Enabled:  true,
			Normal:   "notify",
			Critical: "alert",
		},
		Icons: Icons{
			Theme: "hicolor",
			Sizes: []int{48, 32, 24, 16},
		},
	}
}

// Load reads and parses a TOML config file at path, layering it over
// Default. A missing file is not an error: Default is returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var raw tomlConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if raw.General.Width > 0 {
		cfg.General.Width = raw.General.Width
	}
	if raw.General.Height > 0 {
		cfg.General.Height = raw.General.Height
	}
	if raw.General.Anchor != "" {
		anchor, err := ParseAnchor(raw.General.Anchor)
		if err != nil {
			return Config{}, err
		}
		cfg.General.Anchor = anchor
	}
	cfg.General.OffsetX = raw.General.OffsetX
	cfg.General.OffsetY = raw.General.OffsetY
	if raw.General.Gap > 0 {
		cfg.General.Gap = raw.General.Gap
	}
	if raw.General.DefaultTimeout > 0 {
		cfg.General.DefaultTimeout = uint32(raw.General.DefaultTimeout)
	}
	cfg.General.IdleThreshold = uint32(raw.General.IdleThreshold)
	if raw.General.Sorting != "" {
		sorting, err := ParseSorting(raw.General.Sorting)
		if err != nil {
			return Config{}, err
		}
		cfg.General.Sorting = sorting
	}
	cfg.General.Limit = raw.General.Limit

	if raw.Font.Name != "" {
		cfg.FontName = raw.Font.Name
	}
	if raw.Font.Size > 0 {
		cfg.FontSize = raw.Font.Size
	}

	if raw.Icons.Theme != "" {
		cfg.Icons.Theme = raw.Icons.Theme
	}
	if len(raw.Icons.Sizes) > 0 {
		cfg.Icons.Sizes = raw.Icons.Sizes
	}
	cfg.Icons.Dirs = raw.Icons.Dirs

	cfg.Layout = Layout{Path: raw.Layout}

	if raw.Sounds.Enabled != nil {
		cfg.Sounds.Enabled = *raw.Sounds.Enabled
	}
	if raw.Sounds.Low != "" {
		cfg.Sounds.Low = raw.Sounds.Low
	}
	if raw.Sounds.Normal != "" {
		cfg.Sounds.Normal = raw.Sounds.Normal
	}
	if raw.Sounds.Critical != "" {
		cfg.Sounds.Critical = raw.Sounds.Critical
	}

	if low, err := raw.Theme.Low.toColors(cfg.Theme.Low); err == nil {
		cfg.Theme.Low = low
	} else {
		return Config{}, err
	}
	if normal, err := raw.Theme.Normal.toColors(cfg.Theme.Normal); err == nil {
		cfg.Theme.Normal = normal
	} else {
		return Config{}, err
	}
	if critical, err := raw.Theme.Critical.toColors(cfg.Theme.Critical); err == nil {
		cfg.Theme.Critical = critical
	} else {
		return Config{}, err
	}

	if err := cfg.General.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DefaultPath is the XDG config-dir location of config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "notid", "config.toml")
}
