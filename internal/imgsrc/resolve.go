package imgsrc

// Config bounds how a resolved image is scaled and reports its size.
type Config struct {
	MaxWidth, MaxHeight int
	Margin              int
	ThemeSizes          []int
	ThemeDirs           []string
}

// Request carries the three possible image sources a notification can
// supply, tried in priority order by Resolve.
type Request struct {
	PixelBuffer *PixelBufferHint
	Path        string
	AppIconName string
}

// Resolve picks the first usable source in priority order: pixel-buffer
// hint, then path hint (SVG or raster), then icon-theme lookup by
// app_icon. It never returns an error: when every source is absent or
// fails to load, Unknown is returned so the caller contributes zero size.
func Resolve(req Request, cfg Config) Image {
	if req.PixelBuffer != nil {
		if img, err := LoadFromPixelBuffer(req.PixelBuffer, cfg.MaxWidth, cfg.MaxHeight, cfg.Margin); err == nil {
			return img
		}
	}
	if req.Path != "" {
		if img, err := LoadFromPath(req.Path, cfg.MaxWidth, cfg.MaxHeight, cfg.Margin); err == nil {
			return img
		}
	}
	if req.AppIconName != "" {
		if img, err := LoadFromTheme(req.AppIconName, cfg.ThemeSizes, cfg.ThemeDirs, cfg.MaxWidth, cfg.MaxHeight, cfg.Margin); err == nil {
			return img
		}
	}
	return Unknown
}
