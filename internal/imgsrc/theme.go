package imgsrc

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadFromTheme resolves app_icon against an icon theme's directory tree,
// trying each configured size in order and returning the first hit. themeDirs
// are base directories such as "/usr/share/icons/hicolor"; within each, sizes
// are tried as "<size>x<size>/apps/<name>.png" (and ".svg").
func LoadFromTheme(name string, sizes []int, themeDirs []string, maxW, maxH, margin int) (Image, error) {
	if name == "" {
		return nil, fmt.Errorf("imgsrc: empty icon theme name")
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err == nil {
			return LoadFromPath(name, maxW, maxH, margin)
		}
	}

	for _, size := range sizes {
		for _, dir := range themeDirs {
			for _, ext := range []string{".png", ".svg"} {
				candidate := filepath.Join(dir, fmt.Sprintf("%dx%d", size, size), "apps", name+ext)
				if _, err := os.Stat(candidate); err == nil {
					return LoadFromPath(candidate, maxW, maxH, margin)
				}
			}
		}
	}
	return nil, fmt.Errorf("imgsrc: icon %q not found in theme", name)
}
