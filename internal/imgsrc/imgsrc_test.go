// ABOUTME: Tests for image resolution from pixel buffers, paths, and theme lookup.
// ABOUTME: Covers priority order, margin sizing, fit checking, and fd refcounting.

package imgsrc

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	ourcolor "notid/internal/color"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestLoadFromPathScalesPreservingAspect(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "icon.png", 200, 100)

	img, err := LoadFromPath(path, 64, 64, 0)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	w, h := img.FinalSize()
	if w > 64 || h > 64 {
		t.Errorf("not scaled to fit: got %dx%d", w, h)
	}
	if w != 64 || h != 32 {
		t.Errorf("aspect ratio not preserved: got %dx%d, want 64x32", w, h)
	}
}

func TestLoadFromPathAddsMargin(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "small.png", 10, 10)

	img, err := LoadFromPath(path, 64, 64, 4)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	w, h := img.FinalSize()
	if w != 18 || h != 18 {
		t.Errorf("margin not applied: got %dx%d, want 18x18", w, h)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/icon.png", 64, 64, 0)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCheckFits(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "big.png", 100, 100)
	img, err := LoadFromPath(path, 200, 200, 0)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if err := CheckFits(img, 50, 50); err == nil {
		t.Fatal("expected does-not-fit error")
	}
	if err := CheckFits(img, 200, 200); err != nil {
		t.Fatalf("expected fit, got %v", err)
	}
}

func TestUnknownImageZeroSize(t *testing.T) {
	w, h := Unknown.FinalSize()
	if w != 0 || h != 0 {
		t.Errorf("Unknown.FinalSize() = (%d,%d), want (0,0)", w, h)
	}
	buf := ourcolor.NewBuffer(4, 4)
	if err := Unknown.Draw(buf, 0, 0); err != nil {
		t.Errorf("Unknown.Draw returned error: %v", err)
	}
}

func TestResolvePriorityOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "path-icon.png", 20, 20)

	cfg := Config{MaxWidth: 64, MaxHeight: 64}

	hint, err := NewPixelBufferHint(2, 2, 8, false, 8, 3, []byte{
		255, 0, 0, 255, 0, 0,
		255, 0, 0, 255, 0, 0,
	})
	if err != nil {
		t.Fatalf("NewPixelBufferHint: %v", err)
	}
	defer hint.Handle.Close()

	img := Resolve(Request{PixelBuffer: hint, Path: path, AppIconName: "whatever"}, cfg)
	w, h := img.FinalSize()
	if w != 2 || h != 2 {
		t.Errorf("pixel buffer hint did not take priority: got %dx%d", w, h)
	}

	img = Resolve(Request{Path: path, AppIconName: "whatever"}, cfg)
	w, h = img.FinalSize()
	if w != 20 || h != 20 {
		t.Errorf("path hint did not take priority over theme: got %dx%d", w, h)
	}

	img = Resolve(Request{}, cfg)
	if img != Unknown {
		t.Errorf("expected Unknown when no source resolves")
	}
}

func TestNewPixelBufferHintValidation(t *testing.T) {
	tests := []struct {
		name          string
		hasAlpha      bool
		bitsPerSample int
		channels      int
		wantErr       bool
	}{
		{name: "valid rgb", hasAlpha: false, bitsPerSample: 8, channels: 3},
		{name: "valid rgba", hasAlpha: true, bitsPerSample: 8, channels: 4},
		{name: "wrong bits per sample", hasAlpha: false, bitsPerSample: 16, channels: 3, wantErr: true},
		{name: "channels mismatch for alpha", hasAlpha: true, bitsPerSample: 8, channels: 3, wantErr: true},
		{name: "channels mismatch for no alpha", hasAlpha: false, bitsPerSample: 8, channels: 4, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, err := NewPixelBufferHint(1, 1, tc.channels, tc.hasAlpha, tc.bitsPerSample, tc.channels, make([]byte, tc.channels))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			h.Handle.Close()
		})
	}
}

func TestFileHandleRefcountClosesOnce(t *testing.T) {
	h, err := NewFileHandle([]byte("hello"))
	if err != nil {
		t.Fatalf("NewFileHandle: %v", err)
	}
	name := h.file.Name()

	clone := h.Clone()
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(name); err != nil {
		t.Fatalf("file removed while clone still live: %v", err)
	}

	data, err := clone.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Bytes() = %q, want %q", data, "hello")
	}

	if err := clone.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Errorf("expected file removed after last close, stat err = %v", err)
	}
}
