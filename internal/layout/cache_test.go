package layout

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"notid/internal/widget"
)

func TestCacheExtendLoadsAndDrops(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.toml")
	if err := os.WriteFile(path, []byte("[root]\ntype = \"image\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewCache()
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	defer c.Close()

	c.Extend([]string{path})
	if _, ok := c.Get(path).(*widget.Image); !ok {
		t.Fatalf("Get(%s) = %T, want *widget.Image", path, c.Get(path))
	}

	c.Extend(nil)
	if got := c.Get(path); got != nil {
		t.Errorf("Get(%s) after Extend(nil) = %v, want nil", path, got)
	}
}

func TestCacheInvalidLayoutYieldsNil(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.toml")
	if err := os.WriteFile(path, []byte("[root]\ntype = \"bogus\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewCache()
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	defer c.Close()

	c.Extend([]string{path})
	if got := c.Get(path); got != nil {
		t.Errorf("Get(%s) = %v, want nil for an invalid layout", path, got)
	}
}

func TestCacheUpdateReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.toml")
	if err := os.WriteFile(path, []byte("[root]\ntype = \"image\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewCache()
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	defer c.Close()
	c.Extend([]string{path})

	if err := os.WriteFile(path, []byte("[root]\ntype = \"text\"\nkind = \"title\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.Update()
		if _, ok := c.Get(path).(*widget.Text); ok {
			changed := c.TakeChanged()
			if len(changed) == 0 || changed[len(changed)-1] != path {
				t.Fatalf("TakeChanged() = %v, want it to report %s", changed, path)
			}
			if got := c.TakeChanged(); got != nil {
				t.Fatalf("second TakeChanged() = %v, want drained", got)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("Get(%s) never reflected the rewritten layout", path)
}
