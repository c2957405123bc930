package layoutparse

import (
	"os"
	"path/filepath"
	"testing"

	"notid/internal/widget"
)

func writeLayout(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseSimpleTextLayout(t *testing.T) {
	path := writeLayout(t, `
[root]
type = "text"
kind = "title"
`)
	w, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := w.(*widget.Text); !ok {
		t.Errorf("Parse() = %T, want *widget.Text", w)
	}
}

func TestParseNestedFlexLayout(t *testing.T) {
	path := writeLayout(t, `
[root]
type = "flex"
direction = "horizontal"
main = "start"
cross = "center"

[[root.children]]
type = "image"
optional = true

[[root.children]]
type = "flex"
direction = "vertical"
transparent = true

  [[root.children.children]]
  type = "text"
  kind = "title"

  [[root.children.children]]
  type = "text"
  kind = "body"
`)
	w, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	root, ok := w.(*widget.FlexContainer)
	if !ok {
		t.Fatalf("Parse() = %T, want *widget.FlexContainer", w)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	if !root.Children[0].Optional {
		t.Error("image child should be optional")
	}
	inner, ok := root.Children[1].Widget.(*widget.FlexContainer)
	if !ok {
		t.Fatalf("second child = %T, want *widget.FlexContainer", root.Children[1].Widget)
	}
	if len(inner.Children) != 2 {
		t.Errorf("inner flex has %d children, want 2", len(inner.Children))
	}
}

func TestParseUnknownTypeErrors(t *testing.T) {
	path := writeLayout(t, "[root]\ntype = \"bogus\"\n")
	if _, err := Parse(path); err == nil {
		t.Error("Parse() with unknown type returned nil error")
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Parse() on missing file returned nil error")
	}
}
