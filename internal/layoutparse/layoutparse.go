// Package layoutparse turns a TOML-shaped layout file into a widget.Widget
// tree. The grammar itself is out of the daemon's scope beyond "what the
// core consumes": a recursive node with a type tag (flex/text/image) and,
// for flex nodes, a list of children.
package layoutparse

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"notid/internal/color"
	"notid/internal/widget"
)

type rawSpacing struct {
	Top    int `toml:"top"`
	Right  int `toml:"right"`
	Bottom int `toml:"bottom"`
	Left   int `toml:"left"`
}

func (s rawSpacing) toWidget() widget.Spacing {
	return widget.Spacing{Top: s.Top, Right: s.Right, Bottom: s.Bottom, Left: s.Left}
}

type rawBorder struct {
	Size   int    `toml:"size"`
	Radius int    `toml:"radius"`
	Color  string `toml:"color"`
}

func (b rawBorder) toWidget() (widget.Border, error) {
	out := widget.Border{Size: b.Size, Radius: b.Radius}
	if b.Color == "" {
		return out, nil
	}
	rgba, err := color.ParseHex(b.Color)
	if err != nil {
		return widget.Border{}, fmt.Errorf("layoutparse: border color: %w", err)
	}
	out.Color = rgba.ToBGRA()
	return out, nil
}

type rawNode struct {
	Type        string      `toml:"type"`
	Direction   string      `toml:"direction"`
	Main        string      `toml:"main"`
	Cross       string      `toml:"cross"`
	Padding     rawSpacing  `toml:"padding"`
	Border      rawBorder   `toml:"border"`
	Transparent bool        `toml:"transparent"`
	Optional    bool        `toml:"optional"`
	Kind        string      `toml:"kind"`
	Children    []rawNode   `toml:"children"`
}

type layoutFile struct {
	Root rawNode `toml:"root"`
}

func parsePosition(s string) widget.Position {
	switch s {
	case "center":
		return widget.PosCenter
	case "end":
		return widget.PosEnd
	case "space-between":
		return widget.PosSpaceBetween
	default:
		return widget.PosStart
	}
}

func (n rawNode) toWidget() (widget.Widget, error) {
	switch n.Type {
	case "", "flex":
		border, err := n.Border.toWidget()
		if err != nil {
			return nil, err
		}
		direction := widget.Horizontal
		if n.Direction == "vertical" {
			direction = widget.Vertical
		}
		f := &widget.FlexContainer{
			Direction:   direction,
			Alignment:   widget.Alignment{Main: parsePosition(n.Main), Cross: parsePosition(n.Cross)},
			Spacing:     n.Padding.toWidget(),
			Border:      border,
			Transparent: n.Transparent,
		}
		for _, c := range n.Children {
			child, err := c.toWidget()
			if err != nil {
				return nil, err
			}
			f.Children = append(f.Children, widget.Child{Widget: child, Optional: c.Optional})
		}
		return f, nil

	case "text":
		kind := widget.TextTitle
		if n.Kind == "body" {
			kind = widget.TextBody
		}
		return &widget.Text{Kind: kind}, nil

	case "image":
		return &widget.Image{}, nil

	default:
		return nil, fmt.Errorf("layoutparse: unknown widget type %q", n.Type)
	}
}

// Parse reads and decodes the layout file at path into a widget tree.
func Parse(path string) (widget.Widget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file layoutFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("layoutparse: %s: %w", path, err)
	}
	return file.Root.toWidget()
}
