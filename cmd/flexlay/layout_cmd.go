package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"flexlay/pkg/layout"
)

func newLayoutCmd(flags *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "layout <scene>",
		Short: "Lay out a scene and print box geometry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			sc, p, err := loadScene(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			res, err := p.Layout(sc, viewportOf(cfg))
			if err != nil {
				return err
			}
			return writeGeometry(cmd.OutOrStdout(), format, res.Viewport, res.Boxes)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text/json/yaml)")
	return cmd
}

// boxGeometry is the printed form of a laid-out box. X/Y are the
// border-box origin; Width/Height the border-box size.
type boxGeometry struct {
	Tag      string         `json:"tag" yaml:"tag"`
	ID       string         `json:"id,omitempty" yaml:"id,omitempty"`
	X        float64        `json:"x" yaml:"x"`
	Y        float64        `json:"y" yaml:"y"`
	Width    float64        `json:"width" yaml:"width"`
	Height   float64        `json:"height" yaml:"height"`
	Hidden   bool           `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Children []*boxGeometry `json:"children,omitempty" yaml:"children,omitempty"`
}

type viewportGeometry struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

type geometryDump struct {
	Viewport viewportGeometry `json:"viewport" yaml:"viewport"`
	Boxes    []*boxGeometry   `json:"boxes" yaml:"boxes"`
}

func snapshot(boxes []*layout.Box) []*boxGeometry {
	out := make([]*boxGeometry, 0, len(boxes))
	for _, b := range boxes {
		r := b.BorderRect()
		g := &boxGeometry{
			X:        r.X,
			Y:        r.Y,
			Width:    r.Width,
			Height:   r.Height,
			Hidden:   b.Hidden,
			Children: snapshot(b.Children),
		}
		if b.Node != nil {
			g.Tag = b.Node.TagName
			g.ID = b.Node.ID()
		}
		if len(g.Children) == 0 {
			g.Children = nil
		}
		out = append(out, g)
	}
	return out
}

func writeGeometry(w io.Writer, format string, viewport layout.Size, boxes []*layout.Box) error {
	dump := geometryDump{
		Viewport: viewportGeometry{Width: viewport.Width, Height: viewport.Height},
		Boxes:    snapshot(boxes),
	}
	switch strings.ToLower(format) {
	case "text", "":
		fmt.Fprintf(w, "viewport %gx%g\n", viewport.Width, viewport.Height)
		writeText(w, dump.Boxes, 0)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
}

func writeText(w io.Writer, boxes []*boxGeometry, depth int) {
	for _, g := range boxes {
		name := g.Tag
		if g.ID != "" {
			name += "#" + g.ID
		}
		hidden := ""
		if g.Hidden {
			hidden = " hidden"
		}
		fmt.Fprintf(w, "%s%s (%g,%g) %gx%g%s\n", strings.Repeat("  ", depth), name, g.X, g.Y, g.Width, g.Height, hidden)
		writeText(w, g.Children, depth+1)
	}
}
