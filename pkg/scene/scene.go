// Package scene loads layout scenes: a viewport, a tree of styled nodes,
// and optional scripts that run before layout.
//
// Scenes are YAML documents, or plain markup when the file ends in .html.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flexlay/pkg/html"

	"gopkg.in/yaml.v3"
)

// ErrNoRoot is returned for a scene that declares no nodes.
var ErrNoRoot = errors.New("scene: no root nodes")

// DefaultViewport is used when a scene does not set one.
var DefaultViewport = Viewport{Width: 800, Height: 600}

type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Node is one element of the scene tree.
type Node struct {
	Tag        string            `yaml:"tag"`
	ID         string            `yaml:"id"`
	Style      Style             `yaml:"style"`
	Attributes map[string]string `yaml:"attributes"`
	Children   []Node            `yaml:"children"`
}

// Scene is a parsed scene file. Exactly one of Nodes and Markup is set
// for a valid scene.
type Scene struct {
	Viewport Viewport `yaml:"viewport"`
	Nodes    []Node   `yaml:"nodes"`
	Markup   string   `yaml:"html"`
	Scripts  []string `yaml:"scripts"`
}

// Style is an inline declaration list. In YAML it may be written either
// as a string ("display: flex; gap: 4px") or as a mapping; mapping order
// is kept so later declarations still override earlier ones.
type Style string

func (s *Style) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*s = Style(value.Value)
		return nil
	case yaml.MappingNode:
		decls := make([]string, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			k, v := value.Content[i], value.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: style %q must be a scalar", v.Line, k.Value)
			}
			decls = append(decls, k.Value+": "+v.Value)
		}
		*s = Style(strings.Join(decls, "; "))
		return nil
	}
	return fmt.Errorf("line %d: style must be a string or a mapping", value.Line)
}

// Load reads a scene file. Files ending in .html or .htm are parsed as
// markup; everything else as YAML.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return &Scene{Viewport: DefaultViewport, Markup: string(data)}, nil
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a YAML scene. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	var sc Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(sc.Nodes) == 0 && strings.TrimSpace(sc.Markup) == "" {
		return nil, ErrNoRoot
	}
	if sc.Viewport.Width <= 0 {
		sc.Viewport.Width = DefaultViewport.Width
	}
	if sc.Viewport.Height <= 0 {
		sc.Viewport.Height = DefaultViewport.Height
	}
	return &sc, nil
}

// Document builds a fresh document for the scene. Each call returns an
// independent tree, so scripts run against one document never leak into
// the next.
func (sc *Scene) Document() (*html.Document, error) {
	var doc *html.Document
	if strings.TrimSpace(sc.Markup) != "" {
		parsed, err := html.Parse(sc.Markup)
		if err != nil {
			return nil, fmt.Errorf("parsing markup: %w", err)
		}
		doc = parsed
	} else {
		doc = html.NewDocument()
	}
	for i := range sc.Nodes {
		doc.Root.AddChild(sc.Nodes[i].build())
	}
	if len(doc.Root.Children) == 0 {
		return nil, ErrNoRoot
	}
	doc.Scripts = append(doc.Scripts, sc.Scripts...)
	return doc, nil
}

func (n *Node) build() *html.Node {
	tag := strings.ToLower(strings.TrimSpace(n.Tag))
	if tag == "" {
		tag = "div"
	}
	el := html.NewElement(tag)
	for k, v := range n.Attributes {
		el.SetAttribute(k, v)
	}
	if n.ID != "" {
		el.SetAttribute("id", n.ID)
	}
	if n.Style != "" {
		el.SetAttribute("style", string(n.Style))
	}
	for i := range n.Children {
		el.AddChild(n.Children[i].build())
	}
	return el
}
