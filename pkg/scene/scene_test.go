package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const rowScene = `
viewport:
  width: 400
  height: 300
nodes:
  - id: row
    style: "display: flex; width: 300px"
    children:
      - id: a
        style:
          flex-grow: 1
          height: 20px
      - tag: SPAN
        id: b
        attributes:
          data-kind: fixed
        style: "width: 50px; height: 20px"
scripts:
  - document.getElementById("a").style.flexGrow = "2";
`

func TestParse_RowScene(t *testing.T) {
	sc, err := Parse([]byte(rowScene))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Viewport.Width != 400 || sc.Viewport.Height != 300 {
		t.Errorf("viewport = %+v", sc.Viewport)
	}
	if len(sc.Scripts) != 1 {
		t.Errorf("got %d scripts, want 1", len(sc.Scripts))
	}

	doc, err := sc.Document()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("got %d root nodes, want 1", len(doc.Root.Children))
	}
	row := doc.Root.Children[0]
	if row.TagName != "div" || row.ID() != "row" {
		t.Errorf("row = <%s#%s>", row.TagName, row.ID())
	}
	if len(row.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(row.Children))
	}
	if style, _ := row.Children[0].GetAttribute("style"); style != "flex-grow: 1; height: 20px" {
		t.Errorf("mapping style = %q", style)
	}
	b := row.Children[1]
	if b.TagName != "span" {
		t.Errorf("tag = %q, want span", b.TagName)
	}
	if v, _ := b.GetAttribute("data-kind"); v != "fixed" {
		t.Errorf("data-kind = %q", v)
	}
	if len(doc.Scripts) != 1 {
		t.Errorf("document scripts = %d, want 1", len(doc.Scripts))
	}
}

func TestParse_DefaultViewport(t *testing.T) {
	sc, err := Parse([]byte("nodes:\n  - id: a\n"))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Viewport != DefaultViewport {
		t.Errorf("viewport = %+v, want %+v", sc.Viewport, DefaultViewport)
	}
}

func TestParse_NoRoot(t *testing.T) {
	_, err := Parse([]byte("viewport:\n  width: 10\n"))
	if !errors.Is(err, ErrNoRoot) {
		t.Fatalf("err = %v, want ErrNoRoot", err)
	}
}

func TestParse_UnknownField(t *testing.T) {
	if _, err := Parse([]byte("nodes:\n  - id: a\n    colour: red\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParse_BadStyle(t *testing.T) {
	if _, err := Parse([]byte("nodes:\n  - style: [1, 2]\n")); err == nil {
		t.Fatal("expected error for sequence style")
	}
}

func TestParse_Markup(t *testing.T) {
	sc, err := Parse([]byte("html: |\n  <div id=\"x\" style=\"display: flex\"><div></div></div>\n"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := sc.Document()
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Root.Children[0].ID(); got != "x" {
		t.Errorf("root id = %q", got)
	}
}

func TestDocument_Independent(t *testing.T) {
	sc, err := Parse([]byte(rowScene))
	if err != nil {
		t.Fatal(err)
	}
	first, _ := sc.Document()
	first.Root.Children[0].SetAttribute("style", "display: none")
	second, _ := sc.Document()
	if style, _ := second.Root.Children[0].GetAttribute("style"); style != "display: flex; width: 300px" {
		t.Errorf("second document style = %q", style)
	}
}

func TestLoad_Files(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "row.yaml")
	htmlPath := filepath.Join(dir, "row.html")
	if err := os.WriteFile(yamlPath, []byte(rowScene), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(htmlPath, []byte(`<div id="h"></div><script>1</script>`), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Nodes) != 1 {
		t.Errorf("yaml nodes = %d", len(sc.Nodes))
	}

	sc, err = Load(htmlPath)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := sc.Document()
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root.Children[0].ID() != "h" || len(doc.Scripts) != 1 {
		t.Errorf("html scene: id=%q scripts=%d", doc.Root.Children[0].ID(), len(doc.Scripts))
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestDocument_EmptyMarkup(t *testing.T) {
	sc := &Scene{Markup: "<!-- nothing -->"}
	if _, err := sc.Document(); !errors.Is(err, ErrNoRoot) {
		t.Fatalf("err = %v, want ErrNoRoot", err)
	}
}
