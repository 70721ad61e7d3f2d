package js

import (
	"fmt"
	"io"
	"os"

	"flexlay/pkg/html"

	"github.com/dop251/goja"
)

// Engine runs scene scripts against a document before it is laid out.
// Scripts see a `document` global for reading and mutating the node tree,
// a `console`, and a read-only `viewport` with the current width/height.
type Engine struct {
	vm      *goja.Runtime
	console *consoleAPI
}

// New creates a new JS engine with a fresh goja runtime. Console output
// goes to stdout and stderr until SetOutput is called.
func New() *Engine {
	vm := goja.New()
	e := &Engine{
		vm:      vm,
		console: &consoleAPI{out: os.Stdout, errOut: os.Stderr},
	}
	e.console.register(vm)
	e.SetViewport(0, 0)
	return e
}

// SetOutput redirects console.log to out and console.warn/error to errOut.
func (e *Engine) SetOutput(out, errOut io.Writer) {
	e.console.out = out
	e.console.errOut = errOut
}

// SetViewport publishes the viewport size to scripts.
func (e *Engine) SetViewport(width, height float64) {
	viewport := e.vm.NewObject()
	viewport.Set("width", width)
	viewport.Set("height", height)
	e.vm.Set("viewport", viewport)
}

// Execute runs all scripts from the document against its DOM, in order.
// The first failing script stops execution; earlier mutations stay.
func (e *Engine) Execute(doc *html.Document) error {
	registerDocument(e.vm, doc)

	for i, script := range doc.Scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}
