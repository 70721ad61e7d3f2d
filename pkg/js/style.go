package js

import (
	"strings"
	"unicode"

	"flexlay/pkg/css"
	"flexlay/pkg/html"

	"github.com/dop251/goja"
)

// newStyleProxy creates a goja DynamicObject that maps JS camelCase
// property access to CSS kebab-case on the node's inline style attribute.
// Writes go through the css declaration parser, so shorthands such as
// `flex` or `gap` are stored as their longhands.
func newStyleProxy(vm *goja.Runtime, node *html.Node) goja.Value {
	return vm.NewDynamicObject(&styleAccessor{vm: vm, node: node})
}

type styleAccessor struct {
	vm   *goja.Runtime
	node *html.Node
}

func (s *styleAccessor) Get(key string) goja.Value {
	if val, ok := s.style().Get(camelToKebab(key)); ok {
		return s.vm.ToValue(val)
	}
	return s.vm.ToValue("")
}

func (s *styleAccessor) Set(key string, val goja.Value) bool {
	if val.String() == "" {
		return s.Delete(key)
	}
	style := s.style()
	css.ApplyDeclarations(style, camelToKebab(key)+": "+val.String())
	s.node.SetAttribute("style", style.String())
	return true
}

func (s *styleAccessor) Has(key string) bool {
	return true
}

func (s *styleAccessor) Delete(key string) bool {
	style := s.style()
	delete(style.Properties, camelToKebab(key))
	s.node.SetAttribute("style", style.String())
	return true
}

func (s *styleAccessor) Keys() []string {
	props := s.style().Properties
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	return keys
}

func (s *styleAccessor) style() *css.Style {
	attr, _ := s.node.GetAttribute("style")
	return css.ParseInlineStyle(attr)
}

// camelToKebab converts a JS camelCase property name to CSS kebab-case.
func camelToKebab(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
