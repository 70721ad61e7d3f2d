package html

import "fmt"

// Parser builds a Document from scene markup. Only elements and their
// attributes are kept: text is dropped, <style> bodies are ignored and
// <script> bodies become Document.Scripts.
type Parser struct {
	tokenizer *Tokenizer
	doc       *Document
	stack     []*Node
}

func NewParser(markup string) *Parser {
	return &Parser{
		tokenizer: NewTokenizer(markup),
		doc:       NewDocument(),
	}
}

func (p *Parser) Parse() (*Document, error) {
	p.stack = []*Node{p.doc.Root}

	for {
		token, err := p.tokenizer.NextToken()
		if err != nil {
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		switch token.Type {
		case TokenEOF:
			return p.doc, nil

		case TokenStartTag:
			switch token.TagName {
			case "script":
				if !token.SelfClosing {
					p.doc.Scripts = append(p.doc.Scripts, p.tokenizer.ReadRawUntil("script"))
				}
				continue
			case "style":
				if !token.SelfClosing {
					p.tokenizer.ReadRawUntil("style")
				}
				continue
			case "html", "head", "body":
				// Document wrappers collapse into the root.
				continue
			}

			node := NewElement(token.TagName)
			for k, v := range token.Attributes {
				node.Attributes[k] = v
			}
			p.currentParent().AddChild(node)
			if !token.SelfClosing && !isVoid(token.TagName) {
				p.stack = append(p.stack, node)
			}

		case TokenEndTag:
			p.closeTag(token.TagName)

		case TokenText:
			// No text layout.
		}
	}
}

func (p *Parser) currentParent() *Node {
	return p.stack[len(p.stack)-1]
}

// closeTag pops up to and including the innermost open tagName. Stray end
// tags are ignored.
func (p *Parser) closeTag(tagName string) {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == tagName {
			p.stack = p.stack[:i]
			return
		}
	}
}

func isVoid(tagName string) bool {
	switch tagName {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// Parse parses scene markup into a Document.
func Parse(markup string) (*Document, error) {
	return NewParser(markup).Parse()
}
