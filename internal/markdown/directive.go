package markdown

import (
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindDirective identifies leaf directive nodes in the document tree.
var KindDirective = ast.NewNodeKind("Directive")

// Directive is a block node produced from single-line markup of the form
// ::name{key="value" ...}. Directives carry no nested content; the
// preprocessing passes either replace them wholesale or leave them in place.
type Directive struct {
	ast.BaseBlock

	// Name is the directive identifier, e.g. "include" or "yaml-table".
	Name string
	// Attrs holds the parsed attribute pairs from the brace list.
	Attrs map[string]string
}

// NewDirective creates a directive node with the supplied name and attributes.
func NewDirective(name string, attrs map[string]string) *Directive {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Directive{
		Name:  name,
		Attrs: attrs,
	}
}

// Kind implements ast.Node.
func (n *Directive) Kind() ast.NodeKind {
	return KindDirective
}

// Dump implements ast.Node.
func (n *Directive) Dump(source []byte, level int) {
	kv := map[string]string{
		"Name": n.Name,
	}
	for key, value := range n.Attrs {
		kv["Attr."+key] = value
	}
	ast.DumpHelper(n, source, level, kv, nil)
}

// Attr returns the named attribute value and whether it was present.
func (n *Directive) Attr(name string) (string, bool) {
	value, ok := n.Attrs[name]
	return value, ok
}

var (
	directivePattern = regexp.MustCompile(`^ {0,3}::([A-Za-z][A-Za-z0-9_-]*)\{(.*)\}\s*$`)
	attributePattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_-]*)\s*=\s*"([^"]*)"`)
)

type directiveParser struct{}

var defaultDirectiveParser = &directiveParser{}

// NewDirectiveParser returns the block parser for leaf directive lines.
func NewDirectiveParser() parser.BlockParser {
	return defaultDirectiveParser
}

func (p *directiveParser) Trigger() []byte {
	return []byte{':'}
}

func (p *directiveParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	match := directivePattern.FindSubmatch(line)
	if match == nil {
		return nil, parser.NoChildren
	}

	node := NewDirective(string(match[1]), parseAttributes(string(match[2])))
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (p *directiveParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (p *directiveParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
}

func (p *directiveParser) CanInterruptParagraph() bool {
	return false
}

func (p *directiveParser) CanAcceptIndentedLine() bool {
	return false
}

func parseAttributes(raw string) map[string]string {
	attrs := map[string]string{}
	for _, match := range attributePattern.FindAllStringSubmatch(raw, -1) {
		attrs[match[1]] = match[2]
	}
	return attrs
}

type directiveExtension struct{}

// Directives is a goldmark extender that wires the leaf directive block
// parser into an engine.
var Directives goldmark.Extender = &directiveExtension{}

func (e *directiveExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(NewDirectiveParser(), 100),
		),
	)
}
