package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-docpipe/pkg/interfaces"
)

// TreeParser implements interfaces.MarkdownParser using the goldmark engine.
// The parser is intentionally stateless so callers can reuse a single instance
// across documents without additional locking.
type TreeParser struct {
	md goldmark.Markdown
}

// NewTreeParser constructs a parser with the requested named extensions (GFM
// by default, which covers the table syntax the preprocessing passes emit).
// The leaf directive extension is always enabled.
func NewTreeParser(opts interfaces.ParseOptions) *TreeParser {
	exts := collectExtensions(opts.Extensions)
	exts = append(exts, Directives)

	return &TreeParser{
		md: goldmark.New(
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithExtensions(exts...),
		),
	}
}

// Parse satisfies interfaces.MarkdownParser by converting a whole document
// into its goldmark block tree.
func (p *TreeParser) Parse(source []byte) (ast.Node, error) {
	return p.md.Parser().Parse(text.NewReader(source)), nil
}

// ParseFragment parses a generated markdown fragment and rebases it onto an
// existing source buffer. The fragment is parsed standalone, autolinks are
// converted to value-based link nodes (their source segments cannot be
// relocated), and every remaining segment is shifted by len(base) so the
// resulting nodes read from the returned extended buffer.
func (p *TreeParser) ParseFragment(base []byte, fragment []byte) ([]ast.Node, []byte, error) {
	doc := p.md.Parser().Parse(text.NewReader(fragment))

	if err := relocateAutoLinks(doc, fragment); err != nil {
		return nil, nil, err
	}
	if err := shiftSegments(doc, len(base)); err != nil {
		return nil, nil, err
	}

	combined := make([]byte, 0, len(base)+len(fragment))
	combined = append(combined, base...)
	combined = append(combined, fragment...)

	var blocks []ast.Node
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		blocks = append(blocks, child)
	}
	return blocks, combined, nil
}

var _ interfaces.MarkdownParser = (*TreeParser)(nil)

// relocateAutoLinks swaps autolink nodes for equivalent link nodes whose
// destination and label are stored by value. Autolinks keep their text in an
// inaccessible segment-backed node, so they are the one construct that cannot
// survive a segment shift.
func relocateAutoLinks(root ast.Node, source []byte) error {
	type swap struct {
		parent ast.Node
		target *ast.AutoLink
	}

	var swaps []swap
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if auto, ok := n.(*ast.AutoLink); ok {
			swaps = append(swaps, swap{parent: auto.Parent(), target: auto})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return fmt.Errorf("markdown fragment: collect autolinks: %w", err)
	}

	for _, s := range swaps {
		link := ast.NewLink()
		link.Destination = s.target.URL(source)
		link.AppendChild(link, ast.NewString(s.target.Label(source)))
		s.parent.ReplaceChild(s.parent, s.target, link)
	}
	return nil
}

// shiftSegments rebases every source segment in the subtree by offset.
func shiftSegments(root ast.Node, offset int) error {
	if offset == 0 {
		return nil
	}

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if n.Type() != ast.TypeInline {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				lines.Set(i, shiftSegment(lines.At(i), offset))
			}
		}

		switch typed := n.(type) {
		case *ast.Text:
			typed.Segment = shiftSegment(typed.Segment, offset)
		case *ast.RawHTML:
			for i := 0; i < typed.Segments.Len(); i++ {
				typed.Segments.Set(i, shiftSegment(typed.Segments.At(i), offset))
			}
		case *ast.HTMLBlock:
			if typed.ClosureLine.Start >= 0 {
				typed.ClosureLine = shiftSegment(typed.ClosureLine, offset)
			}
		case *ast.FencedCodeBlock:
			// Info is held outside the child list, so the walk misses it.
			if typed.Info != nil {
				typed.Info.Segment = shiftSegment(typed.Info.Segment, offset)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return fmt.Errorf("markdown fragment: shift segments: %w", err)
	}
	return nil
}

func shiftSegment(s text.Segment, offset int) text.Segment {
	return text.Segment{
		Start:   s.Start + offset,
		Stop:    s.Stop + offset,
		Padding: s.Padding,
	}
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
