package preprocess

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-docpipe/internal/markdown"
	"github.com/goliatone/go-docpipe/internal/structdata"
	"github.com/goliatone/go-docpipe/pkg/interfaces"
)

func newTestPipeline(t *testing.T, cfg Config) *Pipeline {
	t.Helper()

	parser := markdown.NewTreeParser(interfaces.ParseOptions{})
	pipeline, err := New(cfg, parser, structdata.NewDecoder(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return pipeline
}

func newTestDocument(t *testing.T, path string, source string) *markdown.Document {
	t.Helper()

	parser := markdown.NewTreeParser(interfaces.ParseOptions{})
	tree, err := parser.Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return &markdown.Document{
		Path:   path,
		Source: []byte(source),
		AST:    tree,
	}
}

// textOf extracts the plain text of a subtree against the document's source
// buffer.
func textOf(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := c.(type) {
		case *ast.Text:
			b.Write(typed.Segment.Value(source))
		case *ast.String:
			b.Write(typed.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// blockTexts returns the extracted text of every top-level block in document
// order.
func blockTexts(doc *markdown.Document) []string {
	var texts []string
	for child := doc.AST.FirstChild(); child != nil; child = child.NextSibling() {
		texts = append(texts, textOf(child, doc.Source))
	}
	return texts
}

func countDirectives(root ast.Node, name string) int {
	count := 0
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if directive, ok := n.(*markdown.Directive); ok && directive.Name == name {
			count++
		}
		return ast.WalkContinue, nil
	})
	return count
}
