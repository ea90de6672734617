package markdown

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/goliatone/go-docpipe/pkg/interfaces"
)

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

func TestTreeParserParse(t *testing.T) {
	parser := NewTreeParser(interfaces.ParseOptions{})

	source := []byte("# Heading\n\nHello **world**\n")
	tree, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if tree.ChildCount() != 2 {
		t.Fatalf("expected 2 blocks, got %d", tree.ChildCount())
	}
	if tree.FirstChild().Kind() != ast.KindHeading {
		t.Fatalf("expected a heading first, got %v", tree.FirstChild().Kind())
	}
	if got := textOf(tree.FirstChild(), source); got != "Heading" {
		t.Fatalf("heading text mismatch: %q", got)
	}
}

func TestTreeParserParsesTables(t *testing.T) {
	parser := NewTreeParser(interfaces.ParseOptions{})

	source := []byte("| a | b |\n| --- | --- |\n| 1 | 2 |\n")
	tree, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if tree.FirstChild() == nil || tree.FirstChild().Kind() != east.KindTable {
		t.Fatalf("expected a table node, got %v", tree.FirstChild())
	}
}

func TestParseFragmentRebasesSegments(t *testing.T) {
	parser := NewTreeParser(interfaces.ParseOptions{})

	base := []byte("Existing document body.\n")
	fragment := []byte("New paragraph one.\n\nNew *paragraph* two.\n")

	blocks, combined, err := parser.ParseFragment(base, fragment)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}

	if !bytes.Equal(combined, append(append([]byte{}, base...), fragment...)) {
		t.Fatalf("expected combined buffer to be base+fragment")
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	// Shifted segments must read correctly from the combined buffer.
	if got := textOf(blocks[0], combined); got != "New paragraph one." {
		t.Fatalf("first block text mismatch: %q", got)
	}
	if got := textOf(blocks[1], combined); got != "New paragraph two." {
		t.Fatalf("second block text mismatch: %q", got)
	}
}

func TestParseFragmentEmptyContent(t *testing.T) {
	parser := NewTreeParser(interfaces.ParseOptions{})

	blocks, combined, err := parser.ParseFragment([]byte("base\n"), nil)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks for empty fragment, got %d", len(blocks))
	}
	if string(combined) != "base\n" {
		t.Fatalf("expected combined buffer to equal base, got %q", combined)
	}
}

func TestParseFragmentTable(t *testing.T) {
	parser := NewTreeParser(interfaces.ParseOptions{})

	base := []byte(strings.Repeat("x", 64))
	fragment := []byte("| a | b |\n| --- | --- |\n| 1 | 2 |\n")

	blocks, combined, err := parser.ParseFragment(base, fragment)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Kind() != east.KindTable {
		t.Fatalf("expected a single table block, got %#v", blocks)
	}

	text := textOf(blocks[0], combined)
	for _, want := range []string{"a", "b", "1", "2"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected table text to contain %q, got %q", want, text)
		}
	}
}

func TestParseFragmentConvertsAutolinks(t *testing.T) {
	parser := NewTreeParser(interfaces.ParseOptions{})

	base := []byte("base document\n")
	fragment := []byte("Visit <https://example.com/docs> today.\n")

	blocks, combined, err := parser.ParseFragment(base, fragment)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	var link *ast.Link
	var autolinks int
	_ = ast.Walk(blocks[0], func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			switch typed := n.(type) {
			case *ast.Link:
				link = typed
			case *ast.AutoLink:
				autolinks++
			}
		}
		return ast.WalkContinue, nil
	})

	if autolinks != 0 {
		t.Fatalf("expected autolinks to be converted, found %d", autolinks)
	}
	if link == nil || string(link.Destination) != "https://example.com/docs" {
		t.Fatalf("expected a value-based link node, got %#v", link)
	}
	if got := textOf(blocks[0], combined); got != "Visit https://example.com/docs today." {
		t.Fatalf("paragraph text mismatch: %q", got)
	}
}
