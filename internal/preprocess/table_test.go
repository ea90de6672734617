package preprocess

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/goliatone/go-docpipe/internal/structdata"
)

func TestRenderTableEscapesCells(t *testing.T) {
	first := structdata.NewMap()
	first.Set("a", 1)
	first.Set("b", 2)

	second := structdata.NewMap()
	second.Set("a", 3)
	second.Set("b", "x|y")

	rendered := renderTable([]*structdata.Map{first, second})

	lines := strings.Split(strings.TrimSpace(rendered), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 table lines, got %#v", lines)
	}
	if lines[0] != "| a | b |" {
		t.Fatalf("header mismatch: %q", lines[0])
	}
	if lines[1] != "| --- | --- |" {
		t.Fatalf("separator mismatch: %q", lines[1])
	}
	if lines[3] != `| 3 | x\|y |` {
		t.Fatalf("expected escaped pipe in data row, got %q", lines[3])
	}
}

func TestRenderTableHeaderFromFirstRecordOnly(t *testing.T) {
	first := structdata.NewMap()
	first.Set("name", "alpha")

	second := structdata.NewMap()
	second.Set("name", "beta")
	second.Set("extra", "ignored")

	rendered := renderTable([]*structdata.Map{first, second})

	if strings.Contains(rendered, "extra") {
		t.Fatalf("later records must not contribute columns: %q", rendered)
	}
	if !strings.Contains(rendered, "| beta |") {
		t.Fatalf("expected second record row, got %q", rendered)
	}
}

func TestCellText(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"int", 42, "42"},
		{"trimmed", "  padded  ", "padded"},
		{"pipes", "x|y", `x\|y`},
		{"newlines", "line one\nline two", "line one line two"},
		{"windows newlines", "one\r\ntwo", "one two"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cellText(tc.value); got != tc.want {
				t.Fatalf("cellText(%#v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestRenderTablesReplacesDirective(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "people.yaml", "- name: ada\n  role: engineer\n- name: grace\n  role: admiral\n")

	pipeline := newTestPipeline(t, Config{BasePath: dir, ContentRoot: dir})
	doc := newTestDocument(t, filepath.Join(dir, "index.md"), "::yaml-table{file=\"people.yaml\"}\n")

	rendered, err := pipeline.RenderTables(context.Background(), doc)
	if err != nil {
		t.Fatalf("RenderTables: %v", err)
	}
	if rendered != 1 {
		t.Fatalf("expected 1 rendered table, got %d", rendered)
	}

	var table ast.Node
	for child := doc.AST.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Kind() == east.KindTable {
			table = child
			break
		}
	}
	if table == nil {
		t.Fatalf("expected a table node in the document tree")
	}

	text := textOf(table, doc.Source)
	for _, want := range []string{"name", "role", "ada", "grace", "admiral"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected table text to contain %q, got %q", want, text)
		}
	}
}

func TestRenderTablesInvalidDataLeavesDirective(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty sequence", "[]\n"},
		{"scalar", "just a string\n"},
		{"mapping", "a: 1\n"},
		{"sequence of scalars", "- 1\n- 2\n"},
		{"malformed", ":\n  - {[\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "data.yaml", tc.content)

			pipeline := newTestPipeline(t, Config{BasePath: dir, ContentRoot: dir})
			doc := newTestDocument(t, filepath.Join(dir, "index.md"), "::yaml-table{file=\"data.yaml\"}\n")

			rendered, err := pipeline.RenderTables(context.Background(), doc)
			if err != nil {
				t.Fatalf("RenderTables: %v", err)
			}
			if rendered != 0 {
				t.Fatalf("expected no rendered tables, got %d", rendered)
			}
			if countDirectives(doc.AST, "yaml-table") != 1 {
				t.Fatalf("expected the directive to remain in the tree")
			}
		})
	}
}

func TestRenderTablesMissingFileLeavesDirective(t *testing.T) {
	dir := t.TempDir()

	pipeline := newTestPipeline(t, Config{BasePath: dir, ContentRoot: dir})
	doc := newTestDocument(t, filepath.Join(dir, "index.md"), "::yaml-table{file=\"absent.yaml\"}\n")

	rendered, err := pipeline.RenderTables(context.Background(), doc)
	if err != nil {
		t.Fatalf("RenderTables: %v", err)
	}
	if rendered != 0 {
		t.Fatalf("expected no rendered tables, got %d", rendered)
	}
	if countDirectives(doc.AST, "yaml-table") != 1 {
		t.Fatalf("expected the directive to remain in the tree")
	}
}
