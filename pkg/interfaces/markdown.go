package interfaces

import "github.com/yuin/goldmark/ast"

// MarkdownParser converts markdown text into a goldmark document tree. The
// preprocessing passes treat the parser as a stateless capability so a single
// instance can be shared across documents without locking.
type MarkdownParser interface {
	// Parse converts a whole markdown document into its block tree.
	Parse(source []byte) (ast.Node, error)
	// ParseFragment parses a generated markdown fragment in the context of an
	// existing source buffer. The fragment bytes are appended to base and the
	// returned block nodes read from the extended buffer, which is returned so
	// callers can keep a single source of truth for the document tree.
	ParseFragment(base []byte, fragment []byte) ([]ast.Node, []byte, error)
}

// ParseOptions customises markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
}
