package markdown

import (
	"time"

	"github.com/yuin/goldmark/ast"
)

// Document is a parsed markdown source file flowing through the preprocessing
// pipeline. Source is the frontmatter-stripped body and grows as fragment
// parses extend the buffer; AST always reads from Source.
type Document struct {
	// Path is the document's source path as supplied by the host, typically
	// the content root joined with the file's relative location.
	Path string
	// FrontMatter carries the metadata block extracted from the file head.
	FrontMatter FrontMatter
	// Source holds the markdown body bytes backing the tree's segments.
	Source []byte
	// AST is the goldmark block tree mutated by the pipeline.
	AST ast.Node
	// LastModified records the source file's modification time.
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so build
	// runs can detect changes without re-reading unchanged files.
	Checksum []byte
}
