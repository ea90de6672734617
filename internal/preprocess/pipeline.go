// Package preprocess rewrites parsed markdown document trees before a site
// build renders them: include directives expand into parsed fragments,
// yaml-table directives render into tables, and document links are rewritten
// into clean, depth-correct relative URLs.
package preprocess

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-docpipe/internal/logging"
	"github.com/goliatone/go-docpipe/internal/markdown"
	"github.com/goliatone/go-docpipe/pkg/interfaces"
)

const defaultIndexFile = "index.md"

// Config captures the immutable per-run settings shared by every document.
type Config struct {
	// BasePath is the directory include and yaml-table file attributes
	// resolve against.
	BasePath string
	// ContentRoot is the directory all documents must live under; link
	// normalization derives each document's route from it.
	ContentRoot string
	// IndexFile is the reserved file name marking index documents
	// (defaults to "index.md").
	IndexFile string
}

func (c Config) indexFile() string {
	if trimmed := strings.TrimSpace(c.IndexFile); trimmed != "" {
		return trimmed
	}
	return defaultIndexFile
}

// Pipeline runs the three preprocessing passes over parsed documents. A
// single instance is safe to share across documents processed concurrently:
// all mutable state lives on the documents themselves.
type Pipeline struct {
	cfg     Config
	parser  interfaces.MarkdownParser
	decoder interfaces.DataDecoder

	includeLog interfaces.Logger
	tableLog   interfaces.Logger
	linksLog   interfaces.Logger
}

// New wires a pipeline from its injected capabilities. The parser and decoder
// are required; the logger provider may be nil, in which case diagnostics are
// dropped.
func New(cfg Config, parser interfaces.MarkdownParser, decoder interfaces.DataDecoder, provider interfaces.LoggerProvider) (*Pipeline, error) {
	if parser == nil {
		return nil, ErrParserRequired
	}
	if decoder == nil {
		return nil, ErrDecoderRequired
	}

	return &Pipeline{
		cfg:        cfg,
		parser:     parser,
		decoder:    decoder,
		includeLog: logging.IncludeLogger(provider),
		tableLog:   logging.TableLogger(provider),
		linksLog:   logging.LinksLogger(provider),
	}, nil
}

// Result aggregates per-document pass counters.
type Result struct {
	IncludesExpanded int
	TablesRendered   int
	LinksRewritten   int
}

// Process runs the full pass sequence over one document: include expansion,
// table rendering, then link normalization. Directive failures degrade to
// warnings and leave the directive in place; only the link normalizer's
// content-root precondition aborts the document.
func (p *Pipeline) Process(ctx context.Context, doc *markdown.Document) (*Result, error) {
	includes, err := p.ExpandIncludes(ctx, doc)
	if err != nil {
		return nil, err
	}

	tables, err := p.RenderTables(ctx, doc)
	if err != nil {
		return nil, err
	}

	links, err := p.NormalizeLinks(ctx, doc)
	if err != nil {
		return nil, err
	}

	return &Result{
		IncludesExpanded: includes,
		TablesRendered:   tables,
		LinksRewritten:   links,
	}, nil
}

// resolvePath joins a directive file attribute with the configured base path,
// leaving absolute paths untouched.
func (p *Pipeline) resolvePath(file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Join(p.cfg.BasePath, file)
}
