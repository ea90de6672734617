package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-docpipe/pkg/interfaces"
)

// LoaderConfig configures how markdown files are discovered within a content
// root.
type LoaderConfig struct {
	// ContentRoot is the directory the filesystem is rooted at; stored paths
	// are reported relative to it but joined back for host consumption.
	ContentRoot string
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// SkipDrafts drops documents whose frontmatter marks them as drafts.
	SkipDrafts bool
}

// Loader turns filesystem paths into parsed documents ready for the
// preprocessing pipeline.
type Loader struct {
	fs          fs.FS
	parser      interfaces.MarkdownParser
	contentRoot string
	pattern     string
	recursive   bool
	skipDrafts  bool
}

// NewLoader constructs a Loader over the provided filesystem. The parser is
// used to build each document's block tree from its frontmatter-stripped body.
func NewLoader(filesystem fs.FS, parser interfaces.MarkdownParser, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:          filesystem,
		parser:      parser,
		contentRoot: filepath.Clean(cfg.ContentRoot),
		pattern:     pattern,
		recursive:   cfg.Recursive,
		skipDrafts:  cfg.SkipDrafts,
	}
}

// LoadFile reads and parses a single markdown document. The path is
// interpreted relative to the content root.
func (l *Loader) LoadFile(ctx context.Context, rel string) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel = path.Clean(filepath.ToSlash(rel))

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", rel, err)
	}

	tree, err := l.parser.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("markdown loader parse %s: %w", rel, err)
	}

	sum := sha256.Sum256(data)

	return &Document{
		Path:         filepath.Join(l.contentRoot, filepath.FromSlash(rel)),
		FrontMatter:  meta,
		Source:       body,
		AST:          tree,
		LastModified: info.ModTime(),
		Checksum:     sum[:],
	}, nil
}

// LoadDirectory discovers markdown files under dir (relative to the content
// root) and returns parsed documents in stable path order.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root := path.Clean(filepath.ToSlash(dir))
	if root == "" {
		root = "."
	}

	var matches []string
	walkErr := fs.WalkDir(l.fs, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !l.recursive && p != root {
				return fs.SkipDir
			}
			return nil
		}
		ok, matchErr := path.Match(l.pattern, path.Base(p))
		if matchErr != nil {
			return fmt.Errorf("markdown loader pattern %q: %w", l.pattern, matchErr)
		}
		if ok {
			matches = append(matches, p)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("markdown loader walk %s: %w", root, walkErr)
	}

	sort.Strings(matches)

	documents := make([]*Document, 0, len(matches))
	for _, match := range matches {
		doc, err := l.LoadFile(ctx, match)
		if err != nil {
			return nil, err
		}
		if l.skipDrafts && doc.FrontMatter.Draft {
			continue
		}
		documents = append(documents, doc)
	}
	return documents, nil
}
