package preprocess

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-docpipe/internal/markdown"
)

const documentSuffix = ".md"

// NormalizeLinks rewrites every markdown link URL ending in the document-file
// suffix into a clean, depth-correct relative URL. Link nodes are mutated in
// place; the tree's shape never changes, so no replacement queue is needed.
// It returns the number of URLs rewritten.
//
// Under trailing-slash routing every document is served as a directory index,
// which places non-index documents one level deeper than their source file.
// The per-URL algorithm accounts for that shift.
func (p *Pipeline) NormalizeLinks(ctx context.Context, doc *markdown.Document) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	rel, err := p.documentRelPath(doc.Path)
	if err != nil {
		return 0, err
	}

	isIndex := path.Base(rel) == p.cfg.indexFile()
	depth := documentDepth(rel)

	rewritten := 0
	_ = ast.Walk(doc.AST, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		if out, changed := rewriteURL(string(link.Destination), isIndex, depth); changed {
			link.Destination = []byte(out)
			rewritten++
		}
		return ast.WalkContinue, nil
	})

	if rewritten > 0 {
		p.linksLog.Debug("normalized document links", "document_path", doc.Path, "rewritten", rewritten)
	}
	return rewritten, nil
}

// documentRelPath derives the document's slash-separated path relative to the
// content root. A document outside the root is a configuration defect and
// surfaces as a typed validation error rather than silently mis-rewritten
// links.
func (p *Pipeline) documentRelPath(docPath string) (string, error) {
	root := filepath.Clean(p.cfg.ContentRoot)

	rel, err := filepath.Rel(root, filepath.Clean(docPath))
	if err != nil {
		return "", outsideContentRoot(docPath, root)
	}

	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", outsideContentRoot(docPath, root)
	}
	return rel, nil
}

// documentDepth counts the directory segments between the content root and
// the document: zero for files directly under the root.
func documentDepth(rel string) int {
	dir := path.Dir(rel)
	if dir == "." {
		return 0
	}
	return strings.Count(dir, "/") + 1
}

// rewriteURL applies the per-URL normalization algorithm. It reports whether
// the URL was changed; external URLs, pure anchors, and URLs whose path does
// not end in the document suffix pass through untouched.
func rewriteURL(url string, isIndex bool, depth int) (string, bool) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "#") {
		return url, false
	}

	pathPart := url
	suffix := ""
	if idx := strings.IndexAny(url, "#?"); idx >= 0 {
		pathPart, suffix = url[:idx], url[idx:]
	}

	if !strings.HasSuffix(pathPart, documentSuffix) {
		return url, false
	}
	pathPart = strings.TrimSuffix(pathPart, documentSuffix)

	if strings.HasPrefix(pathPart, "/") {
		// Root-relative: rebuild from the content root. Non-index documents
		// are served one directory deeper, so they need one extra hop up.
		effectiveDepth := depth
		if !isIndex {
			effectiveDepth++
		}
		pathPart = strings.Repeat("../", effectiveDepth) + strings.TrimPrefix(pathPart, "/")
	} else if !isIndex {
		// Relative from a non-index document: counter the one-level shift of
		// the current document's trailing-slash URL.
		pathPart = "../" + pathPart
	}

	normalized := path.Clean(pathPart)
	if normalized == "." {
		normalized = ""
	}

	// A trailing "index" segment collapses: the directory itself is the
	// index document's clean URL.
	if normalized == "index" {
		normalized = ""
	} else if strings.HasSuffix(normalized, "/index") {
		normalized = strings.TrimSuffix(normalized, "index")
	}

	if normalized == "" {
		normalized = "./"
	}
	if !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}

	return normalized + suffix, true
}
