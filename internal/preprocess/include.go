package preprocess

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-docpipe/internal/logging"
	"github.com/goliatone/go-docpipe/internal/markdown"
)

const includeDirective = "include"

// ExpandIncludes replaces every ::include directive in the document with the
// parsed content of its target file, optionally sliced by start/end text
// markers. Missing files or attributes leave the directive untouched and emit
// a warning; the pass never fails the document. It returns the number of
// directives expanded.
//
// Expansion is single-pass: include directives that arrive inside included
// content are not processed again.
func (p *Pipeline) ExpandIncludes(ctx context.Context, doc *markdown.Document) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	refs := collectDirectives(doc.AST, includeDirective)
	if len(refs) == 0 {
		return 0, nil
	}

	var replacements []Replacement
	expanded := 0

	for _, ref := range refs {
		file, _ := ref.node.Attr("file")
		logger := logging.WithDirectiveContext(p.includeLog, doc.Path, includeDirective, file)

		if strings.TrimSpace(file) == "" {
			logger.Warn("include directive is missing its file attribute")
			continue
		}

		target := p.resolvePath(file)
		data, err := os.ReadFile(target)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("include target does not exist", "path", target)
			} else {
				logger.Warn("include target could not be read", "path", target, "error", err)
			}
			continue
		}

		content := sliceByMarkers(string(data), ref.node.Attrs["start"], ref.node.Attrs["end"])

		nodes, extended, err := p.parser.ParseFragment(doc.Source, []byte(content))
		if err != nil {
			logger.Warn("include content could not be parsed", "path", target, "error", err)
			continue
		}
		doc.Source = extended

		replacements = append(replacements, Replacement{
			Parent: ref.parent,
			Index:  ref.index,
			Nodes:  nodes,
		})
		expanded++
	}

	Apply(replacements)
	return expanded, nil
}

// sliceByMarkers cuts content down to the region between the start and end
// markers. A marker that is absent from the content is a silent no-op, so
// authors can share marker conventions across files that do not all use them.
func sliceByMarkers(content string, start string, end string) string {
	if start != "" {
		if idx := strings.Index(content, start); idx >= 0 {
			content = content[idx+len(start):]
		}
	}
	if end != "" {
		if idx := strings.Index(content, end); idx >= 0 {
			content = content[:idx]
		}
	}
	return strings.TrimSpace(content)
}
