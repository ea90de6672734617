package preprocess

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-docpipe/internal/logging"
	"github.com/goliatone/go-docpipe/internal/markdown"
	"github.com/goliatone/go-docpipe/internal/structdata"
)

const tableDirective = "yaml-table"

// RenderTables replaces every ::yaml-table directive with a markdown table
// built from the directive's structured-data file. The first record's keys
// define the column set for all rows. Missing files, decode failures, and
// values that are not a non-empty sequence of mapping records leave the
// directive untouched and emit a warning. It returns the number of tables
// rendered.
func (p *Pipeline) RenderTables(ctx context.Context, doc *markdown.Document) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	refs := collectDirectives(doc.AST, tableDirective)
	if len(refs) == 0 {
		return 0, nil
	}

	var replacements []Replacement
	rendered := 0

	for _, ref := range refs {
		file, _ := ref.node.Attr("file")
		logger := logging.WithDirectiveContext(p.tableLog, doc.Path, tableDirective, file)

		if strings.TrimSpace(file) == "" {
			logger.Warn("yaml-table directive is missing its file attribute")
			continue
		}

		target := p.resolvePath(file)
		data, err := os.ReadFile(target)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("yaml-table target does not exist", "path", target)
			} else {
				logger.Warn("yaml-table target could not be read", "path", target, "error", err)
			}
			continue
		}

		value, err := p.decoder.Decode(data)
		if err != nil {
			logger.Warn("yaml-table data could not be decoded", "path", target, "error", err)
			continue
		}

		records, err := tableRecords(value)
		if err != nil {
			logger.Warn("yaml-table data is not tabular", "path", target, "error", err)
			continue
		}

		nodes, extended, err := p.parser.ParseFragment(doc.Source, []byte(renderTable(records)))
		if err != nil {
			logger.Warn("rendered table could not be parsed", "path", target, "error", err)
			continue
		}
		doc.Source = extended

		replacements = append(replacements, Replacement{
			Parent: ref.parent,
			Index:  ref.index,
			Nodes:  nodes,
		})
		rendered++
	}

	Apply(replacements)
	return rendered, nil
}

// tableRecords validates the decoded value as a non-empty ordered sequence of
// mapping records.
func tableRecords(value any) ([]*structdata.Map, error) {
	seq, ok := value.([]any)
	if !ok {
		return nil, errNotRecordSequence
	}
	if len(seq) == 0 {
		return nil, errEmptyRecordSequence
	}

	records := make([]*structdata.Map, 0, len(seq))
	for _, item := range seq {
		record, ok := item.(*structdata.Map)
		if !ok {
			return nil, errNotRecordSequence
		}
		records = append(records, record)
	}
	return records, nil
}

// renderTable assembles pipe-table markdown from the records. The header
// comes from the first record; rows never contribute additional columns.
func renderTable(records []*structdata.Map) string {
	header := records[0].Keys()

	var b strings.Builder
	writeRow(&b, header)

	separators := make([]string, len(header))
	for i := range separators {
		separators[i] = "---"
	}
	writeRow(&b, separators)

	for _, record := range records {
		cells := make([]string, 0, len(header))
		for _, key := range header {
			value, _ := record.Get(key)
			cells = append(cells, cellText(value))
		}
		writeRow(&b, cells)
	}

	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

// cellText renders a record value as a single-line table cell: trimmed, pipes
// escaped, newlines collapsed to spaces.
func cellText(value any) string {
	if value == nil {
		return ""
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", value))
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
