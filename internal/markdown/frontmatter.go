package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter models the metadata block documentation sources carry. Fields
// stay flexible through the Custom map for site- or theme-specific values.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description" json:"description"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Draft       bool           `yaml:"draft" json:"draft"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
}

// ParseFrontMatter extracts metadata and markdown body content from the
// provided source bytes. It returns the structured frontmatter, the markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, body, nil
}
