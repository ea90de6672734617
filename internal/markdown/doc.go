// Package markdown owns the goldmark integration for the preprocessing
// pipeline: the leaf directive syntax extension, a tree-producing parser
// adapter with fragment support, frontmatter extraction, and filesystem
// document discovery.
package markdown
