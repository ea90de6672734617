package docpipe

import (
	"errors"
	"strings"
)

var (
	// ErrContentRootRequired indicates the configuration lacks a content root.
	ErrContentRootRequired = errors.New("docpipe: content root is required")
	// ErrWorkersInvalid indicates a negative worker count.
	ErrWorkersInvalid = errors.New("docpipe: workers must be zero or positive")
)

// Config captures the runtime settings for a docpipe module instance.
type Config struct {
	// ContentRoot is the directory the documentation tree lives under. Every
	// processed document must resolve inside it.
	ContentRoot string
	// BasePath is the directory include and yaml-table file attributes
	// resolve against. Defaults to the content root.
	BasePath string
	// IndexFile is the reserved index document name (defaults to "index.md").
	IndexFile string
	// OutputDir is where build manifests are written. Empty disables the
	// manifest.
	OutputDir string
	// Workers bounds build concurrency. Zero selects a CPU-derived default.
	Workers int
	// SkipDrafts drops documents whose frontmatter marks them as drafts.
	SkipDrafts bool
	// Logging configures the go-logger backed provider.
	Logging LoggingConfig
}

// LoggingConfig mirrors the options of the go-logger adapter.
type LoggingConfig struct {
	// Disabled drops all log output.
	Disabled bool
	Level    string
	Format   string
	// AddSource annotates entries with file and line information.
	AddSource bool
}

// DefaultConfig returns a configuration with sensible defaults. The content
// root must still be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		IndexFile: "index.md",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports configuration errors before any wiring happens.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ContentRoot) == "" {
		return ErrContentRootRequired
	}
	if c.Workers < 0 {
		return ErrWorkersInvalid
	}
	return nil
}

func (c Config) basePath() string {
	if trimmed := strings.TrimSpace(c.BasePath); trimmed != "" {
		return trimmed
	}
	return c.ContentRoot
}

func (c Config) indexFile() string {
	if trimmed := strings.TrimSpace(c.IndexFile); trimmed != "" {
		return trimmed
	}
	return "index.md"
}
