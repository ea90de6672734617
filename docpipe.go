// Package docpipe preprocesses markdown documentation trees for static site
// builds: include directives expand into parsed content, yaml-table
// directives render into markdown tables, and document links are rewritten
// into clean depth-correct URLs.
package docpipe

import (
	"context"
	"os"

	buildcmd "github.com/goliatone/go-docpipe/internal/commands/build"
	"github.com/goliatone/go-docpipe/internal/generator"
	"github.com/goliatone/go-docpipe/internal/logging"
	"github.com/goliatone/go-docpipe/internal/logging/gologger"
	"github.com/goliatone/go-docpipe/internal/markdown"
	"github.com/goliatone/go-docpipe/internal/preprocess"
	"github.com/goliatone/go-docpipe/internal/structdata"
	"github.com/goliatone/go-docpipe/pkg/interfaces"
)

// Document exports the parsed document type consumers receive.
type Document = markdown.Document

// FrontMatter exports the document metadata type.
type FrontMatter = markdown.FrontMatter

// Pipeline exports the preprocessing pipeline contract.
type Pipeline = preprocess.Pipeline

// ProcessResult exports the per-document pass counters.
type ProcessResult = preprocess.Result

// Loader exports the document loader.
type Loader = markdown.Loader

// BuildService exports the build orchestrator contract.
type BuildService = generator.Service

// BuildOptions exports the per-run build options.
type BuildOptions = generator.BuildOptions

// BuildResult exports the aggregated build metadata.
type BuildResult = generator.BuildResult

// Module is the top level docpipe runtime facade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	parser   interfaces.MarkdownParser
	loader   *markdown.Loader
	pipeline *preprocess.Pipeline
	builder  generator.Service
	build    *buildcmd.BuildSiteHandler
}

// Option overrides a wired dependency during construction.
type Option func(*Module)

// WithLoggerProvider replaces the go-logger backed provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// WithParser replaces the goldmark backed markdown parser.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(m *Module) {
		m.parser = parser
	}
}

// New wires a module from the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil && !cfg.Logging.Disabled {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if m.parser == nil {
		m.parser = markdown.NewTreeParser(interfaces.ParseOptions{})
	}

	m.loader = markdown.NewLoader(os.DirFS(cfg.ContentRoot), m.parser, markdown.LoaderConfig{
		ContentRoot: cfg.ContentRoot,
		Recursive:   true,
		SkipDrafts:  cfg.SkipDrafts,
	})

	pipeline, err := preprocess.New(preprocess.Config{
		BasePath:    cfg.basePath(),
		ContentRoot: cfg.ContentRoot,
		IndexFile:   cfg.indexFile(),
	}, m.parser, structdata.NewDecoder(), m.provider)
	if err != nil {
		return nil, err
	}
	m.pipeline = pipeline

	builder, err := generator.NewService(generator.Config{
		ContentRoot: cfg.ContentRoot,
		IndexFile:   cfg.indexFile(),
		OutputDir:   cfg.OutputDir,
		Workers:     cfg.Workers,
	}, generator.Dependencies{
		Loader:   m.loader,
		Pipeline: pipeline,
		Logger:   m.provider,
	})
	if err != nil {
		return nil, err
	}
	m.builder = builder

	m.build = buildcmd.NewBuildSiteHandler(builder, logging.ModuleLogger(m.provider, ""))

	return m, nil
}

// Loader returns the configured document loader.
func (m *Module) Loader() *Loader {
	return m.loader
}

// Pipeline returns the configured preprocessing pipeline.
func (m *Module) Pipeline() *Pipeline {
	return m.pipeline
}

// Builder returns the configured build orchestrator.
func (m *Module) Builder() BuildService {
	return m.builder
}

// Process loads one content-root relative document and runs the full pass
// sequence over it.
func (m *Module) Process(ctx context.Context, rel string) (*Document, *ProcessResult, error) {
	doc, err := m.loader.LoadFile(ctx, rel)
	if err != nil {
		return nil, nil, err
	}
	result, err := m.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, result, nil
}

// Build runs the whole content tree through the pipeline via the validated
// build command.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	var result *BuildResult
	msg := buildcmd.BuildSiteCommand{
		Directory: opts.Directory,
		FailFast:  opts.FailFast,
		DryRun:    opts.DryRun,
		ResultCallback: func(envelope buildcmd.ResultEnvelope) {
			result = envelope.Result
		},
	}
	if err := m.build.Execute(ctx, msg); err != nil {
		return result, err
	}
	return result, nil
}
