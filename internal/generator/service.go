package generator

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-docpipe/internal/logging"
	"github.com/goliatone/go-docpipe/internal/markdown"
	"github.com/goliatone/go-docpipe/internal/preprocess"
	"github.com/goliatone/go-docpipe/pkg/interfaces"
)

var (
	// ErrLoaderRequired indicates the build orchestrator was wired without a
	// document loader.
	ErrLoaderRequired = errors.New("generator: document loader is required")
	// ErrPipelineRequired indicates the build orchestrator was wired without
	// a preprocessing pipeline.
	ErrPipelineRequired = errors.New("generator: preprocessing pipeline is required")
)

// Service describes the documentation build contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
}

// Config captures runtime behaviour toggles for build runs.
type Config struct {
	ContentRoot string
	IndexFile   string
	// OutputDir is where the build manifest is written. Empty disables the
	// manifest.
	OutputDir string
	Workers   int
}

// Dependencies lists the collaborators a build run drives.
type Dependencies struct {
	Loader   *markdown.Loader
	Pipeline *preprocess.Pipeline
	Logger   interfaces.LoggerProvider
}

// BuildOptions narrows the scope of a single run.
type BuildOptions struct {
	// Directory restricts the run to documents under this content-root
	// relative directory. Empty processes the whole root.
	Directory string
	// FailFast stops scheduling new documents after the first failure.
	FailFast bool
	// DryRun processes documents but skips the manifest write.
	DryRun bool
}

// ProcessedDocument reports one successfully preprocessed document.
type ProcessedDocument struct {
	Path     string
	Route    string
	Checksum string
	Includes int
	Tables   int
	Links    int
}

// Diagnostic captures a per-document failure without aborting the run.
type Diagnostic struct {
	Path string
	Err  error
}

// BuildResult aggregates run metadata.
type BuildResult struct {
	RunID           uuid.UUID
	Documents       []ProcessedDocument
	Diagnostics     []Diagnostic
	DocumentsBuilt  int
	DocumentsFailed int
	ManifestPath    string
	Duration        time.Duration
	Errors          []error
	DryRun          bool
}

// NewService wires a build orchestrator from its configuration and
// collaborators.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Loader == nil {
		return nil, ErrLoaderRequired
	}
	if deps.Pipeline == nil {
		return nil, ErrPipelineRequired
	}

	return &service{
		cfg:    cfg,
		deps:   deps,
		logger: logging.BuildLogger(deps.Logger),
		now:    time.Now,
	}, nil
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.now()
	runID := uuid.New()

	dir := strings.TrimSpace(opts.Directory)
	if dir == "" {
		dir = "."
	}

	documents, err := s.deps.Loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("generator: load documents: %w", err)
	}

	s.logger.Info("build started", "run_id", runID.String(), "documents", len(documents))

	result := &BuildResult{
		RunID:       runID,
		Documents:   make([]ProcessedDocument, 0, len(documents)),
		Diagnostics: make([]Diagnostic, 0),
		DryRun:      opts.DryRun,
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if opts.FailFast {
		runCtx, cancel = context.WithCancel(ctx)
		defer cancel()
	}

	var mu sync.Mutex
	collect := func(doc ProcessedDocument, failure *Diagnostic) {
		mu.Lock()
		defer mu.Unlock()
		if failure != nil {
			result.Diagnostics = append(result.Diagnostics, *failure)
			result.DocumentsFailed++
			result.Errors = append(result.Errors, failure.Err)
			if cancel != nil {
				cancel()
			}
			return
		}
		result.Documents = append(result.Documents, doc)
		result.DocumentsBuilt++
	}

	workers := s.effectiveWorkerCount(len(documents))
	if workers <= 1 {
		for _, doc := range documents {
			if runCtx.Err() != nil {
				break
			}
			s.processDocument(runCtx, doc, collect)
		}
	} else {
		jobs := make(chan *markdown.Document)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for doc := range jobs {
					if runCtx.Err() != nil {
						continue
					}
					s.processDocument(runCtx, doc, collect)
				}
			}()
		}

	dispatch:
		for _, doc := range documents {
			select {
			case <-runCtx.Done():
				break dispatch
			case jobs <- doc:
			}
		}
		close(jobs)
		wg.Wait()
	}

	sort.Slice(result.Documents, func(i, j int) bool {
		return result.Documents[i].Path < result.Documents[j].Path
	})
	sort.Slice(result.Diagnostics, func(i, j int) bool {
		return result.Diagnostics[i].Path < result.Diagnostics[j].Path
	})

	result.Duration = time.Since(start)

	if !opts.DryRun && s.cfg.OutputDir != "" {
		manifest := newBuildManifest(runID, start, result.Duration)
		for _, doc := range result.Documents {
			manifest.addDocument(manifestDocument{
				Path:     doc.Path,
				Route:    doc.Route,
				Checksum: doc.Checksum,
				Includes: doc.Includes,
				Tables:   doc.Tables,
				Links:    doc.Links,
			})
		}
		target, err := manifest.write(s.cfg.OutputDir)
		if err != nil {
			result.Errors = append(result.Errors, err)
		} else {
			result.ManifestPath = target
		}
	}

	s.logger.Info("build finished",
		"run_id", runID.String(),
		"built", result.DocumentsBuilt,
		"failed", result.DocumentsFailed,
		"duration", result.Duration.String(),
	)

	if len(result.Errors) > 0 {
		return result, errors.Join(result.Errors...)
	}
	return result, nil
}

func (s *service) processDocument(ctx context.Context, doc *markdown.Document, collect func(ProcessedDocument, *Diagnostic)) {
	rel, err := filepath.Rel(s.cfg.ContentRoot, doc.Path)
	if err != nil {
		collect(ProcessedDocument{}, &Diagnostic{Path: doc.Path, Err: err})
		return
	}

	passResult, err := s.deps.Pipeline.Process(ctx, doc)
	if err != nil {
		s.logger.Error("document failed", "path", doc.Path, "error", err)
		collect(ProcessedDocument{}, &Diagnostic{Path: doc.Path, Err: err})
		return
	}

	collect(ProcessedDocument{
		Path:     filepath.ToSlash(rel),
		Route:    routeForDocument(rel, s.indexFile()),
		Checksum: hex.EncodeToString(doc.Checksum),
		Includes: passResult.IncludesExpanded,
		Tables:   passResult.TablesRendered,
		Links:    passResult.LinksRewritten,
	}, nil)
}

func (s *service) indexFile() string {
	if trimmed := strings.TrimSpace(s.cfg.IndexFile); trimmed != "" {
		return trimmed
	}
	return "index.md"
}

func (s *service) effectiveWorkerCount(documents int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > documents {
		workers = documents
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
