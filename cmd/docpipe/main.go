package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	docpipe "github.com/goliatone/go-docpipe"
)

func main() {
	var (
		contentRoot = flag.String("content", "./docs", "content root directory")
		basePath    = flag.String("base", "", "base path for directive file attributes (defaults to the content root)")
		indexFile   = flag.String("index", "index.md", "reserved index document name")
		outputDir   = flag.String("out", "", "directory for the build manifest (empty disables it)")
		directory   = flag.String("dir", "", "restrict the run to this content-root relative directory")
		workers     = flag.Int("workers", 0, "build concurrency (0 selects a CPU-derived default)")
		skipDrafts  = flag.Bool("skip-drafts", false, "skip documents marked as drafts")
		failFast    = flag.Bool("fail-fast", false, "stop after the first document failure")
		dryRun      = flag.Bool("dry-run", false, "process documents without writing the manifest")
		logLevel    = flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
		logFormat   = flag.String("log-format", "console", "log format (json, console, pretty)")
	)
	flag.Parse()

	cfg := docpipe.DefaultConfig()
	cfg.ContentRoot = *contentRoot
	cfg.BasePath = *basePath
	cfg.IndexFile = *indexFile
	cfg.OutputDir = *outputDir
	cfg.Workers = *workers
	cfg.SkipDrafts = *skipDrafts
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat

	module, err := docpipe.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docpipe: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := module.Build(ctx, docpipe.BuildOptions{
		Directory: *directory,
		FailFast:  *failFast,
		DryRun:    *dryRun,
	})
	if result != nil {
		fmt.Printf("run %s: %d built, %d failed in %s\n",
			result.RunID, result.DocumentsBuilt, result.DocumentsFailed, result.Duration)
		for _, diagnostic := range result.Diagnostics {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", diagnostic.Path, diagnostic.Err)
		}
		if result.ManifestPath != "" {
			fmt.Printf("manifest: %s\n", result.ManifestPath)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "docpipe: build failed: %v\n", err)
		os.Exit(1)
	}
}
