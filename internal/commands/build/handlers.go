// Package buildcmd exposes the documentation build as a validated command.
package buildcmd

import (
	"context"
	"strings"

	"github.com/goliatone/go-docpipe/internal/commands"
	"github.com/goliatone/go-docpipe/internal/generator"
	"github.com/goliatone/go-docpipe/internal/logging"
	"github.com/goliatone/go-docpipe/pkg/interfaces"
)

// BuildSiteHandler orchestrates build runs through the shared command
// handler foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided build
// service.
func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil {
			return generator.ErrPipelineRequired
		}

		result, err := service.Build(ctx, generator.BuildOptions{
			Directory: strings.TrimSpace(msg.Directory),
			FailFast:  msg.FailFast,
			DryRun:    msg.DryRun,
		})
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "build",
			},
		})
		return err
	}

	options := append([]commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("build_site"),
	}, opts...)

	return &BuildSiteHandler{inner: commands.NewHandler(exec, options...)}
}

// Execute conforms to command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
