package buildcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-docpipe/internal/generator"
)

const buildSiteMessageType = "docpipe.build"

// ResultCallback receives the build result produced by a run. The callback is
// optional and invoked synchronously from the handler.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a build command execution.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand runs the preprocessing pipeline over the content tree.
type BuildSiteCommand struct {
	Directory      string         `json:"directory,omitempty"`
	FailFast       bool           `json:"fail_fast,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures the directory scope, when present, is a sane relative path.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	if dir := strings.TrimSpace(m.Directory); dir != "" {
		if strings.HasPrefix(dir, "/") {
			errs["directory"] = validation.NewError("docpipe.build.directory_absolute", "directory must be relative to the content root")
		} else if dir == ".." || strings.HasPrefix(dir, "../") {
			errs["directory"] = validation.NewError("docpipe.build.directory_escape", "directory must not escape the content root")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
