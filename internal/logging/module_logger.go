package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-docpipe/pkg/interfaces"
)

const (
	rootModule    = "docpipe"
	includeModule = "docpipe.include"
	tableModule   = "docpipe.table"
	linksModule   = "docpipe.links"
	buildModule   = "docpipe.build"
)

const (
	fieldDocumentPath  = "document_path"
	fieldDirectiveName = "directive"
	fieldTargetFile    = "file"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// IncludeLogger returns the logger namespace reserved for the include pass.
func IncludeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, includeModule)
}

// TableLogger returns the logger namespace reserved for the table pass.
func TableLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, tableModule)
}

// LinksLogger returns the logger namespace reserved for the link normalizer.
func LinksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, linksModule)
}

// BuildLogger returns the logger namespace reserved for build orchestration.
func BuildLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, buildModule)
}

// WithDirectiveContext enriches the provided logger with common directive
// fields such as the owning document, directive name, and target file. Empty
// values are ignored.
func WithDirectiveContext(logger interfaces.Logger, docPath, directive, file string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(docPath); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(directive); trimmed != "" {
		fields[fieldDirectiveName] = trimmed
	}
	if trimmed := strings.TrimSpace(file); trimmed != "" {
		fields[fieldTargetFile] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so passes can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
