package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

const (
	rootModule        = "sitebuilder"
	generationModule  = "sitebuilder.generation"
	imageryModule     = "sitebuilder.imagery"
	editorModule      = "sitebuilder.editor"
	persistenceModule = "sitebuilder.persistence"
	sitesModule       = "sitebuilder.sites"
	httpModule        = "sitebuilder.http"
)

const (
	fieldUserID  = "user_id"
	fieldBlockID = "block_id"
	fieldAction  = "action"
)

// ModuleLogger returns the provider's logger for module tagged with a
// "module" field. A nil provider yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module = strings.TrimSpace(module); module == "" {
		module = rootModule
	}
	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	if logger == nil {
		return NoOp()
	}
	return WithFields(logger, map[string]any{"module": module})
}

// GenerationLogger returns the logger namespace reserved for copy generation.
func GenerationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generationModule)
}

// ImageryLogger returns the logger namespace reserved for stock photo lookups.
func ImageryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, imageryModule)
}

// EditorLogger returns the logger namespace reserved for editor sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// PersistenceLogger returns the logger namespace reserved for the state store.
func PersistenceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, persistenceModule)
}

// SitesLogger returns the logger namespace reserved for generation and publishing.
func SitesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sitesModule)
}

// HTTPLogger returns the logger namespace reserved for the JSON API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithEditorContext enriches the logger with the user, block and action of an
// editor operation. Empty values are ignored.
func WithEditorContext(logger interfaces.Logger, userID, blockID, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(userID); trimmed != "" {
		fields[fieldUserID] = trimmed
	}
	if trimmed := strings.TrimSpace(blockID); trimmed != "" {
		fields[fieldBlockID] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp discards every entry.
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
