package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitebuilder/internal/catalog"
	"github.com/goliatone/go-sitebuilder/internal/document"
	"github.com/goliatone/go-sitebuilder/internal/editor"
	"github.com/goliatone/go-sitebuilder/internal/generation"
	"github.com/goliatone/go-sitebuilder/internal/imagery"
	"github.com/goliatone/go-sitebuilder/internal/onboarding"
	"github.com/goliatone/go-sitebuilder/internal/persistence"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/goliatone/go-sitebuilder/website"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Issues  []validationIssue `json:"issues,omitempty"`
}

type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// simpleError is the bare `{error}` body used by the generation, image and
// publish endpoints.
type simpleError struct {
	Error string `json:"error"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func writeSimpleError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, simpleError{Error: message})
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if goerrors.IsValidation(err) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validationIssues(err),
		}
	}

	var persistenceNotFound *persistence.NotFoundError
	var siteNotFound *sites.NotFoundError
	if errors.As(err, &persistenceNotFound) || errors.As(err, &siteNotFound) ||
		errors.Is(err, onboarding.ErrProfileNotFound) ||
		errors.Is(err, editor.ErrNoWebsite) ||
		errors.Is(err, editor.ErrBlockNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, editor.ErrProfileRequired) {
		return http.StatusPreconditionRequired, errorResponse{
			Error:   "profile_required",
			Message: err.Error(),
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryConflict) ||
		errors.Is(err, editor.ErrPreviewMode) ||
		errors.Is(err, editor.ErrRegenerationInProgress) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	var alert *editor.AlertError
	if errors.As(err, &alert) {
		return http.StatusBadGateway, errorResponse{
			Error:   "upstream_failed",
			Message: alert.Message,
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryBadInput) ||
		errors.Is(err, editor.ErrUnknownTarget) ||
		errors.Is(err, editor.ErrUnknownEvent) ||
		errors.Is(err, editor.ErrUnknownElement) ||
		errors.Is(err, document.ErrInvalidDirection) ||
		errors.Is(err, catalog.ErrUnknownSection) ||
		errors.Is(err, generation.ErrUnknownField) ||
		errors.Is(err, website.ErrUnknownContentField) ||
		errors.Is(err, website.ErrInvalidContentValue) ||
		errors.Is(err, imagery.ErrQueryRequired) ||
		errors.Is(err, persistence.ErrUserRequired) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryExternal) {
		return http.StatusBadGateway, errorResponse{
			Error:   "upstream_failed",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func validationIssues(err error) []validationIssue {
	var typed *goerrors.Error
	if !errors.As(err, &typed) {
		return nil
	}
	fields := typed.ValidationMap()
	if len(fields) == 0 {
		return nil
	}
	issues := make([]validationIssue, 0, len(fields))
	for field, message := range fields {
		issues = append(issues, validationIssue{Field: field, Message: message})
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Field < issues[j].Field })
	return issues
}

// validationMessage flattens validation issues into one sentence for the
// `{error}` bodies.
func validationMessage(err error) string {
	issues := validationIssues(err)
	if len(issues) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return strings.Join(parts, "; ")
}
