package http

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitebuilder/internal/imagery"
)

type generateContentPayload struct {
	Prompt       string         `json:"prompt"`
	BusinessInfo map[string]any `json:"businessInfo,omitempty"`
}

type fetchImagePayload struct {
	Query string `json:"query"`
}

func (api *API) registerGenerationRoutes(mux *http.ServeMux, base string) {
	api.handle(mux, "POST "+joinPath(base, "generate-content"), api.handleGenerateContent)
	api.handle(mux, "POST "+joinPath(base, "fetch-image"), api.handleFetchImage)
}

func (api *API) handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	if api.generator == nil {
		writeSimpleError(w, http.StatusInternalServerError, "Content generation is not configured")
		return
	}
	var payload generateContentPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeSimpleError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	content, err := api.generator.Generate(r.Context(), payload.Prompt, payload.BusinessInfo)
	if err != nil {
		if goerrors.IsCategory(err, goerrors.CategoryBadInput) {
			writeSimpleError(w, http.StatusBadRequest, "Prompt is required")
			return
		}
		api.log(r).Error("http.generate_content.failed", "error", err)
		writeSimpleError(w, http.StatusInternalServerError, "Failed to generate content")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": content})
}

func (api *API) handleFetchImage(w http.ResponseWriter, r *http.Request) {
	if api.images == nil {
		writeSimpleError(w, http.StatusInternalServerError, "Image search is not configured")
		return
	}
	var payload fetchImagePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeSimpleError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(payload.Query) == "" {
		writeSimpleError(w, http.StatusBadRequest, "Query is required")
		return
	}
	photo, err := api.images.Fetch(r.Context(), payload.Query)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, photo)
	case errors.Is(err, imagery.ErrQueryRequired):
		writeSimpleError(w, http.StatusBadRequest, "Query is required")
	case errors.Is(err, imagery.ErrNoResults):
		writeSimpleError(w, http.StatusNotFound, "No images found")
	case errors.Is(err, imagery.ErrAPIKeyRequired):
		api.log(r).Error("http.fetch_image.unconfigured", "error", err)
		writeSimpleError(w, http.StatusInternalServerError, "Image search is not configured: set PEXELS_API_KEY")
	default:
		api.log(r).Error("http.fetch_image.failed", "query", payload.Query, "error", err)
		writeSimpleError(w, http.StatusInternalServerError, "Failed to fetch image")
	}
}
