package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/document"
	"github.com/goliatone/go-sitebuilder/internal/editor"
	"github.com/goliatone/go-sitebuilder/website"
)

type addSectionPayload struct {
	SectionID string `json:"sectionId"`
	AfterID   string `json:"afterId,omitempty"`
}

type contentPayload struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type stylesPayload struct {
	Styles website.Styles `json:"styles"`
}

type movePayload struct {
	Direction string `json:"direction"`
}

type regeneratePayload struct {
	Target string `json:"target"`
	Field  string `json:"field,omitempty"`
}

func (api *API) registerEditorRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "editor")
	blocks := joinPath(root, "blocks")
	api.handle(mux, "GET "+root, api.handleEditorState)
	api.handle(mux, "DELETE "+root, api.handleEditorClose)
	api.handle(mux, "POST "+joinPath(root, "events"), api.handleEditorEvent)
	api.handle(mux, "POST "+joinPath(root, "sections"), api.handleAddSection)
	api.handle(mux, "PATCH "+blocks+"/{id}/content", api.handleBlockContent)
	api.handle(mux, "PATCH "+blocks+"/{id}/styles", api.handleBlockStyles)
	api.handle(mux, "POST "+blocks+"/{id}/move", api.handleBlockMove)
	api.handle(mux, "POST "+blocks+"/{id}/regenerate", api.handleBlockRegenerate)
	api.handle(mux, "DELETE "+blocks+"/{id}", api.handleBlockDelete)
}

func (api *API) handleEditorState(w http.ResponseWriter, r *http.Request) {
	session, ok := api.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.State())
}

// handleEditorClose ends the caller's editing session. The saved website is
// kept; the next request starts from a fresh UI state.
func (api *API) handleEditorClose(w http.ResponseWriter, r *http.Request) {
	if api.editors == nil {
		unavailable(w)
		return
	}
	api.editors.Close(userID(r))
	api.log(r).Debug("editor.session.closed")
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleEditorEvent(w http.ResponseWriter, r *http.Request) {
	session, ok := api.session(w, r)
	if !ok {
		return
	}
	var evt editor.Event
	if err := decodeJSON(r, &evt); err != nil {
		badRequest(w, "invalid JSON payload")
		return
	}
	state, err := session.HandleEvent(evt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (api *API) handleAddSection(w http.ResponseWriter, r *http.Request) {
	session, ok := api.session(w, r)
	if !ok {
		return
	}
	var payload addSectionPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(payload.SectionID) == "" {
		badRequest(w, "sectionId required")
		return
	}
	site, err := session.AddSection(r.Context(), payload.SectionID, payload.AfterID)
	api.respondWebsite(w, r, site, err)
}

func (api *API) handleBlockContent(w http.ResponseWriter, r *http.Request) {
	session, ok := api.session(w, r)
	if !ok {
		return
	}
	var payload contentPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(payload.Field) == "" {
		badRequest(w, "field required")
		return
	}
	site, err := session.UpdateContent(r.Context(), r.PathValue("id"), payload.Field, payload.Value)
	api.respondWebsite(w, r, site, err)
}

func (api *API) handleBlockStyles(w http.ResponseWriter, r *http.Request) {
	session, ok := api.session(w, r)
	if !ok {
		return
	}
	var payload stylesPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid JSON payload")
		return
	}
	site, err := session.UpdateStyles(r.Context(), r.PathValue("id"), payload.Styles)
	api.respondWebsite(w, r, site, err)
}

func (api *API) handleBlockMove(w http.ResponseWriter, r *http.Request) {
	session, ok := api.session(w, r)
	if !ok {
		return
	}
	var payload movePayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid JSON payload")
		return
	}
	direction, err := document.ParseDirection(payload.Direction)
	if err != nil {
		writeError(w, err)
		return
	}
	site, err := session.Move(r.Context(), r.PathValue("id"), direction)
	api.respondWebsite(w, r, site, err)
}

func (api *API) handleBlockDelete(w http.ResponseWriter, r *http.Request) {
	session, ok := api.session(w, r)
	if !ok {
		return
	}
	site, err := session.Delete(r.Context(), r.PathValue("id"))
	api.respondWebsite(w, r, site, err)
}

func (api *API) handleBlockRegenerate(w http.ResponseWriter, r *http.Request) {
	session, ok := api.session(w, r)
	if !ok {
		return
	}
	var payload regeneratePayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid JSON payload")
		return
	}
	target, err := editor.ParseTarget(payload.Target)
	if err != nil {
		writeError(w, err)
		return
	}
	site, err := session.Regenerate(r.Context(), r.PathValue("id"), target, payload.Field)
	api.respondWebsite(w, r, site, err)
}

func (api *API) respondWebsite(w http.ResponseWriter, r *http.Request, site website.Website, err error) {
	if err != nil {
		if editor.IsAlert(err) {
			api.log(r).Warn("http.editor.alert", "path", r.URL.Path, "error", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}
