package http

import (
	"net/http"

	"github.com/goliatone/go-sitebuilder/internal/catalog"
	"github.com/goliatone/go-sitebuilder/internal/editor"
	"github.com/goliatone/go-sitebuilder/website"
)

func (api *API) registerWorkspaceRoutes(mux *http.ServeMux, base string) {
	api.handle(mux, "GET "+joinPath(base, "profile"), api.handleProfileGet)
	api.handle(mux, "PUT "+joinPath(base, "profile"), api.handleProfilePut)
	api.handle(mux, "GET "+joinPath(base, "website"), api.handleWebsiteGet)
	api.handle(mux, "POST "+joinPath(base, "website/generate"), api.handleWebsiteGenerate)
	api.handle(mux, "GET "+joinPath(base, "website/export"), api.handleWebsiteExport)
	api.handle(mux, "GET "+joinPath(base, "projects"), api.handleProjects)
	api.handle(mux, "GET "+joinPath(base, "sections"), api.handleSections)
}

func (api *API) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	if api.profiles == nil {
		unavailable(w)
		return
	}
	profile, err := api.profiles.Get(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (api *API) handleProfilePut(w http.ResponseWriter, r *http.Request) {
	if api.profiles == nil {
		unavailable(w)
		return
	}
	var payload website.BusinessProfile
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid JSON payload")
		return
	}
	profile, err := api.profiles.Set(r.Context(), userID(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (api *API) session(w http.ResponseWriter, r *http.Request) (*editor.Session, bool) {
	if api.editors == nil {
		unavailable(w)
		return nil, false
	}
	session, err := api.editors.Session(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return session, true
}

func (api *API) currentWebsite(w http.ResponseWriter, r *http.Request) (website.Website, bool) {
	session, ok := api.session(w, r)
	if !ok {
		return website.Website{}, false
	}
	site, ok := session.Website()
	if !ok {
		writeError(w, editor.ErrNoWebsite)
		return website.Website{}, false
	}
	return site, true
}

func (api *API) handleWebsiteGet(w http.ResponseWriter, r *http.Request) {
	site, ok := api.currentWebsite(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func (api *API) handleWebsiteGenerate(w http.ResponseWriter, r *http.Request) {
	session, ok := api.session(w, r)
	if !ok {
		return
	}
	site, err := session.Generate(r.Context())
	if err != nil {
		api.log(r).Warn("http.website.generate_failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func (api *API) handleWebsiteExport(w http.ResponseWriter, r *http.Request) {
	if api.exporter == nil {
		unavailable(w)
		return
	}
	site, ok := api.currentWebsite(w, r)
	if !ok {
		return
	}
	document, err := api.exporter.Render(site)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}

func (api *API) handleProjects(w http.ResponseWriter, r *http.Request) {
	if api.projects == nil {
		unavailable(w)
		return
	}
	list, err := api.projects.RecentProjects(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []website.ProjectSummary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.FilterByQuery(r.URL.Query().Get("q")))
}
