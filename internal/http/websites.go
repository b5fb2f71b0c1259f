package http

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitebuilder/internal/sites"
)

type publishResponse struct {
	Success bool        `json:"success"`
	Website *sites.Site `json:"website"`
	Message string      `json:"message"`
}

func (api *API) registerWebsiteRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "websites")
	api.handle(mux, "POST "+root, api.handlePublish)
	api.handle(mux, "GET "+root, api.handleWebsitesDiscovery)
	api.handle(mux, "GET "+root+"/mine", api.handleMySites)
}

func (api *API) handlePublish(w http.ResponseWriter, r *http.Request) {
	if api.publisher == nil {
		writeSimpleError(w, http.StatusInternalServerError, "Publishing is not configured")
		return
	}
	var req sites.PublishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeSimpleError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	site, err := api.publisher.Publish(r.Context(), userID(r), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, publishResponse{
			Success: true,
			Website: site,
			Message: "Website published successfully",
		})
	case goerrors.IsValidation(err):
		writeSimpleError(w, http.StatusBadRequest, validationMessage(err))
	case goerrors.IsCategory(err, goerrors.CategoryConflict):
		writeSimpleError(w, http.StatusConflict, "Subdomain is already taken")
	default:
		api.log(r).Error("http.publish.failed", "error", err)
		writeSimpleError(w, http.StatusInternalServerError, "Failed to publish website")
	}
}

func (api *API) handleWebsitesDiscovery(w http.ResponseWriter, r *http.Request) {
	root := joinPath(api.basePath, "websites")
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Websites API",
		"endpoints": map[string]string{
			"POST " + root:           "Publish a website",
			"GET " + root + "/mine": "List your published websites",
		},
	})
}

func (api *API) handleMySites(w http.ResponseWriter, r *http.Request) {
	if api.publisher == nil {
		unavailable(w)
		return
	}
	list, err := api.publisher.Sites(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*sites.Site{}
	}
	writeJSON(w, http.StatusOK, list)
}
