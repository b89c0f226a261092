// Package http provides http transport for the catalog
package http

import (
	stdhttp "net/http"

	"tunepipe/internal/modkit/httpkit"
	"tunepipe/internal/services/api/catalog/domain"
)

// Register mounts catalog endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)
	httpkit.PostJSON[domain.DetailInput](r, "/detail", h.detail)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /catalog/search Catalog catalogSearch
// @Summary Search the film catalog
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Query"
// @Success 200 type domain.SearchResponse "results"
// @Router /catalog/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}

// swagger:route POST /catalog/detail Catalog catalogDetail
// @Summary Resolve one catalog page into the canonical result
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body domain.DetailInput true "Page URL"
// @Success 200 type domain.Movie "resolved"
// @Router /catalog/detail [post]
func (h *handlers) detail(r *stdhttp.Request, in domain.DetailInput) (any, error) {
	return h.svc.Detail(r.Context(), in)
}
