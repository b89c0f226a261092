// Package service contains catalog search and detail workflows
package service

import (
	"context"

	"tunepipe/internal/platform/logger"

	"tunepipe/internal/core/ref"
	"tunepipe/internal/services/api/catalog/domain"
	"tunepipe/internal/services/resolve"
)

// Service defines the service contract for the catalog
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	resolver *resolve.Service
	log      logger.Logger
}

// New creates a new catalog service over a strategy registry
func New(reg *resolve.Registry, log logger.Logger) *Svc {
	if reg == nil {
		panic("catalog.Service requires a non nil registry")
	}
	return &Svc{
		resolver: resolve.New(reg, log),
		log:      log.With().Str("component", "catalog").Logger(),
	}
}

// searchHits is the raw strategy payload for a search resolution.
// An empty Movies slice is a legitimate answer; the site responded and
// simply had nothing for the query
type searchHits struct {
	Movies []domain.Movie
}

// Search classifies the query and resolves it through the scrape chain
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.SearchResponse, error) {
	r, err := ref.Classify(in.Query, ref.KindSearch)
	if err != nil {
		return domain.SearchResponse{}, err
	}
	sr := r.(ref.Search)
	if in.Page > 1 {
		sr.Page = in.Page
	}

	out, err := s.resolver.Resolve(ctx, sr)
	if err != nil {
		return domain.SearchResponse{}, err
	}

	hits := out.Result.(searchHits)
	return domain.SearchResponse{
		Query:        sr.Query,
		Page:         sr.Page,
		TotalResults: len(hits.Movies),
		Movies:       hits.Movies,
	}, nil
}

// Detail classifies the page URL and resolves it into one canonical result
func (s *Svc) Detail(ctx context.Context, in domain.DetailInput) (domain.Movie, error) {
	r, err := ref.Classify(in.URL, ref.KindPage)
	if err != nil {
		return domain.Movie{}, err
	}

	out, err := s.resolver.Resolve(ctx, r)
	if err != nil {
		return domain.Movie{}, err
	}

	return out.Result.(domain.Movie), nil
}
