package domain

import "context"

// ServicePort defines the service contract for the catalog
type ServicePort interface {
	// Search resolves a free-text query into a page of catalog results.
	// Zero results is a successful outcome, not a failure
	Search(ctx context.Context, in SearchInput) (SearchResponse, error)
	// Detail resolves one catalog page URL into the canonical result
	Detail(ctx context.Context, in DetailInput) (Movie, error)
}
