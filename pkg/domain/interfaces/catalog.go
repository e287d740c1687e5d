package interfaces

import "context"

// CatalogSearcher looks up catalog snippets most similar to a free-text
// query. The result is ordered by similarity and may be empty.
type CatalogSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}
