package fetcher

import "context"

// Source retrieves the raw contents of a named dataset resource.
type Source interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
