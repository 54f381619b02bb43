package repository

import (
	"context"

	"shortctl/internal/domain"
)

// ShortURLLister defines the listing operations the CLI consumes.
type ShortURLLister interface {
	// ListShortURLs returns one page of short URLs matching the given params.
	ListShortURLs(ctx context.Context, params domain.ListParams) (*domain.Page, error)
}

// ShortURLRepository extends the lister with the write operations used to
// seed and maintain the admin database.
type ShortURLRepository interface {
	ShortURLLister

	// CreateShortURL stores a fully-formed short URL row with its tags.
	CreateShortURL(ctx context.Context, shortURL domain.ShortURL) (*domain.ShortURL, error)

	// Close closes the repository connection.
	Close() error
}
