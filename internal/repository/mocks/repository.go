package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shortctl/internal/domain"
)

// ShortURLLister is a mock implementation of repository.ShortURLLister
type ShortURLLister struct {
	mock.Mock
}

// ListShortURLs returns one page of short URLs matching the given params
func (m *ShortURLLister) ListShortURLs(ctx context.Context, params domain.ListParams) (*domain.Page, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}
