package repository

import (
	"context"
	"errors"

	"github.com/mul-meong/backend-feed/internal/domain"
)

// ErrNotFound is returned by lookups when no document matches. The
// coordinator decides what kind of failure that is for the caller.
var ErrNotFound = errors.New("not found")

// Store is the adapter over the three feed collections. Writes made
// inside the fn passed to WithTransaction commit or abort together.
type Store interface {
	FindFeed(ctx context.Context, feedID string) (*domain.Feed, error)
	SaveFeed(ctx context.Context, f *domain.Feed) error
	DeleteFeed(ctx context.Context, feedID string) error

	FindHashtags(ctx context.Context, feedID string) (*domain.HashtagSet, error)
	ReplaceHashtags(ctx context.Context, set *domain.HashtagSet) error
	DeleteHashtags(ctx context.Context, feedID string) error

	ListMedia(ctx context.Context, feedID string) ([]domain.Media, error)
	InsertMedia(ctx context.Context, media []domain.Media) error
	DeleteMedia(ctx context.Context, feedID string) error

	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
