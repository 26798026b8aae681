package store

import (
	"context"
)

// Repository maps one entity type onto one collection.
//
// Single result reads return a nil entity and a nil error when nothing
// matches. Identifiers passed as strings must parse as UUIDs, otherwise the
// call fails with ErrInvalidID.
type Repository[T Entity] interface {
	CollectionName() string
	AsQueryable() *Query[T]

	FilterBy(ctx context.Context, filter Filter, options ...QueryOption) (RowIterator[T], error)
	FindOne(ctx context.Context, filter Filter, options ...QueryOption) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	InsertOne(ctx context.Context, value T) error
	InsertMany(ctx context.Context, values []T) error
	ReplaceOne(ctx context.Context, value T) error
	DeleteOne(ctx context.Context, filter Filter) error
	DeleteByID(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, filter Filter) error

	AsyncRepository[T]
}

// AsyncRepository holds the non-blocking forms of the Repository operations.
// Each call returns immediately; the outcome is read from the Future.
type AsyncRepository[T Entity] interface {
	FilterByAsync(ctx context.Context, filter Filter, options ...QueryOption) *Future[[]T]
	FindOneAsync(ctx context.Context, filter Filter, options ...QueryOption) *Future[*T]
	FindByIDAsync(ctx context.Context, id string) *Future[*T]
	CountAsync(ctx context.Context, filter Filter) *Future[int64]
	InsertOneAsync(ctx context.Context, value T) *Future[Void]
	InsertManyAsync(ctx context.Context, values []T) *Future[Void]
	ReplaceOneAsync(ctx context.Context, value T) *Future[Void]
	DeleteOneAsync(ctx context.Context, filter Filter) *Future[Void]
	DeleteByIDAsync(ctx context.Context, id string) *Future[Void]
	DeleteManyAsync(ctx context.Context, filter Filter) *Future[Void]
}

// Projection shapes matched documents. Fields limits what the store returns
// (all fields when empty) and Transform maps each decoded entity.
type Projection[T any, R any] struct {
	Fields    []string
	Transform func(T) R
}

// FilterByProjection runs filter against repo and returns the projected
// results.
func FilterByProjection[T Entity, R any](ctx context.Context, repo Repository[T], filter Filter, projection Projection[T, R], options ...QueryOption) (RowIterator[R], error) {
	if projection.Transform == nil {
		return nil, ErrNoTransform
	}

	if len(projection.Fields) > 0 {
		options = append(options, WithProjection(projection.Fields...))
	}

	it, err := repo.FilterBy(ctx, filter, options...)
	if err != nil {
		return nil, err
	}

	return MapIterator(it, projection.Transform), nil
}

// FilterByProjectionAsync is the non-blocking form of FilterByProjection.
func FilterByProjectionAsync[T Entity, R any](ctx context.Context, repo Repository[T], filter Filter, projection Projection[T, R], options ...QueryOption) *Future[[]R] {
	return Go(ctx, func(ctx context.Context) ([]R, error) {
		it, err := FilterByProjection(ctx, repo, filter, projection, options...)
		if err != nil {
			return nil, err
		}

		return Collect(it)
	})
}
