package store

import "context"

// Query is a lazily evaluated query over a repository's collection. Every
// builder method returns a new Query, so a Query can be shared and extended
// by several callers. Nothing is sent to the store until Iter, All, First or
// Count is called.
type Query[T Entity] struct {
	repo   Repository[T]
	filter Filter
	sorter []string
	fields []string
	limit  int
	offset int64
}

func newQuery[T Entity](repo Repository[T]) *Query[T] {
	return &Query[T]{repo: repo}
}

func (q *Query[T]) clone() *Query[T] {
	c := *q
	c.sorter = append([]string(nil), q.sorter...)
	c.fields = append([]string(nil), q.fields...)
	return &c
}

// Where narrows the query; successive calls are combined with AND.
func (q *Query[T]) Where(filters ...Filter) *Query[T] {
	c := q.clone()
	c.filter = c.filter.And(filters...)
	return c
}

func (q *Query[T]) Sort(sorter ...string) *Query[T] {
	c := q.clone()
	c.sorter = append(c.sorter, sorter...)
	return c
}

func (q *Query[T]) Project(fields ...string) *Query[T] {
	c := q.clone()
	c.fields = append(c.fields, fields...)
	return c
}

func (q *Query[T]) Limit(limit int) *Query[T] {
	c := q.clone()
	c.limit = limit
	return c
}

func (q *Query[T]) Skip(offset int64) *Query[T] {
	c := q.clone()
	c.offset = offset
	return c
}

func (q *Query[T]) Filter() Filter {
	return q.filter
}

func (q *Query[T]) options() []QueryOption {
	var opts []QueryOption
	if q.limit > 0 {
		opts = append(opts, WithLimit(q.limit))
	}

	if q.offset > 0 {
		opts = append(opts, WithOffset(q.offset))
	}

	if len(q.sorter) > 0 {
		opts = append(opts, WithSorter(q.sorter...))
	}

	if len(q.fields) > 0 {
		opts = append(opts, WithProjection(q.fields...))
	}

	return opts
}

func (q *Query[T]) Iter(ctx context.Context) (RowIterator[T], error) {
	return q.repo.FilterBy(ctx, q.filter, q.options()...)
}

func (q *Query[T]) All(ctx context.Context) ([]T, error) {
	it, err := q.Iter(ctx)
	if err != nil {
		return nil, err
	}

	return Collect(it)
}

// First returns the first document of the query, or nil when none matches.
func (q *Query[T]) First(ctx context.Context) (*T, error) {
	return q.repo.FindOne(ctx, q.filter, q.options()...)
}

// Count ignores sorting, projection, limit and offset.
func (q *Query[T]) Count(ctx context.Context) (int64, error) {
	return q.repo.Count(ctx, q.filter)
}

func (q *Query[T]) AllAsync(ctx context.Context) *Future[[]T] {
	return Go(ctx, q.All)
}

func (q *Query[T]) FirstAsync(ctx context.Context) *Future[*T] {
	return Go(ctx, q.First)
}

func (q *Query[T]) CountAsync(ctx context.Context) *Future[int64] {
	return Go(ctx, q.Count)
}
