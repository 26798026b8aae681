package store

import (
	"go.mongodb.org/mongo-driver/bson"
	mongoOptions "go.mongodb.org/mongo-driver/mongo/options"
)

type RepositoryOption[T any] func(o *option[T])

type option[T any] struct {
	initValues     []T
	collectionName string
}

// InitWith seeds the collection with values when the repository is created.
// Values whose key already exists are skipped.
func InitWith[T any](values []T) RepositoryOption[T] {
	return func(o *option[T]) {
		o.initValues = values
	}
}

// WithCollectionName binds the repository to name instead of the collection
// declared on the entity type. An empty or blank name is ignored.
func WithCollectionName[T any](name string) RepositoryOption[T] {
	return func(o *option[T]) {
		o.collectionName = name
	}
}

type QueryOption func(o *queryOption)

type queryOption struct {
	Limit      int
	Offset     int64
	Sorter     []string
	Projection []string
}

// WithLimit returns a QueryOption that sets the limit for the
// number of documents to return.
func WithLimit(limit int) QueryOption {
	return func(o *queryOption) {
		o.Limit = limit
	}
}

// WithOffset returns a QueryOption that sets the number of documents to skip.
func WithOffset(offset int64) QueryOption {
	return func(o *queryOption) {
		o.Offset = offset
	}
}

// WithSorter returns a QueryOption that sets the sorting order for the query.
// Field names prefixed by "-" sort descending, unprefixed or "+" prefixed
// names sort ascending.
//
// example:
//
//	WithSorter("-group_name", "+front")
func WithSorter(sorter ...string) QueryOption {
	return func(o *queryOption) {
		o.Sorter = sorter
	}
}

// WithProjection restricts the returned documents to the given fields.
func WithProjection(fields ...string) QueryOption {
	return func(o *queryOption) {
		o.Projection = fields
	}
}

func buildQueryOption(options []QueryOption) *queryOption {
	opt := &queryOption{}
	for _, op := range options {
		op(opt)
	}

	return opt
}

func (o *queryOption) findOptions() *mongoOptions.FindOptions {
	fo := mongoOptions.Find()
	if o.Limit > 0 {
		fo.SetLimit(int64(o.Limit))
	}

	if o.Offset > 0 {
		fo.SetSkip(o.Offset)
	}

	if sort := o.sortDoc(); len(sort) > 0 {
		fo.SetSort(sort)
	}

	if proj := o.projectionDoc(); len(proj) > 0 {
		fo.SetProjection(proj)
	}

	return fo
}

func (o *queryOption) findOneOptions() *mongoOptions.FindOneOptions {
	fo := mongoOptions.FindOne()
	if o.Offset > 0 {
		fo.SetSkip(o.Offset)
	}

	if sort := o.sortDoc(); len(sort) > 0 {
		fo.SetSort(sort)
	}

	if proj := o.projectionDoc(); len(proj) > 0 {
		fo.SetProjection(proj)
	}

	return fo
}

func (o *queryOption) sortDoc() bson.D {
	return sliceMap(parseSorter(o.Sorter), func(f sortField) bson.E {
		return bson.E{Key: f.Name, Value: f.Dir}
	})
}

func (o *queryOption) projectionDoc() bson.D {
	return sliceMap(o.Projection, func(field string) bson.E {
		return bson.E{Key: field, Value: 1}
	})
}
