package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// RowIterator walks over query results. Next returns ErrIteratorDone once
// the results are exhausted. Close must be called when the caller stops
// iterating early.
type RowIterator[T any] interface {
	Next() (*T, error)
	Close() error
}

type cursorIterator[T any] struct {
	ctx context.Context
	cur *mongo.Cursor
}

func newCursorIterator[T any](ctx context.Context, cur *mongo.Cursor) RowIterator[T] {
	return &cursorIterator[T]{ctx: ctx, cur: cur}
}

func (ci *cursorIterator[T]) Next() (*T, error) {
	if !ci.cur.Next(ci.ctx) {
		if err := ci.cur.Err(); err != nil {
			return nil, wrapMongoError(err)
		}

		return nil, ErrIteratorDone
	}

	var data T
	if err := ci.cur.Decode(&data); err != nil {
		return nil, wrapMongoError(err)
	}

	return &data, nil
}

func (ci *cursorIterator[T]) Close() error {
	return ci.cur.Close(ci.ctx)
}

type sliceIterator[T any] struct {
	items []T
	pos   int
}

// SliceIterator returns a RowIterator over items.
func SliceIterator[T any](items []T) RowIterator[T] {
	return &sliceIterator[T]{items: items}
}

func (si *sliceIterator[T]) Next() (*T, error) {
	if si.pos >= len(si.items) {
		return nil, ErrIteratorDone
	}

	item := si.items[si.pos]
	si.pos++
	return &item, nil
}

func (si *sliceIterator[T]) Close() error {
	si.pos = len(si.items)
	return nil
}

type mapIterator[In any, Out any] struct {
	src   RowIterator[In]
	mapFn func(In) Out
}

// MapIterator returns an iterator that applies mapFn to every item of src.
// Closing it closes src.
func MapIterator[In any, Out any](src RowIterator[In], mapFn func(In) Out) RowIterator[Out] {
	return &mapIterator[In, Out]{src: src, mapFn: mapFn}
}

func (mi *mapIterator[In, Out]) Next() (*Out, error) {
	item, err := mi.src.Next()
	if err != nil {
		return nil, err
	}

	out := mi.mapFn(*item)
	return &out, nil
}

func (mi *mapIterator[In, Out]) Close() error {
	return mi.src.Close()
}

// Collect drains it into a slice and closes it. An exhausted iterator yields
// an empty, non-nil slice.
func Collect[T any](it RowIterator[T]) ([]T, error) {
	defer it.Close()

	items := []T{}
	for {
		item, err := it.Next()
		if errors.Is(err, ErrIteratorDone) {
			return items, nil
		}

		if err != nil {
			return nil, err
		}

		items = append(items, *item)
	}
}
