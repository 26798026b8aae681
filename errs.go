package store

import "errors"

var (
	ErrKeyAlreadyExists = errors.New("key already exists")
	ErrKeyNotFound      = errors.New("key not found")

	// ErrCollectionNotDeclared is returned when an entity type carries no
	// collection declaration. Repository construction fails with it.
	ErrCollectionNotDeclared = errors.New("collection not declared")
	ErrConnect               = errors.New("cannot connect to database")

	ErrInvalidID    = errors.New("invalid id")
	ErrEmptyBatch   = errors.New("empty batch")
	ErrIteratorDone = errors.New("no more items in iterator")

	ErrNoTransform = errors.New("projection has no transform")
)
