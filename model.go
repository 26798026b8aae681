package store

import "github.com/google/uuid"

// KeyField is the document field holding the entity identifier.
const KeyField = "_id"

// Entity is the only shape a type must have to be stored by a Repository.
// The identifier is assigned by the caller before insertion and must be
// mapped to the document key with a `bson:"_id"` tag.
type Entity interface {
	GetID() uuid.UUID
}

// Void is the result type of futures for operations that return nothing.
type Void = struct{}
