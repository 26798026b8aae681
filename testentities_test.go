package store

import "github.com/google/uuid"

type note struct {
	DBCollection `bson:"-" name:"notes"`

	ID    uuid.UUID `bson:"_id"`
	Title string    `bson:"title,omitempty"`
	Body  string    `bson:"body,omitempty"`
}

func (n note) GetID() uuid.UUID { return n.ID }

type orphan struct {
	ID uuid.UUID `bson:"_id"`
}

func (o orphan) GetID() uuid.UUID { return o.ID }

type blankName struct {
	DBCollection `bson:"-" name:"  "`

	ID uuid.UUID `bson:"_id"`
}

func (b blankName) GetID() uuid.UUID { return b.ID }

type namedInCode struct {
	ID uuid.UUID `bson:"_id"`
}

func (n namedInCode) GetID() uuid.UUID     { return n.ID }
func (namedInCode) CollectionName() string { return "named_in_code" }

type pointerNamed struct {
	ID uuid.UUID `bson:"_id"`
}

func (p pointerNamed) GetID() uuid.UUID      { return p.ID }
func (*pointerNamed) CollectionName() string { return "pointer_named" }
