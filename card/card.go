// Package card holds the flashcard entity stored by the application.
package card

import (
	"github.com/google/uuid"

	store "github.com/likearthian/cardstore"
)

// Field names of a card document.
const (
	FieldID    = store.KeyField
	FieldGroup = "group_name"
	FieldFront = "front"
	FieldBack  = "back"
)

type Card struct {
	store.DBCollection `bson:"-" json:"-" yaml:"-" name:"cards"`

	ID        uuid.UUID `bson:"_id" json:"id" yaml:"id"`
	GroupName string    `bson:"group_name,omitempty" json:"groupName,omitempty" yaml:"group"`
	Front     string    `bson:"front,omitempty" json:"front,omitempty" yaml:"front"`
	Back      string    `bson:"back,omitempty" json:"back,omitempty" yaml:"back"`
}

// New returns a card with a freshly generated identifier.
func New(group, front, back string) Card {
	return Card{
		ID:        uuid.New(),
		GroupName: group,
		Front:     front,
		Back:      back,
	}
}

func (c Card) GetID() uuid.UUID {
	return c.ID
}

// InGroup matches the cards of group.
func InGroup(group string) store.Filter {
	return store.Eq(FieldGroup, group)
}
