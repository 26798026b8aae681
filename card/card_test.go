package card

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	store "github.com/likearthian/cardstore"
)

func TestCollectionName(t *testing.T) {
	name, err := store.ResolveCollectionName[Card]()
	require.NoError(t, err)
	assert.Equal(t, "cards", name)
}

func TestNew(t *testing.T) {
	a := New("Spanish", "hola", "hello")
	b := New("Spanish", "hola", "hello")

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.ID, a.GetID())
}

func TestInGroup(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "group_name", Value: "Spanish"}}, InGroup("Spanish").BSON())
}

func TestCard_BSONOmitsEmptyFields(t *testing.T) {
	data, err := bson.MarshalWithRegistry(store.Registry, Card{ID: uuid.New(), Front: "hola"})
	require.NoError(t, err)
	doc := bson.Raw(data)

	_, err = doc.LookupErr(FieldBack)
	assert.Error(t, err)
	_, err = doc.LookupErr(FieldGroup)
	assert.Error(t, err)
	assert.Equal(t, "hola", doc.Lookup(FieldFront).StringValue())

	var back Card
	require.NoError(t, bson.UnmarshalWithRegistry(store.Registry, data, &back))
	assert.Equal(t, "hola", back.Front)
}
