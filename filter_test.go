package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

func TestFilter_BSON(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name   string
		filter Filter
		want   bson.D
	}{
		{"zero matches all", Filter{}, bson.D{}},
		{"all", All(), bson.D{}},
		{"eq", Eq("group_name", "Spanish"), bson.D{{Key: "group_name", Value: "Spanish"}}},
		{"by id", ByID(id), bson.D{{Key: "_id", Value: id}}},
		{"gt", Gt("level", 3), bson.D{{Key: "level", Value: bson.D{{Key: "$gt", Value: 3}}}}},
		{"ne", Ne("back", ""), bson.D{{Key: "back", Value: bson.D{{Key: "$ne", Value: ""}}}}},
		{"in", In("front", "hola", "gato"), bson.D{{Key: "front", Value: bson.D{{Key: "$in", Value: []string{"hola", "gato"}}}}}},
		{"exists", Exists("back", false), bson.D{{Key: "back", Value: bson.D{{Key: "$exists", Value: false}}}}},
		{
			"and",
			And(Eq("group_name", "Spanish"), Lte("level", 2)),
			bson.D{{Key: "$and", Value: bson.A{
				bson.D{{Key: "group_name", Value: "Spanish"}},
				bson.D{{Key: "level", Value: bson.D{{Key: "$lte", Value: 2}}}},
			}}},
		},
		{
			"or",
			Or(Eq("front", "hola"), Eq("back", "hello")),
			bson.D{{Key: "$or", Value: bson.A{
				bson.D{{Key: "front", Value: "hola"}},
				bson.D{{Key: "back", Value: "hello"}},
			}}},
		},
		{
			"not",
			Not(Eq("group_name", "Latin")),
			bson.D{{Key: "$nor", Value: bson.A{
				bson.D{{Key: "group_name", Value: "Latin"}},
			}}},
		},
		{"and of one collapses", And(Eq("front", "hola")), bson.D{{Key: "front", Value: "hola"}}},
		{"and drops zero filters", And(All(), Eq("front", "hola"), Filter{}), bson.D{{Key: "front", Value: "hola"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.BSON())
		})
	}
}

func TestFilter_Compose(t *testing.T) {
	f := All().And(Eq("group_name", "Spanish")).And(Gte("level", 1))
	assert.Equal(t, And(Eq("group_name", "Spanish"), Gte("level", 1)), f)

	g := Eq("front", "hola").Or(Eq("front", "gato"))
	assert.Equal(t, OpOr, g.Op)
	assert.Len(t, g.Children, 2)
	assert.True(t, All().IsZero())
	assert.False(t, g.IsZero())
}

func TestFromMap(t *testing.T) {
	f := FromMap(map[string]any{
		"group_name": "Spanish",
		"front":      []string{"hola", "gato"},
		"back":       []string{"hello"},
		"level":      []int{},
	})

	assert.Equal(t, And(
		Eq("back", "hello"),
		Filter{Field: "front", Op: OpIn, Value: []string{"hola", "gato"}},
		Eq("group_name", "Spanish"),
	), f)

	assert.True(t, FromMap(nil).IsZero())
	assert.Equal(t, Eq("raw", []byte("x")), FromMap(map[string]any{"raw": []byte("x")}))
}

func TestFilter_EmptyOperands(t *testing.T) {
	assert.True(t, Not().IsZero())
	assert.True(t, Not(All()).IsZero())
	assert.Equal(t, bson.D{}, Not().BSON())
	assert.Equal(t, Filter{Op: OpNot, Children: []Filter{Eq("front", "hola")}}, Not(All(), Eq("front", "hola")))

	in := In[string]("front")
	assert.Equal(t, bson.D{{Key: "front", Value: bson.D{{Key: "$in", Value: []string{}}}}}, in.BSON())

	data, err := bson.Marshal(in.BSON())
	require.NoError(t, err)
	assert.Equal(t, bsontype.Array, bson.Raw(data).Lookup("front", "$in").Type)
}
