package store

import (
	"fmt"
	"reflect"
	"strings"
)

// DBCollection marks the collection an entity is stored in. Embed it in the
// entity struct with the collection name in the `name` tag:
//
//	type Card struct {
//		store.DBCollection `bson:"-" json:"-" name:"cards"`
//		ID uuid.UUID `bson:"_id"`
//	}
type DBCollection struct{}

// CollectionNamer is implemented by entities that declare their collection
// in code instead of with a DBCollection tag.
type CollectionNamer interface {
	CollectionName() string
}

// CollectionDef describes the collection backing a repository.
type CollectionDef struct {
	Name     string
	KeyField string
}

func (cd CollectionDef) FullName(database string) string {
	if database == "" {
		return cd.Name
	}

	return fmt.Sprintf("%s.%s", database, cd.Name)
}

var dbCollectionType = reflect.TypeOf(DBCollection{})

// ResolveCollectionName returns the collection declared for T. It never
// falls back to a derived name: a type without a declaration yields
// ErrCollectionNotDeclared.
func ResolveCollectionName[T any]() (string, error) {
	var entity T
	if n, ok := any(entity).(CollectionNamer); ok && !isNilPointer(entity) {
		return checkCollectionName(n.CollectionName(), entity)
	}

	if n, ok := any(&entity).(CollectionNamer); ok {
		return checkCollectionName(n.CollectionName(), entity)
	}

	mtyp := reflect.TypeOf(entity)
	if mtyp == nil {
		return "", fmt.Errorf("%w: entity type is an interface", ErrCollectionNotDeclared)
	}

	if mtyp.Kind() == reflect.Ptr {
		mtyp = mtyp.Elem()
		// T is *E: E's methods are only reachable through a non-nil pointer.
		if n, ok := reflect.New(mtyp).Interface().(CollectionNamer); ok {
			return checkCollectionName(n.CollectionName(), entity)
		}
	}

	if mtyp.Kind() != reflect.Struct {
		return "", fmt.Errorf("%w: %s is not a struct", ErrCollectionNotDeclared, mtyp.String())
	}

	for i := 0; i < mtyp.NumField(); i++ {
		field := mtyp.Field(i)
		if field.Type != dbCollectionType {
			continue
		}

		return checkCollectionName(field.Tag.Get("name"), entity)
	}

	return "", fmt.Errorf("%w: %s has no DBCollection field", ErrCollectionNotDeclared, mtyp.String())
}

func checkCollectionName(name string, entity any) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %T declares an empty collection name", ErrCollectionNotDeclared, entity)
	}

	return name, nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
