package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	mongoOptions "go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository[T Entity] struct {
	collDef    CollectionDef
	collection *mongo.Collection
}

// CreateMongoRepository binds a repository for T to the collection declared
// on T inside db. It fails with ErrCollectionNotDeclared when T declares no
// collection and WithCollectionName is not given.
func CreateMongoRepository[T Entity](db *mongo.Database, options ...RepositoryOption[T]) (Repository[T], error) {
	opt := &option[T]{}
	for _, op := range options {
		op(opt)
	}

	name := strings.TrimSpace(opt.collectionName)
	if name == "" {
		var err error
		if name, err = ResolveCollectionName[T](); err != nil {
			return nil, err
		}
	}

	if db == nil {
		return nil, fmt.Errorf("%w: nil database", ErrConnect)
	}

	collection := db.Collection(name, mongoOptions.Collection().SetRegistry(Registry))

	repo := &mongoRepository[T]{
		collDef:    CollectionDef{Name: name, KeyField: KeyField},
		collection: collection,
	}

	if opt.initValues != nil {
		if err := repo.init(context.Background(), opt.initValues); err != nil {
			return nil, err
		}
	}

	return repo, nil
}

// NewRepository connects with settings and binds a repository for T.
func NewRepository[T Entity](ctx context.Context, settings MongoSettings, options ...RepositoryOption[T]) (Repository[T], error) {
	if _, err := ResolveCollectionName[T](); err != nil && !hasCollectionOverride(options) {
		return nil, err
	}

	db, err := Connect(ctx, settings)
	if err != nil {
		return nil, err
	}

	return CreateMongoRepository(db, options...)
}

func hasCollectionOverride[T any](options []RepositoryOption[T]) bool {
	opt := &option[T]{}
	for _, op := range options {
		op(opt)
	}

	return strings.TrimSpace(opt.collectionName) != ""
}

func (m *mongoRepository[T]) init(ctx context.Context, values []T) error {
	for _, v := range values {
		if err := m.InsertOne(ctx, v); err != nil {
			if !errors.Is(err, ErrKeyAlreadyExists) {
				return err
			}
		}
	}

	return nil
}

func (m *mongoRepository[T]) CollectionName() string {
	return m.collDef.Name
}

func (m *mongoRepository[T]) AsQueryable() *Query[T] {
	return newQuery[T](m)
}

func (m *mongoRepository[T]) FilterBy(ctx context.Context, filter Filter, options ...QueryOption) (RowIterator[T], error) {
	opt := buildQueryOption(options)

	cur, err := m.collection.Find(ctx, filter.BSON(), opt.findOptions())
	if err != nil {
		return nil, wrapMongoError(err)
	}

	return newCursorIterator[T](ctx, cur), nil
}

func (m *mongoRepository[T]) FindOne(ctx context.Context, filter Filter, options ...QueryOption) (*T, error) {
	opt := buildQueryOption(options)

	var dest T
	err := m.collection.FindOne(ctx, filter.BSON(), opt.findOneOptions()).Decode(&dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}

	if err != nil {
		return nil, wrapMongoError(err)
	}

	return &dest, nil
}

func (m *mongoRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}

	return m.FindOne(ctx, m.byKey(key))
}

func (m *mongoRepository[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	n, err := m.collection.CountDocuments(ctx, filter.BSON())
	if err != nil {
		return 0, wrapMongoError(err)
	}

	return n, nil
}

func (m *mongoRepository[T]) InsertOne(ctx context.Context, value T) error {
	if _, err := m.collection.InsertOne(ctx, value); err != nil {
		return wrapMongoError(err)
	}

	return nil
}

func (m *mongoRepository[T]) InsertMany(ctx context.Context, values []T) error {
	if len(values) == 0 {
		return ErrEmptyBatch
	}

	insertValues := sliceMap(values, func(val T) interface{} {
		return val
	})

	if _, err := m.collection.InsertMany(ctx, insertValues); err != nil {
		return wrapMongoError(err)
	}

	return nil
}

func (m *mongoRepository[T]) ReplaceOne(ctx context.Context, value T) error {
	res, err := m.collection.ReplaceOne(ctx, m.byKey(value.GetID()).BSON(), value)
	if err != nil {
		return wrapMongoError(err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s in %s", ErrKeyNotFound, value.GetID(),
			m.collDef.FullName(m.collection.Database().Name()))
	}

	return nil
}

func (m *mongoRepository[T]) DeleteOne(ctx context.Context, filter Filter) error {
	if _, err := m.collection.DeleteOne(ctx, filter.BSON()); err != nil {
		return wrapMongoError(err)
	}

	return nil
}

func (m *mongoRepository[T]) DeleteByID(ctx context.Context, id string) error {
	key, err := parseID(id)
	if err != nil {
		return err
	}

	return m.DeleteOne(ctx, m.byKey(key))
}

func (m *mongoRepository[T]) DeleteMany(ctx context.Context, filter Filter) error {
	if _, err := m.collection.DeleteMany(ctx, filter.BSON()); err != nil {
		return wrapMongoError(err)
	}

	return nil
}

func (m *mongoRepository[T]) FilterByAsync(ctx context.Context, filter Filter, options ...QueryOption) *Future[[]T] {
	return Go(ctx, func(ctx context.Context) ([]T, error) {
		it, err := m.FilterBy(ctx, filter, options...)
		if err != nil {
			return nil, err
		}

		return Collect(it)
	})
}

func (m *mongoRepository[T]) FindOneAsync(ctx context.Context, filter Filter, options ...QueryOption) *Future[*T] {
	return Go(ctx, func(ctx context.Context) (*T, error) {
		return m.FindOne(ctx, filter, options...)
	})
}

func (m *mongoRepository[T]) FindByIDAsync(ctx context.Context, id string) *Future[*T] {
	return Go(ctx, func(ctx context.Context) (*T, error) {
		return m.FindByID(ctx, id)
	})
}

func (m *mongoRepository[T]) CountAsync(ctx context.Context, filter Filter) *Future[int64] {
	return Go(ctx, func(ctx context.Context) (int64, error) {
		return m.Count(ctx, filter)
	})
}

func (m *mongoRepository[T]) InsertOneAsync(ctx context.Context, value T) *Future[Void] {
	return goVoid(ctx, func(ctx context.Context) error {
		return m.InsertOne(ctx, value)
	})
}

func (m *mongoRepository[T]) InsertManyAsync(ctx context.Context, values []T) *Future[Void] {
	return goVoid(ctx, func(ctx context.Context) error {
		return m.InsertMany(ctx, values)
	})
}

func (m *mongoRepository[T]) ReplaceOneAsync(ctx context.Context, value T) *Future[Void] {
	return goVoid(ctx, func(ctx context.Context) error {
		return m.ReplaceOne(ctx, value)
	})
}

func (m *mongoRepository[T]) DeleteOneAsync(ctx context.Context, filter Filter) *Future[Void] {
	return goVoid(ctx, func(ctx context.Context) error {
		return m.DeleteOne(ctx, filter)
	})
}

func (m *mongoRepository[T]) DeleteByIDAsync(ctx context.Context, id string) *Future[Void] {
	return goVoid(ctx, func(ctx context.Context) error {
		return m.DeleteByID(ctx, id)
	})
}

func (m *mongoRepository[T]) DeleteManyAsync(ctx context.Context, filter Filter) *Future[Void] {
	return goVoid(ctx, func(ctx context.Context) error {
		return m.DeleteMany(ctx, filter)
	})
}

func (m *mongoRepository[T]) byKey(key uuid.UUID) Filter {
	return Eq(m.collDef.KeyField, key)
}

func parseID(id string) (uuid.UUID, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w %q: %s", ErrInvalidID, id, err.Error())
	}

	return key, nil
}

func wrapMongoError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w", ErrKeyAlreadyExists, err)
	}

	return err
}
