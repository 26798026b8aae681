package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	mongoOptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoSettings locates the database every repository is bound to.
type MongoSettings struct {
	ConnectionString string `mapstructure:"connection_string"`
	DatabaseName     string `mapstructure:"database_name"`
}

// Connect opens a client for settings, verifies it with a ping and returns
// the configured database. Extra client options are applied after the
// connection string.
func Connect(ctx context.Context, settings MongoSettings, opts ...*mongoOptions.ClientOptions) (*mongo.Database, error) {
	if settings.DatabaseName == "" {
		return nil, fmt.Errorf("%w: database name is empty", ErrConnect)
	}

	clientOpts := append([]*mongoOptions.ClientOptions{
		mongoOptions.Client().ApplyURI(settings.ConnectionString),
	}, opts...)

	client, err := mongo.Connect(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	return client.Database(settings.DatabaseName), nil
}
