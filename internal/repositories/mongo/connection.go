package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.mongodb.org/mongo-driver/bson"
)

// Config selects the provider directory database
type Config struct {
	URI        string
	Database   string
	Collection string
	PageSize   int
}

// MongoInternal is a struct that contains a MongoDB client
type MongoInternal struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    Config
}

// NewMongoInternal connects to the server and pings it
func NewMongoInternal(ctx context.Context, cfg Config) (*MongoInternal, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = "calldesk"
	}
	if cfg.Collection == "" {
		cfg.Collection = "providers"
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	m := &MongoInternal{client: client, db: client.Database(cfg.Database), cfg: cfg}
	if err := m.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}
	return m, nil
}

// Ping runs the ping command against the admin database
func (m *MongoInternal) Ping(ctx context.Context) error {
	return m.client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Providers returns the provider store backed by the configured collection
func (m *MongoInternal) Providers() *ProviderStore {
	return NewProviderStore(m.db.Collection(m.cfg.Collection), m.cfg.PageSize)
}

// Close disconnects the client
func (m *MongoInternal) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
