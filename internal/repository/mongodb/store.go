// Package mongodb implements the user, topic and notification repositories on MongoDB.
//
// Documents use the string form of the domain UUIDs as _id and in every reference array.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	b "go.mongodb.org/mongo-driver/bson"
	mdb "go.mongodb.org/mongo-driver/mongo"
	mdbopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sumire/notices/internal/config"
)

const (
	usersCollection         = "users"
	topicsCollection        = "topics"
	notificationsCollection = "notifications"
)

// Store owns the MongoDB client and database handle.
type Store struct {
	client *mdb.Client
	db     *mdb.Database
}

// Open connects to MongoDB, verifies the connection and ensures indexes exist.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	opts := mdbopts.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(cfg.MongoTimeout).
		SetServerSelectionTimeout(cfg.MongoTimeout)

	client, err := mdb.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	s := &Store{client: client, db: client.Database(cfg.MongoDatabase)}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

// Database returns the handle shared by the repositories.
func (s *Store) Database() *mdb.Database {
	return s.db
}

// Ping checks connectivity to the primary.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on. Creating an existing index is a no-op.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		Collection string
		Field      string
		IndexOpts  mdb.IndexModel
	}{
		// Unique, normalized email.
		{
			Collection: usersCollection,
			IndexOpts: mdb.IndexModel{
				Keys:    b.M{"email": 1},
				Options: mdbopts.Index().SetUnique(true),
			},
		},
		// Topic names are globally unique.
		{
			Collection: topicsCollection,
			IndexOpts: mdb.IndexModel{
				Keys:    b.M{"name": 1},
				Options: mdbopts.Index().SetUnique(true),
			},
		},
		// Secret codes are unique among private topics only.
		{
			Collection: topicsCollection,
			IndexOpts: mdb.IndexModel{
				Keys: b.M{"secretId": 1},
				Options: mdbopts.Index().
					SetUnique(true).
					SetPartialFilterExpression(b.M{"type": "private"}),
			},
		},
		{
			Collection: topicsCollection,
			Field:      "creator",
		},
		{
			Collection: topicsCollection,
			Field:      "members",
		},
		// Inbox lookups by recipient, newest first.
		{
			Collection: notificationsCollection,
			IndexOpts:  mdb.IndexModel{Keys: b.D{{Key: "recipients", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		{
			Collection: notificationsCollection,
			IndexOpts:  mdb.IndexModel{Keys: b.D{{Key: "sender", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for _, idx := range indexes {
		if idx.Field != "" {
			idx.IndexOpts.Keys = b.M{idx.Field: 1}
		}
		if _, err := s.db.Collection(idx.Collection).Indexes().CreateOne(ctx, idx.IndexOpts); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.Collection, err)
		}
	}

	slog.DebugContext(ctx, "mongodb indexes ensured", "count", len(indexes))
	return nil
}
