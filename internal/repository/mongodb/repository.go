package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

// Collection names, matching the layout of the Food database.
const (
	collInvoices     = "sold-invoices"
	collMembers      = "members"
	collExpenses     = "expenses"
	collStaffs       = "staffs"
	collTables       = "tables"
	collUsers        = "users"
	collCounters     = "counters"
	collDailyReports = "daily_reports"
)

// Store is the MongoDB-backed record store every service receives at
// construction. It owns the client; services never touch collections
// directly.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection with a ping.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// EnsureIndexes creates the lookup and range-scan indexes the core relies
// on: unique invoice serial, unique member mobile, and createdAt indexes for
// window queries. Idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		collInvoices: {
			{Keys: bson.D{{Key: "fr_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		},
		collMembers: {
			{Keys: bson.D{{Key: "mobile", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collExpenses: {
			{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		},
		collStaffs: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collTables: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// storeErr classifies a driver error for the caller. Anything that is not a
// recognized client-fault condition is treated as store unavailability.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Wrap(apperr.KindConflict, op+": duplicate key", err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
		mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return apperr.Wrap(apperr.KindStoreUnavailable, op+": store unreachable", err)
	}
	return apperr.Wrap(apperr.KindStoreUnavailable, op+": store operation failed", err)
}
