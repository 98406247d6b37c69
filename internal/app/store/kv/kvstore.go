package kvstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the kv collection, which holds the small
// string values the engine keeps outside the catalog: the module
// order, the unlocked-id list, and per-identity join dates.
type Store struct {
	c *mongo.Collection
}

// New creates a new kv store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("kv")}
}

type entry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Get returns the value for a key. A missing key reports ok=false
// with no error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var e entry
	err := s.c.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// Set writes the value for a key, creating it when absent.
func (s *Store) Set(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{
		"value":      value,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": key}, update, opts)
	return err
}
