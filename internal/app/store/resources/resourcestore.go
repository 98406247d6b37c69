package resourcestore

import (
	"context"

	"github.com/dmagnetico/arsenal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the resources collection. The collection
// mirrors the in-memory catalog: list order is an explicit per-document
// field, and every save replaces the whole set.
type Store struct {
	c *mongo.Collection
}

// New creates a new resource store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("resources")}
}

// doc wraps a resource with its list position so the catalog order
// survives the round trip.
type doc struct {
	Ord      int             `bson:"ord"`
	Resource models.Resource `bson:",inline"`
}

// LoadAll returns every stored resource in catalog order.
func (s *Store) LoadAll(ctx context.Context) ([]models.Resource, error) {
	opts := options.Find().SetSort(bson.D{{Key: "ord", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Resource
	for cur.Next(ctx) {
		var d doc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.Resource)
	}
	return out, cur.Err()
}

// SaveAll replaces the stored set with the given list, positions
// assigned from list order. Saving an empty list clears the
// collection.
func (s *Store) SaveAll(ctx context.Context, resources []models.Resource) error {
	if _, err := s.c.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(resources) == 0 {
		return nil
	}

	docs := make([]interface{}, len(resources))
	for i, r := range resources {
		docs[i] = doc{Ord: i, Resource: r}
	}
	_, err := s.c.InsertMany(ctx, docs)
	return err
}
