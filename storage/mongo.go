package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Port on a single MongoDB collection. Each key is
// one document holding the raw JSON value, so the collection has the
// same shape as the storefront's original key-value layout.
type Mongo struct {
	collection *mongo.Collection
}

type kvDocument struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// NewMongo returns a Port backed by the given database's "state"
// collection.
func NewMongo(client *mongo.Client, database string) *Mongo {
	return &Mongo{
		collection: client.Database(database).Collection("state"),
	}
}

// Load reads the value stored under key.
func (m *Mongo) Load(ctx context.Context, key string) ([]byte, error) {
	var doc kvDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.Value, nil
}

// Save upserts the value stored under key.
func (m *Mongo) Save(ctx context.Context, key string, data []byte) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, kvDocument{Key: key, Value: data}, opts)
	if err != nil {
		return &PersistenceError{Key: key, Err: err}
	}
	return nil
}

// Remove deletes the value stored under key. Deleting an absent key
// is not an error.
func (m *Mongo) Remove(ctx context.Context, key string) error {
	_, err := m.collection.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return &PersistenceError{Key: key, Err: err}
	}
	return nil
}
