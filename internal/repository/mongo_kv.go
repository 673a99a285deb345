package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/techstore-cart/internal/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoUpdateAttempts = 10

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	Version   int64     `bson:"version"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoKV struct {
	collection *mongo.Collection
}

func NewMongo(db *mongo.Database) port.KeyValueStore {
	return &mongoKV{
		collection: db.Collection("kv_entries"),
	}
}

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("client.Ping: %w", err)
	}

	return client.Database(database), nil
}

func (m *mongoKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	doc, found, err := m.find(ctx, key)
	if err != nil {
		return "", false, err
	}

	return doc.Value, found, nil
}

func (m *mongoKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	update := bson.M{
		"$set": bson.M{"value": value, "updated_at": time.Now()},
		"$inc": bson.M{"version": 1},
	}

	_, err := m.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("collection.UpdateOne: %w", err)
	}

	return nil
}

// Update compares and swaps on the document version; a standalone server
// has no multi-document transactions to lean on.
func (m *mongoKV) Update(ctx context.Context, key string, fn func(string, bool) (string, error)) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	for range mongoUpdateAttempts {
		doc, found, err := m.find(ctx, key)
		if err != nil {
			return err
		}

		next, err := fn(doc.Value, found)
		if err != nil {
			return err
		}

		if !found {
			_, err = m.collection.InsertOne(ctx, kvDocument{
				Key:       key,
				Value:     next,
				Version:   1,
				UpdatedAt: time.Now(),
			})
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			if err != nil {
				return fmt.Errorf("collection.InsertOne: %w", err)
			}
			return nil
		}

		filter := bson.M{"_id": key, "version": doc.Version}
		update := bson.M{
			"$set": bson.M{"value": next, "updated_at": time.Now()},
			"$inc": bson.M{"version": 1},
		}

		result, err := m.collection.UpdateOne(ctx, filter, update)
		if err != nil {
			return fmt.Errorf("collection.UpdateOne: %w", err)
		}
		if result.MatchedCount == 1 {
			return nil
		}
	}

	return fmt.Errorf("key[%s] update gave up after %d attempts", key, mongoUpdateAttempts)
}

func (m *mongoKV) find(ctx context.Context, key string) (kvDocument, bool, error) {
	var doc kvDocument

	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return kvDocument{}, false, nil
	}
	if err != nil {
		return kvDocument{}, false, fmt.Errorf("collection.FindOne: %w", err)
	}

	return doc, true, nil
}
