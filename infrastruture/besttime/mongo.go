package besttime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps the best time in one document of a collection.
type MongoStore struct {
	collection *mongo.Collection
	id         string
}

type record struct {
	ID        string    `bson:"_id"`
	Best      float64   `bson:"best"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewMongoStore creates a store with the given client, database name, collection name and document id.
func NewMongoStore(client *mongo.Client, dbName, collectionName, id string) *MongoStore {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoStore{
		collection: collection,
		id:         id,
	}
}

// Load reads the stored best time.
func (m *MongoStore) Load() (float64, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var rec record
	if err := m.collection.FindOne(ctx, bson.M{"_id": m.id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("reading best time: %w", err)
	}
	if rec.Best < 0 {
		return 0, false, nil
	}
	return rec.Best, true, nil
}

// Save records best when it beats the stored value. $min keeps the update monotonic on the server.
func (m *MongoStore) Save(best float64) error {
	if best < 0 {
		return ErrNegativeTime
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": m.id}
	update := bson.M{
		"$min": bson.M{"best": best},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("writing best time: %w", err)
	}
	return nil
}
