package cart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection is the collection MongoStore writes to.
const MongoCollection = "cart_slots"

type slotDocument struct {
	ID        string    `bson:"_id"`
	Namespace string    `bson:"namespace"`
	Key       string    `bson:"key"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per namespace and key.
type MongoStore struct {
	coll      *mongo.Collection
	namespace string
}

func NewMongoStore(coll *mongo.Collection, namespace string) *MongoStore {
	return &MongoStore{coll: coll, namespace: namespace}
}

func (s *MongoStore) docID(key string) string {
	return s.namespace + ":" + key
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc slotDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": s.docID(key)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Value, true, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "namespace", Value: s.namespace},
		{Key: "key", Value: key},
		{Key: "value", Value: value},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}

	opts := options.Update().SetUpsert(true)
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": s.docID(key)}, update, opts)
	return err
}

func (s *MongoStore) Clear(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.docID(key)})
	return err
}
