package databases

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBackend stores each record as a document whose _id is the record id
type MongoBackend struct {
	db DatabaseHelper
}

// NewMongoBackend sets up the backend on an existing database
func NewMongoBackend(db DatabaseHelper) *MongoBackend {
	return &MongoBackend{db: db}
}

// Load reads every document in the collection
func (m *MongoBackend) Load(ctx context.Context, collection string) (Snapshot, error) {
	cursor, err := m.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}

	snapshot := make(Snapshot, len(docs))
	for _, doc := range docs {
		id, ok := doc["_id"].(string)
		if !ok {
			continue
		}
		delete(doc, "_id")
		rec, err := Normalize(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize %s/%s: %w", collection, id, err)
		}
		snapshot[id] = rec
	}
	return snapshot, nil
}

// Put replaces the document, inserting it when absent
func (m *MongoBackend) Put(ctx context.Context, collection, id string, record Record) error {
	doc := bson.M{"_id": id}
	for k, v := range record {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	return m.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
}

// Patch sets the given fields, inserting the document when absent
func (m *MongoBackend) Patch(ctx context.Context, collection, id string, patch Record) error {
	if len(patch) == 0 {
		return nil
	}
	set := bson.M{}
	for k, v := range patch {
		if k == "_id" {
			continue
		}
		set[k] = v
	}
	return m.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}, options.Update().SetUpsert(true))
}
