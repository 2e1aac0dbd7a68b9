package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoOpTimeout = 5 * time.Second

// MongoStore implements Store over a MongoDB collection. Documents are keyed
// by a string _id holding an ObjectID hex assigned on create.
type MongoStore[T any, PT Document[T]] struct {
	coll *mongo.Collection
}

// NewMongoStore creates a Store backed by the named collection of db.
func NewMongoStore[T any, PT Document[T]](db *mongo.Database, name string) *MongoStore[T, PT] {
	return &MongoStore[T, PT]{coll: db.Collection(name)}
}

// newContext derives a per-operation timeout from the caller's context.
func newContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, mongoOpTimeout)
}

func (s *MongoStore[T, PT]) Create(ctx context.Context, rec *T) (string, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	id := primitive.NewObjectID().Hex()
	PT(rec).SetID(id)
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		PT(rec).SetID("")
		return "", fmt.Errorf("failed to create %s document: %w", s.coll.Name(), err)
	}
	return id, nil
}

func (s *MongoStore[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	var rec T
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch %s/%s: %w", s.coll.Name(), id, err)
	}
	PT(&rec).SetID(id)
	return &rec, nil
}

func (s *MongoStore[T, PT]) List(ctx context.Context) ([]T, error) {
	return s.find(ctx, bson.M{})
}

// Query translates filters into a Mongo filter document. Both operators map to
// plain field equality, which Mongo also applies element-wise to arrays.
func (s *MongoStore[T, PT]) Query(ctx context.Context, filters ...Filter) ([]T, error) {
	filter := bson.M{}
	for _, f := range filters {
		switch f.Op {
		case OpEqual, OpArrayContains:
			filter[f.Field] = f.Value
		default:
			return nil, fmt.Errorf("unsupported query operator %q", f.Op)
		}
	}
	return s.find(ctx, filter)
}

func (s *MongoStore[T, PT]) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return s.updateWithOperator(ctx, id, "$set", bson.M(fields), false)
}

func (s *MongoStore[T, PT]) Merge(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return fmt.Errorf("merge into %s: empty document id", s.coll.Name())
	}
	if len(fields) == 0 {
		return nil
	}
	return s.updateWithOperator(ctx, id, "$set", bson.M(flattenFields(fields)), true)
}

func (s *MongoStore[T, PT]) AddToSet(ctx context.Context, id, field string, value any) error {
	return s.updateWithOperator(ctx, id, "$addToSet", bson.M{field: value}, false)
}

func (s *MongoStore[T, PT]) Pull(ctx context.Context, id, field string, value any) error {
	return s.updateWithOperator(ctx, id, "$pull", bson.M{field: value}, false)
}

func (s *MongoStore[T, PT]) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", s.coll.Name(), id, err)
	}
	return nil
}

func (s *MongoStore[T, PT]) updateWithOperator(ctx context.Context, id, operator string, doc bson.M, upsert bool) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	opts := options.Update().SetUpsert(upsert)
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{operator: doc}, opts)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", s.coll.Name(), id, err)
	}
	if !upsert && result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore[T, PT]) find(ctx context.Context, filter bson.M) ([]T, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	for cursor.Next(ctx) {
		var rec T
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", s.coll.Name(), err)
		}
		out = append(out, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error on %s: %w", s.coll.Name(), err)
	}
	return out, nil
}
