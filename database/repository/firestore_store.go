package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements Store over a Firestore collection.
type FirestoreStore[T any, PT Document[T]] struct {
	coll *firestore.CollectionRef
}

// NewFirestoreStore creates a Store backed by the named Firestore collection.
func NewFirestoreStore[T any, PT Document[T]](client *firestore.Client, name string) *FirestoreStore[T, PT] {
	return &FirestoreStore[T, PT]{coll: client.Collection(name)}
}

func (s *FirestoreStore[T, PT]) Create(ctx context.Context, rec *T) (string, error) {
	ref := s.coll.NewDoc()
	if _, err := ref.Create(ctx, rec); err != nil {
		return "", fmt.Errorf("failed to create %s document: %w", s.coll.ID, err)
	}
	PT(rec).SetID(ref.ID)
	return ref.ID, nil
}

func (s *FirestoreStore[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	snap, err := s.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch %s/%s: %w", s.coll.ID, id, err)
	}
	return s.decode(snap)
}

func (s *FirestoreStore[T, PT]) List(ctx context.Context) ([]T, error) {
	return s.collect(ctx, s.coll.Query)
}

func (s *FirestoreStore[T, PT]) Query(ctx context.Context, filters ...Filter) ([]T, error) {
	q := s.coll.Query
	for _, f := range filters {
		q = q.Where(f.Field, string(f.Op), f.Value)
	}
	return s.collect(ctx, q)
}

func (s *FirestoreStore[T, PT]) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	return s.update(ctx, id, updates)
}

func (s *FirestoreStore[T, PT]) Merge(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return fmt.Errorf("merge into %s: empty document id", s.coll.ID)
	}
	if _, err := s.coll.Doc(id).Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to merge %s/%s: %w", s.coll.ID, id, err)
	}
	return nil
}

func (s *FirestoreStore[T, PT]) AddToSet(ctx context.Context, id, field string, value any) error {
	return s.update(ctx, id, []firestore.Update{{Path: field, Value: firestore.ArrayUnion(value)}})
}

func (s *FirestoreStore[T, PT]) Pull(ctx context.Context, id, field string, value any) error {
	return s.update(ctx, id, []firestore.Update{{Path: field, Value: firestore.ArrayRemove(value)}})
}

func (s *FirestoreStore[T, PT]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if _, err := s.coll.Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", s.coll.ID, id, err)
	}
	return nil
}

func (s *FirestoreStore[T, PT]) update(ctx context.Context, id string, updates []firestore.Update) error {
	if id == "" {
		return ErrNotFound
	}
	if _, err := s.coll.Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update %s/%s: %w", s.coll.ID, id, err)
	}
	return nil
}

func (s *FirestoreStore[T, PT]) collect(ctx context.Context, q firestore.Query) ([]T, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.coll.ID, err)
	}
	out := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		rec, err := s.decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (s *FirestoreStore[T, PT]) decode(snap *firestore.DocumentSnapshot) (*T, error) {
	var rec T
	if err := snap.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", s.coll.ID, snap.Ref.ID, err)
	}
	PT(&rec).SetID(snap.Ref.ID)
	return &rec, nil
}
