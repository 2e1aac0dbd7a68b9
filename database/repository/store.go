package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist in its collection.
var ErrNotFound = errors.New("document not found")

// Op is a query predicate operator. The values are the Firestore operator strings.
type Op string

const (
	OpEqual         Op = "=="
	OpArrayContains Op = "array-contains"
)

// Filter is a single query predicate on a document field.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Where builds a Filter.
func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// Document is the constraint every stored record satisfies: the store writes
// its own key back through SetID on every read and create.
type Document[T any] interface {
	*T
	SetID(id string)
}

// Store is a typed repository over one collection. Each method maps onto a
// single remote call; nothing is batched, retried or wrapped in a transaction.
type Store[T any] interface {
	// Create inserts rec under a store-assigned id, writes the id back onto rec and returns it.
	Create(ctx context.Context, rec *T) (string, error)
	// Get returns the document with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*T, error)
	// List returns every document in the collection.
	List(ctx context.Context) ([]T, error)
	// Query returns the documents matching all filters.
	Query(ctx context.Context, filters ...Filter) ([]T, error)
	// Update sets the given fields on an existing document. Dotted keys address nested fields.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Merge upserts the given fields; fields not named keep their stored values.
	// A map[string]any value is merged key by key into the stored map rather
	// than replacing it. Any other value, structs included, replaces the field.
	Merge(ctx context.Context, id string, fields map[string]any) error
	// AddToSet adds value to the array field unless already present.
	AddToSet(ctx context.Context, id, field string, value any) error
	// Pull removes every occurrence of value from the array field.
	Pull(ctx context.Context, id, field string, value any) error
	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error
}

// flattenFields rewrites nested map[string]any values as dotted paths so a
// merge touches only the leaves named.
func flattenFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	flattenInto(out, "", fields)
	return out
}

func flattenInto(out map[string]any, prefix string, fields map[string]any) {
	for k, v := range fields {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			flattenInto(out, path, nested)
			continue
		}
		out[path] = v
	}
}
