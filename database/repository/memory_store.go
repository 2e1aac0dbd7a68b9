package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store in process. Records are held as JSON-shaped
// documents so partial updates, merges and array operations behave like the
// remote backends. Field names are the records' json names.
type MemoryStore[T any, PT Document[T]] struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

// NewMemoryStore creates an empty in-memory Store.
func NewMemoryStore[T any, PT Document[T]]() *MemoryStore[T, PT] {
	return &MemoryStore[T, PT]{docs: make(map[string]map[string]any)}
}

func (s *MemoryStore[T, PT]) Create(_ context.Context, rec *T) (string, error) {
	doc, err := toDocument(rec)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.docs[id] = doc
	s.mu.Unlock()

	PT(rec).SetID(id)
	return id, nil
}

func (s *MemoryStore[T, PT]) Get(_ context.Context, id string) (*T, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s.decode(id, doc)
}

func (s *MemoryStore[T, PT]) List(ctx context.Context) ([]T, error) {
	return s.Query(ctx)
}

func (s *MemoryStore[T, PT]) Query(_ context.Context, filters ...Filter) ([]T, error) {
	wants := make([]any, len(filters))
	for i, f := range filters {
		v, err := normalize(f.Value)
		if err != nil {
			return nil, err
		}
		wants[i] = v
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := []T{}
	for _, id := range ids {
		doc := s.docs[id]
		matched := true
		for i, f := range filters {
			ok, err := matches(doc, f, wants[i])
			if err != nil {
				return nil, err
			}
			if !ok {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		rec, err := s.decode(id, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (s *MemoryStore[T, PT]) Update(_ context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return ErrNotFound
	}
	return setFields(doc, fields)
}

func (s *MemoryStore[T, PT]) Merge(_ context.Context, id string, fields map[string]any) error {
	if id == "" {
		return fmt.Errorf("merge: empty document id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		doc = make(map[string]any)
		s.docs[id] = doc
	}
	return setFields(doc, flattenFields(fields))
}

func (s *MemoryStore[T, PT]) AddToSet(_ context.Context, id, field string, value any) error {
	v, err := normalize(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return ErrNotFound
	}
	arr, _ := getPath(doc, field).([]any)
	for _, existing := range arr {
		if reflect.DeepEqual(existing, v) {
			return nil
		}
	}
	setPath(doc, field, append(arr, v))
	return nil
}

func (s *MemoryStore[T, PT]) Pull(_ context.Context, id, field string, value any) error {
	v, err := normalize(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return ErrNotFound
	}
	arr, _ := getPath(doc, field).([]any)
	kept := make([]any, 0, len(arr))
	for _, existing := range arr {
		if !reflect.DeepEqual(existing, v) {
			kept = append(kept, existing)
		}
	}
	setPath(doc, field, kept)
	return nil
}

func (s *MemoryStore[T, PT]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.docs, id)
	s.mu.Unlock()
	return nil
}

// decode must be called with at least a read lock held.
func (s *MemoryStore[T, PT]) decode(id string, doc map[string]any) (*T, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document %s: %w", id, err)
	}
	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	PT(&rec).SetID(id)
	return &rec, nil
}

func matches(doc map[string]any, f Filter, want any) (bool, error) {
	got := getPath(doc, f.Field)
	switch f.Op {
	case OpEqual:
		return reflect.DeepEqual(got, want), nil
	case OpArrayContains:
		arr, _ := got.([]any)
		for _, el := range arr {
			if reflect.DeepEqual(el, want) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("unsupported query operator %q", f.Op)
	}
}

func setFields(doc map[string]any, fields map[string]any) error {
	for path, value := range fields {
		v, err := normalize(value)
		if err != nil {
			return err
		}
		setPath(doc, path, v)
	}
	return nil
}

func toDocument(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	doc := make(map[string]any)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return doc, nil
}

// normalize converts v into the generic JSON shape documents are stored in.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return out, nil
}

func getPath(doc map[string]any, path string) any {
	parts := strings.Split(path, ".")
	var cur any = doc
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[p]
	}
	return cur
}

func setPath(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}
