// Package memstore is an in-memory docstore.Store used by unit tests and as a
// throwaway backend for local development.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/google/uuid"
)

type document struct {
	id        string
	createdAt time.Time
	updatedAt time.Time
	fields    map[string]any
}

// Store holds documents per collection, guarded by a single mutex.
type Store struct {
	mu          sync.Mutex
	collections map[string][]*document
	now         func() time.Time
}

func New() *Store {
	return &Store{
		collections: make(map[string][]*document),
		now:         time.Now,
	}
}

// SetClock replaces the timestamp source. Tests use it to control createdAt
// and updatedAt, which the voting round fence compares.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Query(_ context.Context, collection string, where docstore.Where, opts *docstore.Options) ([]docstore.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	matched := make([]*document, 0, len(docs))
	for _, d := range docs {
		if matches(d, where) {
			matched = append(matched, d)
		}
	}

	if opts != nil {
		switch opts.Order {
		case "createdAt":
			sort.SliceStable(matched, func(i, j int) bool { return matched[i].createdAt.Before(matched[j].createdAt) })
		case "-createdAt":
			sort.SliceStable(matched, func(i, j int) bool { return matched[i].createdAt.After(matched[j].createdAt) })
		}
		if opts.Limit > 0 && len(matched) > opts.Limit {
			matched = matched[:opts.Limit]
		}
	}

	out := make([]docstore.Record, len(matched))
	for i, d := range matched {
		out[i] = d.record()
	}
	return out, nil
}

func (s *Store) Create(_ context.Context, collection string, fields map[string]any) (*docstore.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	d := &document{
		id:        uuid.NewString(),
		createdAt: now,
		updatedAt: now,
		fields:    copyFields(fields),
	}
	s.collections[collection] = append(s.collections[collection], d)
	rec := d.record()
	return &rec, nil
}

func (s *Store) Update(_ context.Context, collection, id string, fields map[string]any) (*docstore.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.collections[collection] {
		if d.id == id {
			for k, v := range fields {
				d.fields[k] = v
			}
			d.updatedAt = s.now()
			rec := d.record()
			return &rec, nil
		}
	}
	return nil, docstore.ErrNotFound
}

func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, d := range docs {
		if d.id == id {
			s.collections[collection] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return docstore.ErrNotFound
}

func (d *document) record() docstore.Record {
	return docstore.Record{
		ID:        d.id,
		CreatedAt: d.createdAt,
		UpdatedAt: d.updatedAt,
		Fields:    copyFields(d.fields),
	}
}

func matches(d *document, where docstore.Where) bool {
	for k, want := range where {
		if k == "objectId" {
			if s, ok := want.(string); !ok || s != d.id {
				return false
			}
			continue
		}
		if !looseEqual(d.fields[k], want) {
			return false
		}
	}
	return true
}

// looseEqual compares scalars across the numeric types JSON round-trips
// produce.
func looseEqual(a, b any) bool {
	if af, ok := asFloat(a); ok {
		bf, ok := asFloat(b)
		return ok && af == bf
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
