// Package gormstore implements docstore.Store on PostgreSQL, for deployments
// that run self-hosted instead of against the hosted document store. Every
// collection shares one table; document fields live in a JSONB column.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Document is the GORM model backing all collections.
type Document struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Collection string            `gorm:"size:64;not null;index:idx_documents_collection"`
	Data       datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt  time.Time         `gorm:"index"`
	UpdatedAt  time.Time
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Query(ctx context.Context, collection string, where docstore.Where, opts *docstore.Options) ([]docstore.Record, error) {
	tx := s.db.WithContext(ctx).Model(&Document{}).Where("collection = ?", collection)

	for key, value := range where {
		if key == "objectId" {
			id, ok := value.(string)
			if !ok {
				return []docstore.Record{}, nil
			}
			parsed, err := uuid.Parse(id)
			if err != nil {
				return []docstore.Record{}, nil
			}
			tx = tx.Where("id = ?", parsed)
			continue
		}
		tx = tx.Where(datatypes.JSONQuery("data").Equals(value, key))
	}

	if opts != nil {
		switch opts.Order {
		case "createdAt":
			tx = tx.Order("created_at ASC")
		case "-createdAt":
			tx = tx.Order("created_at DESC")
		}
		if opts.Limit > 0 {
			tx = tx.Limit(opts.Limit)
		}
	}

	var docs []Document
	if err := tx.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("gormstore: query %s: %w", collection, err)
	}

	records := make([]docstore.Record, len(docs))
	for i, d := range docs {
		records[i] = d.record()
	}
	return records, nil
}

func (s *Store) Create(ctx context.Context, collection string, fields map[string]any) (*docstore.Record, error) {
	doc := Document{
		ID:         uuid.New(),
		Collection: collection,
		Data:       datatypes.JSONMap(fields),
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return nil, fmt.Errorf("gormstore: create in %s: %w", collection, err)
	}
	rec := doc.record()
	return &rec, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) (*docstore.Record, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, docstore.ErrNotFound
	}

	var doc Document
	err = s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, parsed).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gormstore: load %s/%s: %w", collection, id, err)
	}

	for k, v := range fields {
		doc.Data[k] = v
	}
	if err := s.db.WithContext(ctx).Save(&doc).Error; err != nil {
		return nil, fmt.Errorf("gormstore: update %s/%s: %w", collection, id, err)
	}
	rec := doc.record()
	return &rec, nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return docstore.ErrNotFound
	}

	result := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, parsed).
		Delete(&Document{})
	if result.Error != nil {
		return fmt.Errorf("gormstore: delete %s/%s: %w", collection, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (d Document) record() docstore.Record {
	fields := make(map[string]any, len(d.Data))
	for k, v := range d.Data {
		fields[k] = v
	}
	return docstore.Record{
		ID:        d.ID.String(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Fields:    fields,
	}
}
