package repository

import (
	"context"
	"errors"
	"time"

	"github.com/windoze95/vanadisheart-api/internal/logger"
	"github.com/windoze95/vanadisheart-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is a Store backed by the store_entries SQL table.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore creates a new GormStore. The table must already be migrated.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Get returns the value stored under key.
func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.StoreEntry
	err := s.DB.WithContext(ctx).
		Where("entry_key = ?", key).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("key %q not found", key)
		}
		return nil, err
	}
	return entry.Value, nil
}

// Set upserts value under key.
func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	entry := models.StoreEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		logger.Get().Error("failed to write store entry", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (s *GormStore) Delete(ctx context.Context, key string) error {
	err := s.DB.WithContext(ctx).
		Where("entry_key = ?", key).
		Delete(&models.StoreEntry{}).Error
	if err != nil {
		logger.Get().Error("failed to delete store entry", zap.String("key", key), zap.Error(err))
	}
	return err
}
