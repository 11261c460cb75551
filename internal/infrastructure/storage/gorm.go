package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/SeimoDev/LightShop/domain"
)

// KVEntry is the database model for one stored key.
type KVEntry struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value string
}

// TableName returns the table name for GORM.
func (KVEntry) TableName() string {
	return "client_state"
}

// GormStore implements domain.Storage on a SQLite database, for client
// hosts that already carry a local database file.
type GormStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the SQLite database at dsn and migrates the
// key-value table. Use ":memory:" in tests.
func OpenSQLite(dsn string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite storage: %w", err)
	}
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("migrate client_state table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Get implements domain.Storage.
func (s *GormStore) Get(ctx context.Context, key string) (string, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlite get: %w", err)
	}
	return entry.Value, nil
}

// Set implements domain.Storage using an upsert.
func (s *GormStore) Set(ctx context.Context, key, value string) error {
	entry := KVEntry{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("sqlite set: %w", err)
	}
	return nil
}

// Delete implements domain.Storage.
func (s *GormStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&KVEntry{}).Error
	if err != nil {
		return fmt.Errorf("sqlite del: %w", err)
	}
	return nil
}
