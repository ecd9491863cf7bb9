package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// KVEntry is one row of the kv_entries table.
type KVEntry struct {
	Key       string    `json:"key" gorm:"primaryKey;size:128"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// GormStore keeps values in a SQL table through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates the kv_entries table.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&KVEntry{})
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Set upserts the value for key.
func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	entry := KVEntry{Key: key}
	return s.db.WithContext(ctx).
		Where("key = ?", key).
		Assign(map[string]interface{}{
			"value":      string(value),
			"updated_at": time.Now(),
		}).
		FirstOrCreate(&entry).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&KVEntry{}, "key = ?", key).Error
}

// List returns every stored entry ordered by key.
func (s *GormStore) List(ctx context.Context) ([]KVEntry, error) {
	var entries []KVEntry
	err := s.db.WithContext(ctx).Order("key ASC").Find(&entries).Error
	return entries, err
}
