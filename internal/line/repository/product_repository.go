package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"go.uber.org/zap"
)

type ProductRepository struct {
	store  KVStore
	logger *zap.Logger
}

func NewProductRepository(store KVStore, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{store: store, logger: logger}
}

// LoadFolders returns the product folders, seeding the three product lines
// when nothing is stored.
func (r *ProductRepository) LoadFolders(ctx context.Context) ([]entity.ProductFolder, error) {
	var folders []entity.ProductFolder
	found, err := loadJSON(ctx, r.store, KeyProductSettings, &folders)
	if err != nil {
		var malformed *MalformedError
		if !errors.As(err, &malformed) {
			return nil, err
		}
		r.logger.Warn("Stored product settings unreadable, using defaults", zap.Error(err))
		found = false
	}
	if !found || folders == nil {
		return entity.DefaultProductFolders(), nil
	}
	for i := range folders {
		if folders[i].Products == nil {
			folders[i].Products = []entity.Product{}
		}
	}
	return folders, nil
}

func (r *ProductRepository) SaveFolders(ctx context.Context, folders []entity.ProductFolder) error {
	return saveJSON(ctx, r.store, KeyProductSettings, folders)
}

// IsLocked reports whether the active product selection is locked.
func (r *ProductRepository) IsLocked(ctx context.Context) (bool, error) {
	var locked bool
	if _, err := loadJSON(ctx, r.store, KeyProductLocked, &locked); err != nil {
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			r.logger.Warn("Stored product lock unreadable, treating as unlocked", zap.Error(err))
			return false, nil
		}
		return false, err
	}
	return locked, nil
}

func (r *ProductRepository) SetLocked(ctx context.Context, locked bool) error {
	return saveJSON(ctx, r.store, KeyProductLocked, locked)
}
