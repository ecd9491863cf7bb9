package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"go.uber.org/zap"
)

// DocumentRepository stores one folder tree under a single key.
type DocumentRepository struct {
	store  KVStore
	key    string
	seed   func() []entity.DocFolder
	logger *zap.Logger
}

// NewDocumentRepository stores the tree under key. seed supplies the tree
// when nothing is stored; nil means an empty tree.
func NewDocumentRepository(store KVStore, key string, seed func() []entity.DocFolder, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{store: store, key: key, seed: seed, logger: logger}
}

func (r *DocumentRepository) Load(ctx context.Context) ([]entity.DocFolder, error) {
	var folders []entity.DocFolder
	found, err := loadJSON(ctx, r.store, r.key, &folders)
	if err != nil {
		var malformed *MalformedError
		if !errors.As(err, &malformed) {
			return nil, err
		}
		r.logger.Warn("Stored folder tree unreadable, using defaults", zap.String("key", r.key), zap.Error(err))
		found = false
	}
	if !found || folders == nil {
		if r.seed == nil {
			return []entity.DocFolder{}, nil
		}
		return r.seed(), nil
	}
	normalizeFolders(folders)
	return folders, nil
}

func (r *DocumentRepository) Save(ctx context.Context, folders []entity.DocFolder) error {
	return saveJSON(ctx, r.store, r.key, folders)
}

// normalizeFolders replaces nil slices so the tree encodes with empty arrays.
func normalizeFolders(folders []entity.DocFolder) {
	for i := range folders {
		if folders[i].Subfolders == nil {
			folders[i].Subfolders = []entity.DocFolder{}
		}
		if folders[i].Files == nil {
			folders[i].Files = []entity.DocItem{}
		}
		normalizeFolders(folders[i].Subfolders)
	}
}
