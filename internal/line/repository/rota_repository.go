package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"go.uber.org/zap"
)

type RotaRepository struct {
	store  KVStore
	logger *zap.Logger
}

func NewRotaRepository(store KVStore, logger *zap.Logger) *RotaRepository {
	return &RotaRepository{store: store, logger: logger}
}

// Load returns rota entries keyed by date (entity.RotaDateLayout).
func (r *RotaRepository) Load(ctx context.Context) (map[string]entity.RotaEntry, error) {
	entries := map[string]entity.RotaEntry{}
	if _, err := loadJSON(ctx, r.store, KeyShiftRota, &entries); err != nil {
		var malformed *MalformedError
		if !errors.As(err, &malformed) {
			return nil, err
		}
		r.logger.Warn("Stored shift rota unreadable, starting empty", zap.Error(err))
		return map[string]entity.RotaEntry{}, nil
	}
	if entries == nil {
		entries = map[string]entity.RotaEntry{}
	}
	return entries, nil
}

func (r *RotaRepository) Save(ctx context.Context, entries map[string]entity.RotaEntry) error {
	return saveJSON(ctx, r.store, KeyShiftRota, entries)
}
