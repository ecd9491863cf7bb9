package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"go.uber.org/zap"
)

type UnwindRepository struct {
	store  KVStore
	logger *zap.Logger
}

func NewUnwindRepository(store KVStore, logger *zap.Logger) *UnwindRepository {
	return &UnwindRepository{store: store, logger: logger}
}

// Load returns both unwind stands ordered by id. Missing stands are filled
// with empty state.
func (r *UnwindRepository) Load(ctx context.Context) ([]entity.UnwindState, error) {
	var stored []entity.UnwindState
	if _, err := loadJSON(ctx, r.store, KeyUnwinds, &stored); err != nil {
		var malformed *MalformedError
		if !errors.As(err, &malformed) {
			return nil, err
		}
		r.logger.Warn("Stored unwind state unreadable, using defaults", zap.Error(err))
		stored = nil
	}

	unwinds := entity.DefaultUnwinds()
	for _, s := range stored {
		for i := range unwinds {
			if unwinds[i].ID == s.ID {
				unwinds[i] = s
			}
		}
	}
	return unwinds, nil
}

func (r *UnwindRepository) Save(ctx context.Context, unwinds []entity.UnwindState) error {
	return saveJSON(ctx, r.store, KeyUnwinds, unwinds)
}
