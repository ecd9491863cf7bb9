package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/linedash/internal/line/calc"
	"github.com/bitfantasy/linedash/internal/line/entity"
	"go.uber.org/zap"
)

type ProductionRepository struct {
	store  KVStore
	logger *zap.Logger
}

func NewProductionRepository(store KVStore, logger *zap.Logger) *ProductionRepository {
	return &ProductionRepository{store: store, logger: logger}
}

// LoadTables returns the production tables, seeding the three defaults.
func (r *ProductionRepository) LoadTables(ctx context.Context) ([]entity.ProductionTable, error) {
	var tables []entity.ProductionTable
	found, err := loadJSON(ctx, r.store, KeyProductionTables, &tables)
	if err != nil {
		var malformed *MalformedError
		if !errors.As(err, &malformed) {
			return nil, err
		}
		r.logger.Warn("Stored production tables unreadable, using defaults", zap.Error(err))
		found = false
	}
	if !found || tables == nil {
		return entity.DefaultProductionTables(), nil
	}
	for i := range tables {
		if tables[i].HourData == nil {
			tables[i].HourData = map[int]*entity.HourData{}
		}
	}
	return tables, nil
}

func (r *ProductionRepository) SaveTables(ctx context.Context, tables []entity.ProductionTable) error {
	return saveJSON(ctx, r.store, KeyProductionTables, tables)
}

// LoadLineSettings returns the operator line settings; zero values when unset.
func (r *ProductionRepository) LoadLineSettings(ctx context.Context) (calc.LineSettings, error) {
	var settings calc.LineSettings
	if _, err := loadJSON(ctx, r.store, KeyLineSettings, &settings); err != nil {
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			r.logger.Warn("Stored line settings unreadable, using defaults", zap.Error(err))
			return calc.LineSettings{}, nil
		}
		return calc.LineSettings{}, err
	}
	return settings, nil
}

func (r *ProductionRepository) SaveLineSettings(ctx context.Context, settings calc.LineSettings) error {
	return saveJSON(ctx, r.store, KeyLineSettings, settings)
}
