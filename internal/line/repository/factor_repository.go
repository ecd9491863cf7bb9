package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"go.uber.org/zap"
)

// ConversionFactorRepository persists the whole conversion factor table.
// Save overwrites the stored list; callers read-modify-write.
type ConversionFactorRepository interface {
	Load(ctx context.Context) ([]entity.ConversionFactor, error)
	Save(ctx context.Context, factors []entity.ConversionFactor) error
}

type kvFactorRepository struct {
	store  KVStore
	logger *zap.Logger
}

// NewConversionFactorRepository stores the table as a JSON array under
// KeyConversionFactors.
func NewConversionFactorRepository(store KVStore, logger *zap.Logger) ConversionFactorRepository {
	return &kvFactorRepository{store: store, logger: logger}
}

// storedFactor uses pointers so absent fields can be told apart from zeros.
type storedFactor struct {
	Diameter   *float64 `json:"diameter"`
	PerfLength *float64 `json:"perfLength"`
	Factor     *float64 `json:"factor"`
	IsLocked   *bool    `json:"isLocked"`
}

// Load returns the stored table, or the shipped defaults when nothing is
// stored. A stored value that fails validation is logged and replaced by the
// defaults in the result; it is not overwritten in the store.
func (r *kvFactorRepository) Load(ctx context.Context) ([]entity.ConversionFactor, error) {
	var stored []storedFactor
	found, err := loadJSON(ctx, r.store, KeyConversionFactors, &stored)
	if err != nil {
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			r.logger.Warn("Stored conversion factors unreadable, using defaults", zap.Error(err))
			return entity.DefaultConversionFactors(), nil
		}
		return nil, err
	}
	if !found {
		return entity.DefaultConversionFactors(), nil
	}

	factors, err := decodeFactors(stored)
	if err != nil {
		r.logger.Warn("Stored conversion factors invalid, using defaults", zap.Error(err))
		return entity.DefaultConversionFactors(), nil
	}
	return factors, nil
}

func (r *kvFactorRepository) Save(ctx context.Context, factors []entity.ConversionFactor) error {
	if factors == nil {
		factors = []entity.ConversionFactor{}
	}
	if err := ValidateFactors(factors); err != nil {
		return err
	}
	return saveJSON(ctx, r.store, KeyConversionFactors, factors)
}

func decodeFactors(stored []storedFactor) ([]entity.ConversionFactor, error) {
	if stored == nil {
		return nil, errors.New("not an array")
	}
	factors := make([]entity.ConversionFactor, 0, len(stored))
	for i, s := range stored {
		if s.Diameter == nil || s.PerfLength == nil || s.Factor == nil {
			return nil, fmt.Errorf("entry %d: missing field", i)
		}
		f := entity.ConversionFactor{
			Diameter:   *s.Diameter,
			PerfLength: *s.PerfLength,
			Factor:     *s.Factor,
		}
		if s.IsLocked != nil {
			f.IsLocked = *s.IsLocked
		}
		factors = append(factors, f)
	}
	if err := ValidateFactors(factors); err != nil {
		return nil, err
	}
	return factors, nil
}

// ValidateFactors checks that every entry is positive and that no
// (diameter, perfLength) pair appears twice.
func ValidateFactors(factors []entity.ConversionFactor) error {
	type pair struct{ d, p float64 }
	seen := make(map[pair]bool, len(factors))
	for i, f := range factors {
		if !(f.Diameter > 0) || !(f.PerfLength > 0) || !(f.Factor > 0) {
			return fmt.Errorf("entry %d (%v x %v): values must be positive", i, f.Diameter, f.PerfLength)
		}
		k := pair{f.Diameter, f.PerfLength}
		if seen[k] {
			return fmt.Errorf("entry %d (%v x %v): duplicate product spec", i, f.Diameter, f.PerfLength)
		}
		seen[k] = true
	}
	return nil
}
