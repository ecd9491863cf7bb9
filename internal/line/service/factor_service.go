package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/bitfantasy/linedash/internal/line/calc"
	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"github.com/bitfantasy/linedash/internal/line/sse"
	"go.uber.org/zap"
)

// FactorService manages the conversion factor table and answers calculator
// queries against its current contents.
type FactorService struct {
	mu     sync.Mutex
	repo   repository.ConversionFactorRepository
	hub    *sse.Hub
	logger *zap.Logger
}

func NewFactorService(repo repository.ConversionFactorRepository, hub *sse.Hub, logger *zap.Logger) *FactorService {
	return &FactorService{repo: repo, hub: hub, logger: logger}
}

// ========== Table management ==========

func (s *FactorService) List(ctx context.Context) ([]entity.ConversionFactor, error) {
	return s.repo.Load(ctx)
}

// Table returns the current table as a calculator lookup.
func (s *FactorService) Table(ctx context.Context) (calc.Factors, error) {
	factors, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return calc.Factors(factors), nil
}

func (s *FactorService) Add(ctx context.Context, f entity.ConversionFactor) (*entity.ConversionFactor, error) {
	if !(f.Diameter > 0) || !(f.PerfLength > 0) || !(f.Factor > 0) {
		return nil, fmt.Errorf("%w: diameter, perf length and factor must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	factors, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if findFactor(factors, f.Diameter, f.PerfLength) >= 0 {
		return nil, fmt.Errorf("%w: factor for %v x %v", ErrDuplicate, f.Diameter, f.PerfLength)
	}
	factors = append(factors, f)
	if err := s.save(ctx, factors); err != nil {
		return nil, err
	}
	return &f, nil
}

// Update changes the factor value of an unlocked entry.
func (s *FactorService) Update(ctx context.Context, diameter, perfLength, factor float64) (*entity.ConversionFactor, error) {
	if !(factor > 0) {
		return nil, fmt.Errorf("%w: factor must be positive", ErrInvalidInput)
	}
	return s.mutate(ctx, diameter, perfLength, func(f *entity.ConversionFactor) error {
		if f.IsLocked {
			return ErrLocked
		}
		f.Factor = factor
		return nil
	})
}

func (s *FactorService) SetLocked(ctx context.Context, diameter, perfLength float64, locked bool) (*entity.ConversionFactor, error) {
	return s.mutate(ctx, diameter, perfLength, func(f *entity.ConversionFactor) error {
		f.IsLocked = locked
		return nil
	})
}

// Delete removes an unlocked entry.
func (s *FactorService) Delete(ctx context.Context, diameter, perfLength float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	factors, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	i := findFactor(factors, diameter, perfLength)
	if i < 0 {
		return fmt.Errorf("factor %v x %v: %w", diameter, perfLength, ErrNotFound)
	}
	if factors[i].IsLocked {
		return fmt.Errorf("factor %v x %v: %w", diameter, perfLength, ErrLocked)
	}
	factors = append(factors[:i], factors[i+1:]...)
	return s.save(ctx, factors)
}

// Rewrite rebuilds the table from its current contents while holding the
// table lock. An error from build leaves the stored table untouched.
func (s *FactorService) Rewrite(ctx context.Context, build func(current []entity.ConversionFactor) ([]entity.ConversionFactor, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	next, err := build(current)
	if err != nil {
		return err
	}
	if err := repository.ValidateFactors(next); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.save(ctx, next)
}

func (s *FactorService) mutate(ctx context.Context, diameter, perfLength float64, apply func(*entity.ConversionFactor) error) (*entity.ConversionFactor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	factors, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := findFactor(factors, diameter, perfLength)
	if i < 0 {
		return nil, fmt.Errorf("factor %v x %v: %w", diameter, perfLength, ErrNotFound)
	}
	if err := apply(&factors[i]); err != nil {
		return nil, fmt.Errorf("factor %v x %v: %w", diameter, perfLength, err)
	}
	if err := s.save(ctx, factors); err != nil {
		return nil, err
	}
	f := factors[i]
	return &f, nil
}

func (s *FactorService) save(ctx context.Context, factors []entity.ConversionFactor) error {
	if err := s.repo.Save(ctx, factors); err != nil {
		return fmt.Errorf("save conversion factors: %w", err)
	}
	if s.hub != nil {
		s.hub.Publish(sse.EventFactors, factors)
	}
	return nil
}

func findFactor(factors []entity.ConversionFactor, diameter, perfLength float64) int {
	for i, f := range factors {
		if f.Matches(diameter, perfLength) {
			return i
		}
	}
	return -1
}

// ========== Calculator entry points ==========

func (s *FactorService) LogsPerMinute(ctx context.Context, speed, diameter, perfLength float64) (float64, bool, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return 0, false, err
	}
	v, ok := calc.CalculateLogsPerMinute(table, speed, diameter, perfLength)
	s.logger.Debug("logs per minute",
		zap.Float64("speed", speed), zap.Float64("diameter", diameter),
		zap.Float64("perf_length", perfLength), zap.Bool("available", ok), zap.Float64("result", v))
	return v, ok, nil
}

func (s *FactorService) RequiredSpeed(ctx context.Context, target, diameter, perfLength float64) (float64, bool, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return 0, false, err
	}
	v, ok := calc.CalculateRequiredSpeed(table, target, diameter, perfLength)
	s.logger.Debug("required speed",
		zap.Float64("target", target), zap.Float64("diameter", diameter),
		zap.Float64("perf_length", perfLength), zap.Bool("available", ok), zap.Float64("result", v))
	return v, ok, nil
}

func (s *FactorService) HasValidFactor(ctx context.Context, diameter, perfLength float64) (bool, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return false, err
	}
	ok := calc.HasValidConversionFactor(table, diameter, perfLength)
	s.logger.Debug("factor lookup",
		zap.Float64("diameter", diameter), zap.Float64("perf_length", perfLength), zap.Bool("found", ok))
	return ok, nil
}
