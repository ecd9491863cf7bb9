package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/bitfantasy/linedash/internal/line/calc"
	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"github.com/bitfantasy/linedash/internal/line/sse"
	"go.uber.org/zap"
)

// Hour fields of a production table.
const (
	FieldLogs   = "logs"
	FieldTarget = "target"
)

// ProductionService tracks the per-hour production tables and the line
// settings they are planned against.
type ProductionService struct {
	mu       sync.Mutex
	repo     *repository.ProductionRepository
	factors  *FactorService
	products *ProductService
	hub      *sse.Hub
	logger   *zap.Logger
}

func NewProductionService(repo *repository.ProductionRepository, factors *FactorService, products *ProductService, hub *sse.Hub, logger *zap.Logger) *ProductionService {
	return &ProductionService{repo: repo, factors: factors, products: products, hub: hub, logger: logger}
}

// TableSummary is the running total of one production table.
type TableSummary struct {
	TableID           string   `json:"table_id"`
	TotalLogs         int      `json:"total_logs"`
	TotalTarget       int      `json:"total_target"`
	Remaining         int      `json:"remaining"`
	Progress          float64  `json:"progress"`
	Difference        int      `json:"difference"`
	CurrentHour       int      `json:"current_hour"`
	CurrentHourLabel  string   `json:"current_hour_label"`
	CurrentHourLogs   int      `json:"current_hour_logs"`
	CurrentHourTarget int      `json:"current_hour_target"`
	RequiredPerHour   int      `json:"required_per_hour"`
	RequiredSpeed     *float64 `json:"required_speed"`
}

// ========== Tables ==========

func (s *ProductionService) ListTables(ctx context.Context) ([]entity.ProductionTable, error) {
	return s.repo.LoadTables(ctx)
}

func (s *ProductionService) GetTable(ctx context.Context, tableID string) (*entity.ProductionTable, error) {
	tables, err := s.repo.LoadTables(ctx)
	if err != nil {
		return nil, err
	}
	i := findTable(tables, tableID)
	if i < 0 {
		return nil, fmt.Errorf("table %s: %w", tableID, ErrNotFound)
	}
	return &tables[i], nil
}

// UpdateHour sets one field of an hour. A nil value clears it.
func (s *ProductionService) UpdateHour(ctx context.Context, tableID string, hour int, field string, value *int) (*entity.ProductionTable, error) {
	if err := validHour(hour); err != nil {
		return nil, err
	}
	if field != FieldLogs && field != FieldTarget {
		return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidInput, field)
	}
	if value != nil && *value < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, field)
	}

	return s.mutate(ctx, tableID, func(t *entity.ProductionTable) error {
		if t.IsHourLocked(hour) {
			return fmt.Errorf("hour %d: %w", hour, ErrHourLocked)
		}
		setHourField(t, hour, field, value)
		return nil
	})
}

// SetActive marks exactly one table as active.
func (s *ProductionService) SetActive(ctx context.Context, tableID string) ([]entity.ProductionTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables, err := s.repo.LoadTables(ctx)
	if err != nil {
		return nil, err
	}
	if findTable(tables, tableID) < 0 {
		return nil, fmt.Errorf("table %s: %w", tableID, ErrNotFound)
	}
	for i := range tables {
		tables[i].IsActive = tables[i].ID == tableID
	}
	if err := s.save(ctx, tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *ProductionService) ToggleHourLock(ctx context.Context, tableID string, hour int) (*entity.ProductionTable, error) {
	if err := validHour(hour); err != nil {
		return nil, err
	}
	return s.mutate(ctx, tableID, func(t *entity.ProductionTable) error {
		if t.IsHourLocked(hour) {
			kept := t.LockedHours[:0]
			for _, h := range t.LockedHours {
				if h != hour {
					kept = append(kept, h)
				}
			}
			t.LockedHours = kept
			return nil
		}
		t.LockedHours = append(t.LockedHours, hour)
		sort.Ints(t.LockedHours)
		return nil
	})
}

// ApplyGlobalTarget sets the same target on every unlocked hour.
func (s *ProductionService) ApplyGlobalTarget(ctx context.Context, tableID string, target int) (*entity.ProductionTable, error) {
	if target < 0 {
		return nil, fmt.Errorf("%w: target must not be negative", ErrInvalidInput)
	}
	return s.mutate(ctx, tableID, func(t *entity.ProductionTable) error {
		for hour := 1; hour <= entity.ShiftHours; hour++ {
			if !t.IsHourLocked(hour) {
				v := target
				setHourField(t, hour, FieldTarget, &v)
			}
		}
		return nil
	})
}

// ApplyOperatorTarget splits a shift total across the hours. Hours 1 to
// total%12 take one extra log; locked hours keep their value.
func (s *ProductionService) ApplyOperatorTarget(ctx context.Context, tableID string, total int) (*entity.ProductionTable, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: total must not be negative", ErrInvalidInput)
	}
	perHour := total / entity.ShiftHours
	remainder := total % entity.ShiftHours
	return s.mutate(ctx, tableID, func(t *entity.ProductionTable) error {
		for hour := 1; hour <= entity.ShiftHours; hour++ {
			if t.IsHourLocked(hour) {
				continue
			}
			v := perHour
			if hour <= remainder {
				v++
			}
			setHourField(t, hour, FieldTarget, &v)
		}
		return nil
	})
}

// Reset clears every hour and lock of a table.
func (s *ProductionService) Reset(ctx context.Context, tableID string) (*entity.ProductionTable, error) {
	return s.mutate(ctx, tableID, func(t *entity.ProductionTable) error {
		t.HourData = map[int]*entity.HourData{}
		t.LockedHours = nil
		return nil
	})
}

// ========== Summary and planning ==========

func (s *ProductionService) Summary(ctx context.Context, tableID string, now time.Time) (*TableSummary, error) {
	table, err := s.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	current := calc.ShiftHour(now)
	sum := &TableSummary{
		TableID:          table.ID,
		CurrentHour:      current,
		CurrentHourLabel: calc.ShiftHourLabel(current, now),
	}
	for _, hd := range table.HourData {
		if hd == nil {
			continue
		}
		sum.TotalLogs += intValue(hd.Logs)
		sum.TotalTarget += intValue(hd.Target)
	}
	if hd := table.HourData[current]; hd != nil {
		sum.CurrentHourLogs = intValue(hd.Logs)
		sum.CurrentHourTarget = intValue(hd.Target)
	}
	sum.Difference = sum.TotalLogs - sum.TotalTarget
	if sum.Difference < 0 {
		sum.Remaining = -sum.Difference
	}
	if sum.TotalTarget > 0 {
		sum.Progress = math.Min(float64(sum.TotalLogs)/float64(sum.TotalTarget)*100, 100)
	}

	if sum.Remaining > 0 {
		open := 0
		for hour := current; hour <= entity.ShiftHours; hour++ {
			if !table.IsHourLocked(hour) {
				open++
			}
		}
		if open > 0 {
			sum.RequiredPerHour = int(math.Ceil(float64(sum.Remaining) / float64(open)))
		}
	}

	product, err := s.products.ActiveProduct(ctx)
	if err != nil {
		return nil, err
	}
	if product != nil {
		speed, ok, err := s.factors.RequiredSpeed(ctx, float64(sum.RequiredPerHour)/60,
			product.Settings.Diameter, product.Settings.PerfLength)
		if err != nil {
			return nil, err
		}
		if ok {
			sum.RequiredSpeed = &speed
		}
	}
	return sum, nil
}

// Plan works out the catch-up plan for the current hour of a table against
// the active product and the entered line speed.
func (s *ProductionService) Plan(ctx context.Context, tableID string, now time.Time) (*calc.HourPlan, error) {
	table, err := s.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	var target, logs int
	if hd := table.HourData[calc.ShiftHour(now)]; hd != nil {
		target, logs = intValue(hd.Target), intValue(hd.Logs)
	}
	return s.PlanHour(ctx, target, logs, now)
}

func (s *ProductionService) PlanHour(ctx context.Context, target, currentLogs int, now time.Time) (*calc.HourPlan, error) {
	table, err := s.factors.Table(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.repo.LoadLineSettings(ctx)
	if err != nil {
		return nil, err
	}
	var spec entity.ProductSpec
	product, err := s.products.ActiveProduct(ctx)
	if err != nil {
		return nil, err
	}
	if product != nil {
		spec = product.Settings
	}
	plan := calc.PlanHour(table, target, currentLogs, calc.RemainingMinutes(now),
		settings.LineSpeed, spec.Diameter, spec.PerfLength)
	return &plan, nil
}

// ========== Line settings ==========

type LineSettingsInput struct {
	CoreSize     *float64 `json:"core_size"`
	RollSize     *float64 `json:"roll_size"`
	PaperWeight  *float64 `json:"paper_weight"`
	ProductGrade *string  `json:"product_grade"`
	LineSpeed    *float64 `json:"line_speed"`
}

// LineStatus is the line settings with the section speeds derived from them.
type LineStatus struct {
	Settings calc.LineSettings      `json:"settings"`
	Speeds   calc.SpeedCalculations `json:"speeds"`
}

func (s *ProductionService) LineStatus(ctx context.Context) (*LineStatus, error) {
	settings, err := s.repo.LoadLineSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &LineStatus{Settings: settings, Speeds: calc.CalculateSpeeds(settings)}, nil
}

func (s *ProductionService) UpdateLineSettings(ctx context.Context, input *LineSettingsInput) (*LineStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.repo.LoadLineSettings(ctx)
	if err != nil {
		return nil, err
	}
	for name, v := range map[string]*float64{
		"core_size": input.CoreSize, "roll_size": input.RollSize,
		"paper_weight": input.PaperWeight, "line_speed": input.LineSpeed,
	} {
		if v != nil && *v < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, name)
		}
	}
	if input.CoreSize != nil {
		settings.CoreSize = *input.CoreSize
	}
	if input.RollSize != nil {
		settings.RollSize = *input.RollSize
	}
	if input.PaperWeight != nil {
		settings.PaperWeight = *input.PaperWeight
	}
	if input.ProductGrade != nil {
		settings.ProductGrade = *input.ProductGrade
	}
	if input.LineSpeed != nil {
		settings.LineSpeed = *input.LineSpeed
	}
	if err := s.repo.SaveLineSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("save line settings: %w", err)
	}
	return &LineStatus{Settings: settings, Speeds: calc.CalculateSpeeds(settings)}, nil
}

func (s *ProductionService) mutate(ctx context.Context, tableID string, apply func(*entity.ProductionTable) error) (*entity.ProductionTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables, err := s.repo.LoadTables(ctx)
	if err != nil {
		return nil, err
	}
	i := findTable(tables, tableID)
	if i < 0 {
		return nil, fmt.Errorf("table %s: %w", tableID, ErrNotFound)
	}
	if err := apply(&tables[i]); err != nil {
		return nil, err
	}
	if err := s.save(ctx, tables); err != nil {
		return nil, err
	}
	return &tables[i], nil
}

func (s *ProductionService) save(ctx context.Context, tables []entity.ProductionTable) error {
	if err := s.repo.SaveTables(ctx, tables); err != nil {
		return fmt.Errorf("save production tables: %w", err)
	}
	if s.hub != nil {
		s.hub.Publish(sse.EventProduction, tables)
	}
	return nil
}

func setHourField(t *entity.ProductionTable, hour int, field string, value *int) {
	hd := t.HourData[hour]
	if hd == nil {
		hd = &entity.HourData{}
		if t.HourData == nil {
			t.HourData = map[int]*entity.HourData{}
		}
		t.HourData[hour] = hd
	}
	switch field {
	case FieldLogs:
		hd.Logs = value
	case FieldTarget:
		hd.Target = value
	}
	if hd.Logs == nil && hd.Target == nil {
		delete(t.HourData, hour)
	}
}

func validHour(hour int) error {
	if hour < 1 || hour > entity.ShiftHours {
		return fmt.Errorf("%w: hour must be between 1 and %d", ErrInvalidInput, entity.ShiftHours)
	}
	return nil
}

func findTable(tables []entity.ProductionTable, id string) int {
	for i, t := range tables {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
