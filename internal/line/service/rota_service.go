package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"go.uber.org/zap"
)

type RotaService struct {
	mu     sync.Mutex
	repo   *repository.RotaRepository
	logger *zap.Logger
}

func NewRotaService(repo *repository.RotaRepository, logger *zap.Logger) *RotaService {
	return &RotaService{repo: repo, logger: logger}
}

// RotaDay is one dated rota entry.
type RotaDay struct {
	Date string `json:"date"`
	entity.RotaEntry
}

// RotaMonth is the rota of one calendar month.
type RotaMonth struct {
	Year    int       `json:"year"`
	Month   int       `json:"month"`
	Days    []RotaDay `json:"days"`
	OTHours float64   `json:"ot_hours"`
}

// ParseRotaDate validates a YYYY-MM-DD key.
func ParseRotaDate(date string) (time.Time, error) {
	t, err := time.Parse(entity.RotaDateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, date)
	}
	return t, nil
}

// SetShift sets the shift type of a day. The note is kept; hours are kept
// only when the new type is overtime.
func (s *RotaService) SetShift(ctx context.Context, date string, shift entity.ShiftType) (*RotaDay, error) {
	if !shift.Valid() {
		return nil, fmt.Errorf("%w: unknown shift type %q", ErrInvalidInput, shift)
	}
	return s.mutate(ctx, date, func(e *entity.RotaEntry) {
		e.Type = shift
		if !shift.IsOvertime() {
			e.Hours = 0
		}
	})
}

func (s *RotaService) SetNote(ctx context.Context, date, note string) (*RotaDay, error) {
	return s.mutate(ctx, date, func(e *entity.RotaEntry) {
		e.Note = strings.TrimSpace(note)
	})
}

// SetHours records overtime hours; negative values clamp to 0.
func (s *RotaService) SetHours(ctx context.Context, date string, hours float64) (*RotaDay, error) {
	if hours < 0 {
		hours = 0
	}
	return s.mutate(ctx, date, func(e *entity.RotaEntry) {
		e.Hours = hours
	})
}

func (s *RotaService) Delete(ctx context.Context, date string) error {
	if _, err := ParseRotaDate(date); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := entries[date]; !ok {
		return fmt.Errorf("rota %s: %w", date, ErrNotFound)
	}
	delete(entries, date)
	if err := s.repo.Save(ctx, entries); err != nil {
		return fmt.Errorf("save shift rota: %w", err)
	}
	return nil
}

// Month lists the entries of one month in date order.
func (s *RotaService) Month(ctx context.Context, year, month int) (*RotaMonth, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := &RotaMonth{Year: year, Month: month, Days: []RotaDay{}}
	for date, e := range entries {
		t, err := time.Parse(entity.RotaDateLayout, date)
		if err != nil {
			s.logger.Warn("Skipping rota entry with bad date", zap.String("date", date))
			continue
		}
		if t.Year() != year || int(t.Month()) != month {
			continue
		}
		out.Days = append(out.Days, RotaDay{Date: date, RotaEntry: e})
		if e.Type.IsOvertime() {
			out.OTHours += e.Hours
		}
	}
	sort.Slice(out.Days, func(i, j int) bool { return out.Days[i].Date < out.Days[j].Date })
	return out, nil
}

// MonthlyOTHours sums the hours of OT Day and OT Night entries in a month.
func (s *RotaService) MonthlyOTHours(ctx context.Context, year, month int) (float64, error) {
	m, err := s.Month(ctx, year, month)
	if err != nil {
		return 0, err
	}
	return m.OTHours, nil
}

func (s *RotaService) mutate(ctx context.Context, date string, apply func(*entity.RotaEntry)) (*RotaDay, error) {
	if _, err := ParseRotaDate(date); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	e := entries[date]
	apply(&e)
	entries[date] = e
	if err := s.repo.Save(ctx, entries); err != nil {
		return nil, fmt.Errorf("save shift rota: %w", err)
	}
	return &RotaDay{Date: date, RotaEntry: e}, nil
}
