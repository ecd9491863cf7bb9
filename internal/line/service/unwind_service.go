package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/bitfantasy/linedash/internal/line/calc"
	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"github.com/bitfantasy/linedash/internal/line/sse"
	"go.uber.org/zap"
)

// UnwindService keeps the parent reel state of both unwind stands and
// derives their runtimes.
type UnwindService struct {
	mu       sync.Mutex
	repo     *repository.UnwindRepository
	products *ProductService
	hub      *sse.Hub
	logger   *zap.Logger
}

func NewUnwindService(repo *repository.UnwindRepository, products *ProductService, hub *sse.Hub, logger *zap.Logger) *UnwindService {
	return &UnwindService{repo: repo, products: products, hub: hub, logger: logger}
}

// UnwindInput partial stand update; nil fields are left unchanged.
type UnwindInput struct {
	Diameter      *float64 `json:"diameter"`
	EndDiameter   *float64 `json:"end_diameter"`
	BreakDiameter *float64 `json:"break_diameter"`
	Speed         *float64 `json:"speed"`
	Bulk          *float64 `json:"bulk"`
	IsTwoPly      *bool    `json:"is_two_ply"`
	PaperMachine  *string  `json:"paper_machine"`
}

// UnwindSnapshot is a stand's state with everything derived from it at one
// instant.
type UnwindSnapshot struct {
	State                entity.UnwindState `json:"state"`
	Length               float64            `json:"length"`
	Runtime              float64            `json:"runtime"`
	RuntimeToBreak       float64            `json:"runtime_to_break"`
	RuntimeText          string             `json:"runtime_text"`
	RuntimeToBreakText   string             `json:"runtime_to_break_text"`
	ExpiryTime           *time.Time         `json:"expiry_time,omitempty"`
	BreakTime            *time.Time         `json:"break_time,omitempty"`
	ExpectedPaperMachine string             `json:"expected_paper_machine,omitempty"`
	PaperMachineMismatch bool               `json:"paper_machine_mismatch"`
}

func (s *UnwindService) List(ctx context.Context) ([]entity.UnwindState, error) {
	return s.repo.Load(ctx)
}

func (s *UnwindService) Update(ctx context.Context, id int, input *UnwindInput) (*entity.UnwindState, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: empty update", ErrInvalidInput)
	}
	for name, v := range map[string]*float64{
		"diameter": input.Diameter, "end_diameter": input.EndDiameter,
		"break_diameter": input.BreakDiameter, "speed": input.Speed, "bulk": input.Bulk,
	} {
		if v != nil && *v < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, name)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unwinds, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := findUnwind(unwinds, id)
	if i < 0 {
		return nil, fmt.Errorf("unwind %d: %w", id, ErrNotFound)
	}
	u := &unwinds[i]
	if input.Diameter != nil {
		u.Diameter = *input.Diameter
	}
	if input.EndDiameter != nil {
		u.EndDiameter = *input.EndDiameter
	}
	if input.BreakDiameter != nil {
		u.BreakDiameter = *input.BreakDiameter
	}
	if input.Speed != nil {
		u.Speed = *input.Speed
	}
	if input.Bulk != nil {
		u.Bulk = *input.Bulk
	}
	if input.IsTwoPly != nil {
		u.IsTwoPly = *input.IsTwoPly
	}
	if input.PaperMachine != nil {
		u.PaperMachine = *input.PaperMachine
	}
	if err := s.repo.Save(ctx, unwinds); err != nil {
		return nil, fmt.Errorf("save unwinds: %w", err)
	}
	updated := *u
	return &updated, nil
}

// SyncPaperMachines copies the active product's tissue machine assignment
// onto the stands. It is a no-op without an active product.
func (s *UnwindService) SyncPaperMachines(ctx context.Context) error {
	product, err := s.products.ActiveProduct(ctx)
	if err != nil || product == nil {
		return err
	}
	tm := product.Settings.TissueMachine

	s.mu.Lock()
	defer s.mu.Unlock()

	unwinds, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range unwinds {
		want := expectedMachine(tm, unwinds[i].ID)
		if want != "" && unwinds[i].PaperMachine != want {
			unwinds[i].PaperMachine = want
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := s.repo.Save(ctx, unwinds); err != nil {
		return fmt.Errorf("save unwinds: %w", err)
	}
	s.logger.Info("Unwind paper machines synced", zap.String("unwind1", tm.Unwind1), zap.String("unwind2", tm.Unwind2))
	return nil
}

// Snapshot derives runtimes and clock times for both stands as of now.
func (s *UnwindService) Snapshot(ctx context.Context, now time.Time) ([]UnwindSnapshot, error) {
	unwinds, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	product, err := s.products.ActiveProduct(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UnwindSnapshot, 0, len(unwinds))
	for _, u := range unwinds {
		snap := snapshotOf(u, now)
		if product != nil {
			snap.ExpectedPaperMachine = expectedMachine(product.Settings.TissueMachine, u.ID)
			snap.PaperMachineMismatch = snap.ExpectedPaperMachine != "" && u.PaperMachine != "" &&
				snap.ExpectedPaperMachine != u.PaperMachine
		}
		out = append(out, snap)
	}
	return out, nil
}

// Run broadcasts a fresh snapshot every interval until ctx is done.
func (s *UnwindService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.hub == nil || s.hub.Count() == 0 {
				continue
			}
			snaps, err := s.Snapshot(ctx, now)
			if err != nil {
				s.logger.Warn("Unwind snapshot failed", zap.Error(err))
				continue
			}
			s.hub.Publish(sse.EventUnwinds, snaps)
		}
	}
}

func snapshotOf(u entity.UnwindState, now time.Time) UnwindSnapshot {
	runtime := calc.CalculateRuntime(u.Diameter, u.EndDiameter, u.Speed, u.Bulk, u.IsTwoPly)
	toBreak := calc.CalculateRuntimeToBreak(u.Diameter, u.BreakDiameter, u.Speed, u.Bulk, u.IsTwoPly)
	return UnwindSnapshot{
		State:              u,
		Length:             calc.CalculateLength(u.Diameter, u.EndDiameter, u.Bulk),
		Runtime:            runtime,
		RuntimeToBreak:     toBreak,
		RuntimeText:        calc.FormatMinutes(runtime),
		RuntimeToBreakText: calc.FormatMinutes(toBreak),
		ExpiryTime:         offsetTime(now, runtime),
		BreakTime:          offsetTime(now, toBreak),
	}
}

// maxOffsetMinutes is the largest whole-minute offset a time.Duration holds.
const maxOffsetMinutes = float64(math.MaxInt64 / int64(time.Minute))

// offsetTime returns now plus minutes, or nil when the offset does not fit a
// time.Duration.
func offsetTime(now time.Time, minutes float64) *time.Time {
	if math.IsNaN(minutes) || math.Abs(minutes) > maxOffsetMinutes {
		return nil
	}
	t := now.Add(time.Duration(minutes) * time.Minute)
	return &t
}

func expectedMachine(tm entity.TissueMachine, id int) string {
	switch id {
	case entity.Unwind1:
		return tm.Unwind1
	case entity.Unwind2:
		return tm.Unwind2
	}
	return ""
}

func findUnwind(unwinds []entity.UnwindState, id int) int {
	for i, u := range unwinds {
		if u.ID == id {
			return i
		}
	}
	return -1
}
