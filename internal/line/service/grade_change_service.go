package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"go.uber.org/zap"
)

// GradeChangeService keeps the grade change procedures. Besides notes and
// file references it holds checklists that operators tick off during a
// grade change and reset for the next one.
type GradeChangeService struct {
	*DocumentLibrary
}

func NewGradeChangeService(repo *repository.DocumentRepository, logger *zap.Logger) *GradeChangeService {
	types := []entity.DocType{entity.DocNote, entity.DocDoc, entity.DocExcel, entity.DocImage, entity.DocChecklist}
	return &GradeChangeService{DocumentLibrary: newDocumentLibrary(repo, "grade change library", types, logger)}
}

// ToggleStep flips the done flag of one checklist step.
func (s *GradeChangeService) ToggleStep(ctx context.Context, itemID string, index int) (*entity.DocItem, error) {
	return s.mutateItem(ctx, itemID, func(item *entity.DocItem) error {
		if item.Type != entity.DocChecklist {
			return fmt.Errorf("%w: not a checklist", ErrInvalidInput)
		}
		if index < 0 || index >= len(item.Checklist) {
			return fmt.Errorf("%w: step %d out of range", ErrInvalidInput, index)
		}
		item.Checklist[index].Done = !item.Checklist[index].Done
		return nil
	})
}

// ResetChecklist clears every done flag and keeps the steps and values.
func (s *GradeChangeService) ResetChecklist(ctx context.Context, itemID string) (*entity.DocItem, error) {
	item, err := s.mutateItem(ctx, itemID, func(item *entity.DocItem) error {
		if item.Type != entity.DocChecklist {
			return fmt.Errorf("%w: not a checklist", ErrInvalidInput)
		}
		for i := range item.Checklist {
			item.Checklist[i].Done = false
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Grade change checklist reset", zap.String("item_id", itemID), zap.String("name", item.Name))
	return item, nil
}

// ChecklistProgress counts the done steps of a checklist item.
func ChecklistProgress(item entity.DocItem) (done, total int) {
	for _, c := range item.Checklist {
		if c.Done {
			done++
		}
	}
	return done, len(item.Checklist)
}
