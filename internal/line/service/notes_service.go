package service

import (
	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"go.uber.org/zap"
)

// NotesService keeps the troubleshooting notes: folders of notes and
// references to documents, spreadsheets and photos.
type NotesService struct {
	*DocumentLibrary
}

func NewNotesService(repo *repository.DocumentRepository, logger *zap.Logger) *NotesService {
	types := []entity.DocType{entity.DocNote, entity.DocDoc, entity.DocExcel, entity.DocImage}
	return &NotesService{DocumentLibrary: newDocumentLibrary(repo, "troubleshooting notes", types, logger)}
}
