package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"go.uber.org/zap"
)

// SettingsTemplateService keeps the best settings library: templates of
// machine setting fields and the filled-in sheets recorded against them.
type SettingsTemplateService struct {
	mu     sync.Mutex
	repo   *repository.SettingsRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewSettingsTemplateService(repo *repository.SettingsRepository, logger *zap.Logger) *SettingsTemplateService {
	return &SettingsTemplateService{repo: repo, now: time.Now, logger: logger}
}

type FieldInput struct {
	Name    string           `json:"name"`
	Type    entity.FieldType `json:"type"`
	Unit    string           `json:"unit"`
	Options []string         `json:"options"`
}

type TemplateInput struct {
	Name     string       `json:"name"`
	FolderID string       `json:"folder_id"`
	Fields   []FieldInput `json:"fields"`
}

type ValueInput struct {
	FieldID string `json:"field_id"`
	Value   string `json:"value"`
}

type SettingsInput struct {
	TemplateID string       `json:"template_id"`
	FolderID   string       `json:"folder_id"`
	Title      string       `json:"title"`
	Values     []ValueInput `json:"values"`
}

// SettingsFilter selects saved sheets. Empty fields match everything.
type SettingsFilter struct {
	TemplateID string
	FolderID   string
	Query      string
}

func (s *SettingsTemplateService) Library(ctx context.Context) (*entity.SettingsLibrary, error) {
	return s.repo.Load(ctx)
}

// ========== Folders ==========

func (s *SettingsTemplateService) CreateFolder(ctx context.Context, name string) (*entity.SettingsFolder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is required", ErrInvalidInput)
	}
	var folder entity.SettingsFolder
	err := s.mutate(ctx, func(lib *entity.SettingsLibrary) error {
		folder = entity.SettingsFolder{ID: "folder-" + shortID(), Name: name, CreatedAt: s.now().UTC()}
		lib.Folders = append(lib.Folders, folder)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder removes a folder, the templates filed in it and every sheet
// filed in it or recorded against one of those templates.
func (s *SettingsTemplateService) DeleteFolder(ctx context.Context, folderID string) error {
	return s.mutate(ctx, func(lib *entity.SettingsLibrary) error {
		i := findSettingsFolder(lib.Folders, folderID)
		if i < 0 {
			return fmt.Errorf("folder %s: %w", folderID, ErrNotFound)
		}
		lib.Folders = append(lib.Folders[:i], lib.Folders[i+1:]...)

		dropped := map[string]bool{}
		templates := lib.Templates[:0]
		for _, t := range lib.Templates {
			if t.FolderID == folderID {
				dropped[t.ID] = true
				continue
			}
			templates = append(templates, t)
		}
		lib.Templates = templates

		saved := lib.Saved[:0]
		for _, ss := range lib.Saved {
			if ss.FolderID == folderID || dropped[ss.TemplateID] {
				continue
			}
			saved = append(saved, ss)
		}
		lib.Saved = saved
		return nil
	})
}

// ========== Templates ==========

func (s *SettingsTemplateService) CreateTemplate(ctx context.Context, input TemplateInput) (*entity.SettingsTemplate, error) {
	tmpl := entity.SettingsTemplate{
		ID:       "template-" + shortID(),
		Name:     strings.TrimSpace(input.Name),
		FolderID: input.FolderID,
	}
	if tmpl.Name == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrInvalidInput)
	}
	if len(input.Fields) == 0 {
		return nil, fmt.Errorf("%w: a template needs at least one field", ErrInvalidInput)
	}
	for i, f := range input.Fields {
		field, err := newSettingField(f)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i+1, err)
		}
		tmpl.Fields = append(tmpl.Fields, field)
	}

	err := s.mutate(ctx, func(lib *entity.SettingsLibrary) error {
		if tmpl.FolderID != "" && findSettingsFolder(lib.Folders, tmpl.FolderID) < 0 {
			return fmt.Errorf("folder %s: %w", tmpl.FolderID, ErrNotFound)
		}
		lib.Templates = append(lib.Templates, tmpl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// DeleteTemplate removes a template and the sheets recorded against it.
func (s *SettingsTemplateService) DeleteTemplate(ctx context.Context, templateID string) error {
	return s.mutate(ctx, func(lib *entity.SettingsLibrary) error {
		i := findTemplate(lib.Templates, templateID)
		if i < 0 {
			return fmt.Errorf("template %s: %w", templateID, ErrNotFound)
		}
		lib.Templates = append(lib.Templates[:i], lib.Templates[i+1:]...)
		saved := lib.Saved[:0]
		for _, ss := range lib.Saved {
			if ss.TemplateID != templateID {
				saved = append(saved, ss)
			}
		}
		lib.Saved = saved
		return nil
	})
}

func newSettingField(f FieldInput) (entity.SettingField, error) {
	field := entity.SettingField{
		ID:   "field-" + shortID(),
		Name: strings.TrimSpace(f.Name),
		Type: f.Type,
		Unit: strings.TrimSpace(f.Unit),
	}
	if field.Name == "" {
		return field, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !field.Type.Valid() {
		return field, fmt.Errorf("%w: unknown field type %q", ErrInvalidInput, f.Type)
	}
	if field.Type == entity.FieldSelect {
		for _, o := range f.Options {
			if o = strings.TrimSpace(o); o != "" {
				field.Options = append(field.Options, o)
			}
		}
		if len(field.Options) == 0 {
			return field, fmt.Errorf("%w: select fields need options", ErrInvalidInput)
		}
	}
	return field, nil
}

// ========== Saved settings ==========

// Save records a filled-in template. Number values must parse and select
// values must be one of the field's options.
func (s *SettingsTemplateService) Save(ctx context.Context, input SettingsInput) (*entity.SavedSettings, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(input.Values) == 0 {
		return nil, fmt.Errorf("%w: no values to save", ErrInvalidInput)
	}

	var saved entity.SavedSettings
	err := s.mutate(ctx, func(lib *entity.SettingsLibrary) error {
		ti := findTemplate(lib.Templates, input.TemplateID)
		if ti < 0 {
			return fmt.Errorf("template %s: %w", input.TemplateID, ErrNotFound)
		}
		if input.FolderID != "" && findSettingsFolder(lib.Folders, input.FolderID) < 0 {
			return fmt.Errorf("folder %s: %w", input.FolderID, ErrNotFound)
		}
		values, err := templateValues(lib.Templates[ti], input.Values)
		if err != nil {
			return err
		}
		saved = entity.SavedSettings{
			ID:         "settings-" + shortID(),
			TemplateID: input.TemplateID,
			FolderID:   input.FolderID,
			Title:      title,
			Date:       s.now().UTC(),
			Values:     values,
		}
		lib.Saved = append(lib.Saved, saved)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Duplicate copies a sheet under a new id, dated now, with " (Copy)" added
// to the title.
func (s *SettingsTemplateService) Duplicate(ctx context.Context, id string) (*entity.SavedSettings, error) {
	var dup entity.SavedSettings
	err := s.mutate(ctx, func(lib *entity.SettingsLibrary) error {
		i := findSaved(lib.Saved, id)
		if i < 0 {
			return fmt.Errorf("settings %s: %w", id, ErrNotFound)
		}
		dup = lib.Saved[i]
		dup.ID = "settings-" + shortID()
		dup.Date = s.now().UTC()
		dup.Title += " (Copy)"
		dup.Values = append([]entity.SettingValue(nil), dup.Values...)
		lib.Saved = append(lib.Saved, dup)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dup, nil
}

func (s *SettingsTemplateService) DeleteSaved(ctx context.Context, id string) error {
	return s.mutate(ctx, func(lib *entity.SettingsLibrary) error {
		i := findSaved(lib.Saved, id)
		if i < 0 {
			return fmt.Errorf("settings %s: %w", id, ErrNotFound)
		}
		lib.Saved = append(lib.Saved[:i], lib.Saved[i+1:]...)
		return nil
	})
}

// Find lists saved sheets in save order. Every whitespace separated term of
// the query must appear in the title, the template name, a field name or a
// value.
func (s *SettingsTemplateService) Find(ctx context.Context, filter SettingsFilter) ([]entity.SavedSettings, error) {
	lib, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	terms := strings.Fields(strings.ToLower(filter.Query))
	out := []entity.SavedSettings{}
	for _, ss := range lib.Saved {
		if filter.TemplateID != "" && ss.TemplateID != filter.TemplateID {
			continue
		}
		if filter.FolderID != "" && ss.FolderID != filter.FolderID {
			continue
		}
		ti := findTemplate(lib.Templates, ss.TemplateID)
		if ti < 0 {
			s.logger.Warn("Skipping settings with unknown template",
				zap.String("id", ss.ID), zap.String("template_id", ss.TemplateID))
			continue
		}
		if matchesAllTerms(terms, ss, lib.Templates[ti]) {
			out = append(out, ss)
		}
	}
	return out, nil
}

func matchesAllTerms(terms []string, ss entity.SavedSettings, tmpl entity.SettingsTemplate) bool {
	for _, term := range terms {
		if !settingsContain(term, ss, tmpl) {
			return false
		}
	}
	return true
}

func settingsContain(term string, ss entity.SavedSettings, tmpl entity.SettingsTemplate) bool {
	if strings.Contains(strings.ToLower(ss.Title), term) || strings.Contains(strings.ToLower(tmpl.Name), term) {
		return true
	}
	for _, v := range ss.Values {
		if strings.Contains(strings.ToLower(string(v.Value)), term) {
			return true
		}
		for _, f := range tmpl.Fields {
			if f.ID == v.FieldID && strings.Contains(strings.ToLower(f.Name), term) {
				return true
			}
		}
	}
	return false
}

func templateValues(tmpl entity.SettingsTemplate, inputs []ValueInput) ([]entity.SettingValue, error) {
	values := make([]entity.SettingValue, 0, len(inputs))
	seen := map[string]bool{}
	for _, in := range inputs {
		var field *entity.SettingField
		for i := range tmpl.Fields {
			if tmpl.Fields[i].ID == in.FieldID {
				field = &tmpl.Fields[i]
			}
		}
		if field == nil {
			return nil, fmt.Errorf("%w: field %s is not part of template %s", ErrInvalidInput, in.FieldID, tmpl.Name)
		}
		if seen[in.FieldID] {
			return nil, fmt.Errorf("%w: field %s given twice", ErrInvalidInput, field.Name)
		}
		seen[in.FieldID] = true

		value := strings.TrimSpace(in.Value)
		switch field.Type {
		case entity.FieldNumber:
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidInput, field.Name)
			}
		case entity.FieldSelect:
			if !containsString(field.Options, value) {
				return nil, fmt.Errorf("%w: %q is not an option of %s", ErrInvalidInput, value, field.Name)
			}
		}
		values = append(values, entity.SettingValue{FieldID: in.FieldID, Value: entity.FieldValue(value)})
	}
	return values, nil
}

func (s *SettingsTemplateService) mutate(ctx context.Context, apply func(*entity.SettingsLibrary) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if err := apply(lib); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, lib); err != nil {
		return fmt.Errorf("save best settings: %w", err)
	}
	return nil
}

func findSettingsFolder(folders []entity.SettingsFolder, id string) int {
	for i, f := range folders {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func findTemplate(templates []entity.SettingsTemplate, id string) int {
	for i, t := range templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func findSaved(saved []entity.SavedSettings, id string) int {
	for i, s := range saved {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
