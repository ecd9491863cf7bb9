package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"go.uber.org/zap"
)

// SettingsRepository keeps the best settings folders, templates and saved
// sheets under their own keys.
type SettingsRepository struct {
	store  KVStore
	logger *zap.Logger
}

func NewSettingsRepository(store KVStore, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{store: store, logger: logger}
}

// Load reads all three keys. An unreadable key starts empty.
func (r *SettingsRepository) Load(ctx context.Context) (*entity.SettingsLibrary, error) {
	lib := &entity.SettingsLibrary{
		Folders:   []entity.SettingsFolder{},
		Templates: []entity.SettingsTemplate{},
		Saved:     []entity.SavedSettings{},
	}
	var (
		folders   []entity.SettingsFolder
		templates []entity.SettingsTemplate
		saved     []entity.SavedSettings
	)
	ok, err := r.load(ctx, KeySettingsFolders, &folders)
	if err != nil {
		return nil, err
	}
	if ok && folders != nil {
		lib.Folders = folders
	}
	if ok, err = r.load(ctx, KeySettingsTemplates, &templates); err != nil {
		return nil, err
	}
	if ok && templates != nil {
		lib.Templates = templates
	}
	if ok, err = r.load(ctx, KeySavedSettings, &saved); err != nil {
		return nil, err
	}
	if ok && saved != nil {
		lib.Saved = saved
	}
	return lib, nil
}

// load reports whether key held a readable value.
func (r *SettingsRepository) load(ctx context.Context, key string, v interface{}) (bool, error) {
	found, err := loadJSON(ctx, r.store, key, v)
	if err != nil {
		var malformed *MalformedError
		if !errors.As(err, &malformed) {
			return false, err
		}
		r.logger.Warn("Stored settings unreadable, starting empty", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return found, nil
}

// Save writes saved sheets first and folders last, so an interrupted save
// leaves no sheet pointing at a template that was never written.
func (r *SettingsRepository) Save(ctx context.Context, lib *entity.SettingsLibrary) error {
	if err := saveJSON(ctx, r.store, KeySavedSettings, lib.Saved); err != nil {
		return err
	}
	if err := saveJSON(ctx, r.store, KeySettingsTemplates, lib.Templates); err != nil {
		return err
	}
	return saveJSON(ctx, r.store, KeySettingsFolders, lib.Folders)
}
