package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"go.uber.org/zap"
)

// Errors
var (
	ErrNotFound = errors.New("record not found")
)

// Storage keys. They keep the names the browser dashboard used so an
// exported local storage dump can be loaded as-is.
const (
	KeyConversionFactors = "conversionFactors"
	KeyProductSettings   = "productSettings"
	KeyProductLocked     = "productLocked"
	KeyProductionTables  = "productionTables"
	KeyLineSettings      = "lineSettings"
	KeyUnwinds           = "unwinds"
	KeyShiftRota         = "shiftRota"
	KeyTroubleshooting   = "infoTroubleshootingData"
	KeyGradeChange       = "productGradeChange"
	KeySettingsFolders   = "settingsFolders"
	KeySettingsTemplates = "settingsTemplates"
	KeySavedSettings     = "savedSettings"
)

// KVStore is the persisted key-value boundary. Get returns ErrNotFound for
// an absent key. Set overwrites; there is no transaction across keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Repositories groups the typed repositories.
type Repositories struct {
	Store       KVStore
	Factor      ConversionFactorRepository
	Product     *ProductRepository
	Production  *ProductionRepository
	Unwind      *UnwindRepository
	Rota        *RotaRepository
	Notes       *DocumentRepository
	GradeChange *DocumentRepository
	Settings    *SettingsRepository
}

// NewRepositories builds every typed repository over one store.
func NewRepositories(store KVStore, logger *zap.Logger) *Repositories {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repositories{
		Store:       store,
		Factor:      NewConversionFactorRepository(store, logger),
		Product:     NewProductRepository(store, logger),
		Production:  NewProductionRepository(store, logger),
		Unwind:      NewUnwindRepository(store, logger),
		Rota:        NewRotaRepository(store, logger),
		Notes:       NewDocumentRepository(store, KeyTroubleshooting, nil, logger),
		GradeChange: NewDocumentRepository(store, KeyGradeChange, entity.DefaultGradeChangeFolders, logger),
		Settings:    NewSettingsRepository(store, logger),
	}
}
