package service

import (
	"github.com/bitfantasy/linedash/internal/config"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"github.com/bitfantasy/linedash/internal/line/sse"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Services groups the line services.
type Services struct {
	Factor      *FactorService
	Product     *ProductService
	Production  *ProductionService
	Unwind      *UnwindService
	Rota        *RotaService
	Thread      *ThreadService
	Report      *ReportService
	Notes       *NotesService
	GradeChange *GradeChangeService
	Settings    *SettingsTemplateService
}

// NewServices wires every service over repos. The report archive is enabled
// when a MinIO endpoint is configured.
func NewServices(repos *repository.Repositories, hub *sse.Hub, cfg *config.Config, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}

	var uploader ObjectUploader
	if cfg != nil && cfg.MinIO.Endpoint != "" {
		minioClient, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("MinIO client init failed, report archive disabled", zap.Error(err))
		} else {
			uploader = minioClient
		}
	}
	bucket := ""
	if cfg != nil {
		bucket = cfg.MinIO.Bucket
	}

	factorSvc := NewFactorService(repos.Factor, hub, logger.Named("factors"))
	productSvc := NewProductService(repos.Product, hub, logger.Named("products"))
	productionSvc := NewProductionService(repos.Production, factorSvc, productSvc, hub, logger.Named("production"))

	return &Services{
		Factor:      factorSvc,
		Product:     productSvc,
		Production:  productionSvc,
		Unwind:      NewUnwindService(repos.Unwind, productSvc, hub, logger.Named("unwinds")),
		Rota:        NewRotaService(repos.Rota, logger.Named("rota")),
		Thread:      NewThreadService(),
		Report:      NewReportService(productionSvc, factorSvc, uploader, bucket, logger.Named("reports")),
		Notes:       NewNotesService(repos.Notes, logger.Named("notes")),
		GradeChange: NewGradeChangeService(repos.GradeChange, logger.Named("grade_change")),
		Settings:    NewSettingsTemplateService(repos.Settings, logger.Named("settings")),
	}
}
