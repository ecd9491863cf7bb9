package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bitfantasy/linedash/internal/line/calc"
	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// XLSXContentType is the MIME type of generated reports.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	tableExportHeaders  = []string{"Hour", "Time", "Logs", "Target", "Difference"}
	factorExportHeaders = []string{"Diameter (mm)", "Perf Length (mm)", "Factor", "Locked"}
)

// ObjectUploader is the part of *minio.Client the archive needs.
type ObjectUploader interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ReportService renders spreadsheets of the production tables and the
// factor table, and archives shift reports to object storage.
type ReportService struct {
	production *ProductionService
	factors    *FactorService
	uploader   ObjectUploader
	bucket     string
	logger     *zap.Logger
}

// NewReportService builds the service. uploader may be nil, which disables Archive.
func NewReportService(production *ProductionService, factors *FactorService, uploader ObjectUploader, bucket string, logger *zap.Logger) *ReportService {
	return &ReportService{production: production, factors: factors, uploader: uploader, bucket: bucket, logger: logger}
}

// RowError is one spreadsheet row that was skipped on import.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int        `json:"imported"`
	Kept     int        `json:"kept_locked"`
	Skipped  []RowError `json:"skipped"`
}

// ArchiveResult locates an uploaded report.
type ArchiveResult struct {
	Bucket string `json:"bucket"`
	Object string `json:"object"`
	Size   int64  `json:"size"`
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	return style
}

func writeHeaders(f *excelize.File, sheet string, headers []string, widths []float64) {
	style := headerStyle(f)
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
		if i < len(widths) {
			f.SetColWidth(sheet, col, col, widths[i])
		}
	}
}

// ExportTable renders one production table with a totals row. Hour labels
// follow the shift running at now.
func (s *ReportService) ExportTable(ctx context.Context, tableID string, now time.Time) (*excelize.File, string, error) {
	table, err := s.production.GetTable(ctx, tableID)
	if err != nil {
		return nil, "", err
	}
	summary, err := s.production.Summary(ctx, tableID, now)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Production"
	f.SetSheetName("Sheet1", sheet)
	writeHeaders(f, sheet, tableExportHeaders, []float64{8, 14, 10, 10, 12})

	for hour := 1; hour <= entity.ShiftHours; hour++ {
		row := hour + 1
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), hour)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), calc.ShiftHourLabel(hour, now))
		hd := table.HourData[hour]
		if hd == nil {
			continue
		}
		if hd.Logs != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), *hd.Logs)
		}
		if hd.Target != nil {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), *hd.Target)
		}
		if hd.Logs != nil && hd.Target != nil {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), *hd.Logs-*hd.Target)
		}
	}

	summaryRow := entity.ShiftHours + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("%.1f%%", summary.Progress))
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow), summary.TotalLogs)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", summaryRow), summary.TotalTarget)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", summaryRow), summary.Difference)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("E%d", summaryRow), summaryStyle)

	filename := fmt.Sprintf("%s_%s.xlsx", strings.ReplaceAll(table.Name, " ", "_"), now.Format("2006-01-02_1504"))
	return f, filename, nil
}

func (s *ReportService) ExportFactors(ctx context.Context) (*excelize.File, string, error) {
	factors, err := s.factors.List(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Factors"
	f.SetSheetName("Sheet1", sheet)
	writeHeaders(f, sheet, factorExportHeaders, []float64{14, 16, 10, 8})

	for i, cf := range factors {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), cf.Diameter)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), cf.PerfLength)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), cf.Factor)
		locked := "No"
		if cf.IsLocked {
			locked = "Yes"
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), locked)
	}
	return f, "Conversion_Factors.xlsx", nil
}

// ImportFactors replaces the factor table with the rows of the first sheet.
// Locked entries already in the table are kept and win over imported rows
// with the same key. Rows that do not parse or validate are skipped.
func (s *ReportService) ImportFactors(ctx context.Context, f *excelize.File) (*ImportResult, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read excel: %w", err)
	}

	type parsedRow struct {
		num int
		cf  entity.ConversionFactor
		err error
	}
	var parsed []parsedRow
	if len(rows) > 1 {
		for i, row := range rows[1:] {
			cf, err := parseFactorRow(row)
			parsed = append(parsed, parsedRow{num: i + 2, cf: cf, err: err})
		}
	}

	var result *ImportResult
	err = s.factors.Rewrite(ctx, func(current []entity.ConversionFactor) ([]entity.ConversionFactor, error) {
		result = &ImportResult{Skipped: []RowError{}}
		var table []entity.ConversionFactor
		for _, cf := range current {
			if cf.IsLocked {
				table = append(table, cf)
				result.Kept++
			}
		}
		for _, p := range parsed {
			if p.err != nil {
				result.Skipped = append(result.Skipped, RowError{Row: p.num, Message: p.err.Error()})
				continue
			}
			if j := findFactor(table, p.cf.Diameter, p.cf.PerfLength); j >= 0 {
				msg := "duplicate product spec"
				if j < result.Kept {
					msg = "locked entry kept"
				}
				result.Skipped = append(result.Skipped, RowError{Row: p.num, Message: msg})
				continue
			}
			table = append(table, p.cf)
			result.Imported++
		}
		if result.Imported == 0 {
			return nil, fmt.Errorf("%w: no valid rows to import", ErrInvalidInput)
		}
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Conversion factors imported",
		zap.Int("imported", result.Imported), zap.Int("kept_locked", result.Kept), zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

func parseFactorRow(row []string) (entity.ConversionFactor, error) {
	var cf entity.ConversionFactor
	if len(row) < 3 {
		return cf, fmt.Errorf("expected diameter, perf length and factor")
	}
	values := make([]float64, 3)
	for i, name := range []string{"diameter", "perf length", "factor"} {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return cf, fmt.Errorf("%s %q is not a number", name, row[i])
		}
		if !(v > 0) {
			return cf, fmt.Errorf("%s must be positive", name)
		}
		values[i] = v
	}
	cf.Diameter, cf.PerfLength, cf.Factor = values[0], values[1], values[2]
	if len(row) > 3 {
		switch strings.ToLower(strings.TrimSpace(row[3])) {
		case "yes", "y", "true", "1", "locked":
			cf.IsLocked = true
		}
	}
	return cf, nil
}

// Archive uploads the production table report to the configured bucket.
func (s *ReportService) Archive(ctx context.Context, tableID string, now time.Time) (*ArchiveResult, error) {
	if s.uploader == nil {
		return nil, ErrArchiveDisabled
	}
	f, filename, err := s.ExportTable(ctx, tableID, now)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	size := int64(buf.Len())
	objectName := fmt.Sprintf("reports/%s/%s-%s", now.Format("2006/01/02"), uuid.New().String()[:8], filename)
	if _, err := s.uploader.PutObject(ctx, s.bucket, objectName, buf, size, minio.PutObjectOptions{
		ContentType: XLSXContentType,
	}); err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}
	s.logger.Info("Shift report archived", zap.String("bucket", s.bucket), zap.String("object", objectName))
	return &ArchiveResult{Bucket: s.bucket, Object: objectName, Size: size}, nil
}
