package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/repo"
)

// sheetName is the single worksheet every export workbook contains.
const sheetName = "Basvurular"

// exportHeaders are the fixed column headers, in the language the school's
// staff reads. Order matches exportRecord below.
var exportHeaders = []string{
	"Başvuru ID",
	"Öğrenci Adı",
	"Öğrenci Sınıfı",
	"Veli Adı",
	"Veli Telefon",
	"Öğrenci Telefonu",
	"Durum",
	"Başvuru Tarihi",
}

// ExportService builds the xlsx download of a trip's applications.
type ExportService struct {
	trips repo.TripRepo
	apps  repo.ApplicationRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, apps repo.ApplicationRepo) *ExportService {
	return &ExportService{trips: trips, apps: apps}
}

// TripApplications builds a single-sheet workbook with one row per
// application in submission order.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *ExportService) TripApplications(ctx context.Context, tripID uuid.UUID) (domain.ExportFile, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.ExportFile{}, fmt.Errorf("service.ExportService.TripApplications: %w", err)
	}

	apps, err := s.apps.ListAllByTrip(ctx, tripID)
	if err != nil {
		return domain.ExportFile{}, fmt.Errorf("service.ExportService.TripApplications: %w", err)
	}

	content, err := buildWorkbook(apps)
	if err != nil {
		return domain.ExportFile{}, fmt.Errorf("service.ExportService.TripApplications: %w", err)
	}

	return domain.ExportFile{
		Filename: exportFilename(trip.Title),
		Content:  content,
	}, nil
}

// buildWorkbook writes the header row and one row per application.
func buildWorkbook(apps []domain.TripApplication) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	// Drop the default sheet so the workbook has exactly one.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, app := range apps {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row coordinates: %w", err)
		}
		record := exportRecord(app)
		if err := f.SetSheetRow(sheetName, cell, &record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// exportRecord flattens an application into one spreadsheet row.
// Column order matches exportHeaders.
func exportRecord(app domain.TripApplication) []any {
	return []any{
		app.ID.String(),
		app.StudentName,
		app.StudentGrade,
		app.GuardianName,
		app.GuardianPhone,
		app.StudentPhone,
		app.Status,
		app.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// exportFilename derives the download name from the trip title:
// whitespace runs become dashes and the result is lower-cased.
func exportFilename(title string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(title), "-"))
	return "gezi-" + slug + "-basvurular.xlsx"
}
