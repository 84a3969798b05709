package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
)

func TestExportApplications_200(t *testing.T) {
	tripID := uuid.New()
	content := []byte("workbook-bytes")
	exp := &mockExporter{
		tripApplications: func(_ context.Context, id uuid.UUID) (domain.ExportFile, error) {
			assert.Equal(t, tripID, id)
			return domain.ExportFile{
				Filename: "gezi-çanakkale-gezisi-basvurular.xlsx",
				Content:  content,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/"+tripID.String()+"/applications/export", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{exporter: exp}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Equal(t,
		`attachment; filename="gezi-çanakkale-gezisi-basvurular.xlsx"`,
		rec.Header().Get("Content-Disposition"))
	assert.Equal(t, content, rec.Body.Bytes())
}

func TestExportApplications_404_TripNotFound(t *testing.T) {
	exp := &mockExporter{
		tripApplications: func(_ context.Context, _ uuid.UUID) (domain.ExportFile, error) {
			return domain.ExportFile{}, fmt.Errorf("service.ExportService.TripApplications: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/"+uuid.NewString()+"/applications/export", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{exporter: exp}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gezi bulunamadı")
}

func TestExportApplications_404_BadUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/trips/not-a-uuid/applications/export", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
