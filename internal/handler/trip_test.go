package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
)

// ---- POST /api/trips -------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"title":     "Çanakkale Gezisi",
		"location":  "Çanakkale",
		"startDate": "2026-10-01",
		"endDate":   "2026-10-03",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data domain.Trip `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.Data.ID)
	assert.Equal(t, fixture.Title, resp.Data.Title)
}

func TestCreateTrip_400_FieldErrors(t *testing.T) {
	body := jsonBody(t, map[string]any{
		"title": "AB",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/trips", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error   string              `json:"error"`
		Details map[string][]string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Gezi verisi doğrulanamadı", resp.Error)
	assert.Contains(t, resp.Details, "title")
	assert.Contains(t, resp.Details, "location")
}

func TestCreateTrip_400_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/trips", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /api/trips --------------------------------------------------------

func TestListTrips_200(t *testing.T) {
	svc := &mockTripServicer{
		list: func(_ context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
			require.NotNil(t, filter.IsActive)
			assert.True(t, *filter.IsActive)
			assert.Equal(t, "çanakkale", filter.Query)
			assert.True(t, filter.UpcomingOnly)
			return []domain.Trip{tripFixture()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips?isActive=true&q=çanakkale&upcoming=true", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.Trip `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 1)
}

func TestListTrips_500(t *testing.T) {
	svc := &mockTripServicer{
		list: func(_ context.Context, _ domain.TripFilter) ([]domain.Trip, error) {
			return nil, errors.New("db exploded")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Production mode never leaks the internal error text.
	assert.NotContains(t, rec.Body.String(), "db exploded")
}

// ---- GET /api/trips/{tripID} -----------------------------------------------

func TestGetTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTrip_404_NotFound(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gezi bulunamadı")
}

func TestGetTrip_404_BadUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/trips/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- PATCH /api/trips/{tripID} ---------------------------------------------

func TestUpdateTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		update: func(_ context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, id)
			require.NotNil(t, patch.Title)
			assert.Equal(t, "Kapadokya Gezisi", *patch.Title)
			updated := fixture
			updated.Title = *patch.Title
			return updated, nil
		},
	}

	body := jsonBody(t, map[string]any{"title": "Kapadokya Gezisi"})
	req := httptest.NewRequest(http.MethodPatch, "/api/trips/"+fixture.ID.String(), body)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kapadokya Gezisi")
}

func TestUpdateTrip_400_EmptyPatch(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, _ uuid.UUID, _ domain.TripPatch) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w: Güncellenecek alan bulunamadı", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{})
	req := httptest.NewRequest(http.MethodPatch, "/api/trips/"+uuid.NewString(), body)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// The error body carries the bare message, not the wrapped chain.
	assert.Contains(t, rec.Body.String(), "Güncellenecek alan bulunamadı")
	assert.NotContains(t, rec.Body.String(), "service.TripService")
}

func TestUpdateTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, _ uuid.UUID, _ domain.TripPatch) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrNotFound)
		},
	}

	body := jsonBody(t, map[string]any{"title": "Kapadokya Gezisi"})
	req := httptest.NewRequest(http.MethodPatch, "/api/trips/"+uuid.NewString(), body)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- GET /api/trips/stats --------------------------------------------------

func TestGetStats_200(t *testing.T) {
	svc := &mockTripServicer{
		stats: func(_ context.Context, _ time.Time) (domain.TripStats, error) {
			return domain.TripStats{TotalTrips: 7, MonthlyApplications: 12}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/stats", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.TripStats `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(7), resp.Data.TotalTrips)
	assert.Equal(t, int64(12), resp.Data.MonthlyApplications)
}

// ---- GET /api/trips/public -------------------------------------------------

func TestListPublicTrips_200_AnyOrigin(t *testing.T) {
	svc := &mockTripServicer{
		listPublic: func(_ context.Context) ([]domain.Trip, error) {
			return []domain.Trip{tripFixture()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/public", nil)
	req.Header.Set("Origin", "https://random-site.example")
	rec := httptest.NewRecorder()

	newHTTPHandler(serverDeps{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The public listing answers any origin, unlike the admin surface.
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
