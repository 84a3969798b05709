package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/gezi"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/handler"
)

// Hand-written test doubles for the handler's consumer interfaces.
// Each method is a function field — set only the ones your test needs.

type mockTripServicer struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list       func(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	listPublic func(ctx context.Context) ([]domain.Trip, error)
	update     func(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	stats      func(ctx context.Context, ref time.Time) (domain.TripStats, error)
}

func (m *mockTripServicer) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	return m.list(ctx, filter)
}
func (m *mockTripServicer) ListPublic(ctx context.Context) ([]domain.Trip, error) {
	return m.listPublic(ctx)
}
func (m *mockTripServicer) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, id, patch)
}
func (m *mockTripServicer) Stats(ctx context.Context, ref time.Time) (domain.TripStats, error) {
	return m.stats(ctx, ref)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockApplicationServicer struct {
	create     func(ctx context.Context, app domain.TripApplication) (domain.TripApplication, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams, query string) ([]domain.TripApplication, int64, error)
}

func (m *mockApplicationServicer) Create(ctx context.Context, app domain.TripApplication) (domain.TripApplication, error) {
	return m.create(ctx, app)
}
func (m *mockApplicationServicer) ListByTrip(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams, query string) ([]domain.TripApplication, int64, error) {
	return m.listByTrip(ctx, tripID, params, query)
}

var _ handler.ApplicationServicer = (*mockApplicationServicer)(nil)

type mockExporter struct {
	tripApplications func(ctx context.Context, tripID uuid.UUID) (domain.ExportFile, error)
}

func (m *mockExporter) TripApplications(ctx context.Context, tripID uuid.UUID) (domain.ExportFile, error) {
	return m.tripApplications(ctx, tripID)
}

var _ handler.Exporter = (*mockExporter)(nil)

type mockGeziProxier struct {
	fetchTrips         func(ctx context.Context, query url.Values) (json.RawMessage, error)
	createTrip         func(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
	getTrip            func(ctx context.Context, tripID string) (json.RawMessage, error)
	updateTrip         func(ctx context.Context, tripID string, payload json.RawMessage) (json.RawMessage, error)
	fetchApplications  func(ctx context.Context, tripID string, query url.Values) (json.RawMessage, error)
	fetchStats         func(ctx context.Context) (json.RawMessage, error)
	exportApplications func(ctx context.Context, tripID string, query url.Values) (gezi.ExportResult, error)
}

func (m *mockGeziProxier) FetchTrips(ctx context.Context, query url.Values) (json.RawMessage, error) {
	return m.fetchTrips(ctx, query)
}
func (m *mockGeziProxier) CreateTrip(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return m.createTrip(ctx, payload)
}
func (m *mockGeziProxier) GetTrip(ctx context.Context, tripID string) (json.RawMessage, error) {
	return m.getTrip(ctx, tripID)
}
func (m *mockGeziProxier) UpdateTrip(ctx context.Context, tripID string, payload json.RawMessage) (json.RawMessage, error) {
	return m.updateTrip(ctx, tripID, payload)
}
func (m *mockGeziProxier) FetchApplications(ctx context.Context, tripID string, query url.Values) (json.RawMessage, error) {
	return m.fetchApplications(ctx, tripID, query)
}
func (m *mockGeziProxier) FetchStats(ctx context.Context) (json.RawMessage, error) {
	return m.fetchStats(ctx)
}
func (m *mockGeziProxier) ExportApplications(ctx context.Context, tripID string, query url.Values) (gezi.ExportResult, error) {
	return m.exportApplications(ctx, tripID, query)
}

var _ handler.GeziProxier = (*mockGeziProxier)(nil)

type mockStudentLookup struct {
	findStudents func(ctx context.Context, tcNumber string) (json.RawMessage, error)
}

func (m *mockStudentLookup) FindStudents(ctx context.Context, tcNumber string) (json.RawMessage, error) {
	return m.findStudents(ctx, tcNumber)
}

var _ handler.StudentLookup = (*mockStudentLookup)(nil)

// ---- helpers ---------------------------------------------------------------

// serverDeps bundles the mock set newHTTPHandler wires into the router.
// The zero value yields a Server whose endpoints panic when reached, which is
// exactly what a test wants when it exercises only one surface.
type serverDeps struct {
	trips    handler.TripServicer
	apps     handler.ApplicationServicer
	exporter handler.Exporter
	gezi     handler.GeziProxier
	lookup   handler.StudentLookup
	opts     handler.RouterOptions
}

// newHTTPHandler wires a Server with the given mocks into the chi router,
// mirroring how main.go wires it in production.
func newHTTPHandler(deps serverDeps) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := handler.NewServer(deps.trips, deps.apps, deps.exporter, deps.gezi, deps.lookup, log, false)
	return srv.Router(deps.opts)
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		Title:     "Çanakkale Gezisi",
		Location:  "Çanakkale",
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func applicationFixture(tripID uuid.UUID) domain.TripApplication {
	return domain.TripApplication{
		ID:            uuid.New(),
		TripID:        tripID,
		StudentName:   "Ali Veli",
		StudentGrade:  "9",
		GuardianName:  "Ayşe Veli",
		GuardianPhone: "5321234567",
		StudentPhone:  "5417654321",
		Status:        domain.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}
