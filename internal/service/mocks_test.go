package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
type mockTripRepo struct {
	create        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list          func(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	update        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	countTotal    func(ctx context.Context) (int64, error)
	countActive   func(ctx context.Context) (int64, error)
	countUpcoming func(ctx context.Context, ref time.Time) (int64, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	return m.list(ctx, filter)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) CountTotal(ctx context.Context) (int64, error) {
	return m.countTotal(ctx)
}
func (m *mockTripRepo) CountActive(ctx context.Context) (int64, error) {
	return m.countActive(ctx)
}
func (m *mockTripRepo) CountUpcoming(ctx context.Context, ref time.Time) (int64, error) {
	return m.countUpcoming(ctx, ref)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockApplicationRepo is a hand-written test double for repo.ApplicationRepo.
type mockApplicationRepo struct {
	create            func(ctx context.Context, app domain.TripApplication) (domain.TripApplication, error)
	exists            func(ctx context.Context, tripID uuid.UUID, studentPhone string) (bool, error)
	listByTrip        func(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams, query string) ([]domain.TripApplication, int64, error)
	listAllByTrip     func(ctx context.Context, tripID uuid.UUID) ([]domain.TripApplication, error)
	countTotal        func(ctx context.Context) (int64, error)
	countCreatedSince func(ctx context.Context, ref time.Time) (int64, error)
}

func (m *mockApplicationRepo) Create(ctx context.Context, app domain.TripApplication) (domain.TripApplication, error) {
	return m.create(ctx, app)
}
func (m *mockApplicationRepo) ExistsForTripAndPhone(ctx context.Context, tripID uuid.UUID, studentPhone string) (bool, error) {
	return m.exists(ctx, tripID, studentPhone)
}
func (m *mockApplicationRepo) ListByTrip(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams, query string) ([]domain.TripApplication, int64, error) {
	return m.listByTrip(ctx, tripID, params, query)
}
func (m *mockApplicationRepo) ListAllByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripApplication, error) {
	return m.listAllByTrip(ctx, tripID)
}
func (m *mockApplicationRepo) CountTotal(ctx context.Context) (int64, error) {
	return m.countTotal(ctx)
}
func (m *mockApplicationRepo) CountCreatedSince(ctx context.Context, ref time.Time) (int64, error) {
	return m.countCreatedSince(ctx, ref)
}

// compile-time check: mockApplicationRepo must satisfy repo.ApplicationRepo.
var _ repo.ApplicationRepo = (*mockApplicationRepo)(nil)

// ---- shared helpers --------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		Title:     "Çanakkale Gezisi",
		Location:  "Çanakkale",
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
}

func validApplication(tripID uuid.UUID) domain.TripApplication {
	return domain.TripApplication{
		TripID:        tripID,
		StudentName:   "Ali Veli",
		StudentGrade:  "9",
		GuardianName:  "Ayşe Veli",
		GuardianPhone: "5321234567",
		StudentPhone:  "5417654321",
		Status:        domain.StatusPending,
	}
}
