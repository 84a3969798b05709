// Package service contains the business logic for the trip application API.
// Services enforce business rules and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/repo"
)

// TripService implements business logic for trip operations, including the
// dashboard stats that aggregate over both trips and applications.
type TripService struct {
	trips repo.TripRepo
	apps  repo.ApplicationRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, apps repo.ApplicationRepo) *TripService {
	return &TripService{trips: trips, apps: apps}
}

// Create persists a new trip. Field-level validation has already happened in
// the validation layer; only cross-record rules would live here, and trip
// creation has none.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip with its application count.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns trips matching the filter.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPublic returns the trips shown on the public application form:
// active and not yet ended, soonest first.
func (s *TripService) ListPublic(ctx context.Context) ([]domain.Trip, error) {
	active := true
	return s.List(ctx, domain.TripFilter{IsActive: &active, NotEndedOnly: true})
}

// Update applies a partial update to an existing trip.
// Returns domain.ErrValidation when the patch carries no recognized field or
// when the merged record would have its end date before its start date.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	if patch.IsZero() {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w: Güncellenecek alan bulunamadı", domain.ErrValidation)
	}

	existing, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	merged := patch.Apply(existing)
	if merged.EndDate.Before(merged.StartDate) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w: Bitiş tarihi başlangıç tarihinden önce olamaz", domain.ErrValidation)
	}

	result, err := s.trips.Update(ctx, merged)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Stats aggregates the dashboard counts. Monthly applications are counted
// from the first instant of the current month in ref's location.
func (s *TripService) Stats(ctx context.Context, ref time.Time) (domain.TripStats, error) {
	startOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())

	var (
		stats domain.TripStats
		err   error
	)
	if stats.TotalTrips, err = s.trips.CountTotal(ctx); err != nil {
		return domain.TripStats{}, fmt.Errorf("service.TripService.Stats: %w", err)
	}
	if stats.ActiveTrips, err = s.trips.CountActive(ctx); err != nil {
		return domain.TripStats{}, fmt.Errorf("service.TripService.Stats: %w", err)
	}
	if stats.UpcomingTrips, err = s.trips.CountUpcoming(ctx, ref); err != nil {
		return domain.TripStats{}, fmt.Errorf("service.TripService.Stats: %w", err)
	}
	if stats.TotalApplications, err = s.apps.CountTotal(ctx); err != nil {
		return domain.TripStats{}, fmt.Errorf("service.TripService.Stats: %w", err)
	}
	if stats.MonthlyApplications, err = s.apps.CountCreatedSince(ctx, startOfMonth); err != nil {
		return domain.TripStats{}, fmt.Errorf("service.TripService.Stats: %w", err)
	}
	return stats, nil
}
