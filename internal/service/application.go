package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/repo"
)

// ApplicationService implements business logic for trip applications.
// It holds both repos because creating an application requires checking the
// parent trip's state first.
type ApplicationService struct {
	trips repo.TripRepo
	apps  repo.ApplicationRepo

	// now is swappable in tests so "trip has ended" is deterministic.
	now func() time.Time
}

// NewApplicationService constructs an ApplicationService backed by the
// provided repos.
func NewApplicationService(trips repo.TripRepo, apps repo.ApplicationRepo) *ApplicationService {
	return &ApplicationService{trips: trips, apps: apps, now: time.Now}
}

// Create validates the business rules and persists a new application:
// the trip must exist and be active, must not have ended, and no prior
// application may exist for the same trip and student phone.
//
// The pre-insert existence check gives the friendly message on the common
// serialized path; the unique constraint (surfaced as domain.ErrDuplicate)
// remains the authoritative duplicate signal under concurrent submissions.
func (s *ApplicationService) Create(ctx context.Context, app domain.TripApplication) (domain.TripApplication, error) {
	trip, err := s.trips.GetByID(ctx, app.TripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TripApplication{}, fmt.Errorf("service.ApplicationService.Create: %w: Gezi başvurusu kapalı veya gezi bulunamadı", domain.ErrValidation)
		}
		return domain.TripApplication{}, fmt.Errorf("service.ApplicationService.Create: %w", err)
	}
	if !trip.IsActive {
		return domain.TripApplication{}, fmt.Errorf("service.ApplicationService.Create: %w: Gezi başvurusu kapalı veya gezi bulunamadı", domain.ErrValidation)
	}
	if trip.EndDate.Before(s.now()) {
		return domain.TripApplication{}, fmt.Errorf("service.ApplicationService.Create: %w: Gezi tarihleri geçmiş, başvuru yapılamaz", domain.ErrValidation)
	}

	exists, err := s.apps.ExistsForTripAndPhone(ctx, app.TripID, app.StudentPhone)
	if err != nil {
		return domain.TripApplication{}, fmt.Errorf("service.ApplicationService.Create: %w", err)
	}
	if exists {
		return domain.TripApplication{}, fmt.Errorf("service.ApplicationService.Create: %w: Bu telefon numarası ile zaten başvuru yapılmış", domain.ErrDuplicate)
	}

	result, err := s.apps.Create(ctx, app)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Lost the race against a concurrent identical submission.
			return domain.TripApplication{}, fmt.Errorf("service.ApplicationService.Create: %w: Bu telefon numarası ile zaten başvuru yapılmış", domain.ErrDuplicate)
		}
		return domain.TripApplication{}, fmt.Errorf("service.ApplicationService.Create: %w", err)
	}
	return result, nil
}

// ListByTrip returns one page of applications for a trip, newest first,
// with the total row count for the filter.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ApplicationService) ListByTrip(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams, query string) ([]domain.TripApplication, int64, error) {
	apps, total, err := s.apps.ListByTrip(ctx, tripID, params, query)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ApplicationService.ListByTrip: %w", err)
	}
	if apps == nil {
		apps = []domain.TripApplication{}
	}
	return apps, total, nil
}
