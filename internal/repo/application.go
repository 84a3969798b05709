package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
)

// uniqueViolation is the Postgres error code raised by the
// (trip_id, ogrenci_telefon) unique constraint.
const uniqueViolation = "23505"

const applicationColumns = `
	id, trip_id, ogrenci_ad_soyad, ogrenci_sinifi, veli_ad_soyad,
	veli_telefon, ogrenci_telefon, status, created_at`

// ApplicationRepo defines the persistence operations for trip applications.
type ApplicationRepo interface {
	// Create inserts a new application and returns the persisted record.
	// Returns domain.ErrDuplicate when an application for the same trip and
	// student phone already exists (unique constraint violation).
	Create(ctx context.Context, app domain.TripApplication) (domain.TripApplication, error)

	// ExistsForTripAndPhone reports whether an application already exists for
	// the given trip and student phone.
	ExistsForTripAndPhone(ctx context.Context, tripID uuid.UUID, studentPhone string) (bool, error)

	// ListByTrip returns one page of applications for a trip, newest first,
	// optionally filtered by a substring match on names and phones.
	// The second return value is the total row count for the filter.
	ListByTrip(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams, query string) ([]domain.TripApplication, int64, error)

	// ListAllByTrip returns every application for a trip in creation order.
	// Used by the spreadsheet export.
	ListAllByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripApplication, error)

	// CountTotal returns the number of applications across all trips.
	CountTotal(ctx context.Context) (int64, error)

	// CountCreatedSince returns the number of applications created at or
	// after ref.
	CountCreatedSince(ctx context.Context, ref time.Time) (int64, error)
}

// pgApplicationRepo is the Postgres implementation of ApplicationRepo.
type pgApplicationRepo struct {
	db db
}

// NewApplicationRepo constructs an ApplicationRepo backed by the provided db
// connection.
func NewApplicationRepo(db db) ApplicationRepo {
	return &pgApplicationRepo{db: db}
}

// Create inserts a new application row. The unique constraint on
// (trip_id, ogrenci_telefon) is mapped to domain.ErrDuplicate so the service
// can reject concurrent duplicate submissions deterministically.
func (r *pgApplicationRepo) Create(ctx context.Context, app domain.TripApplication) (domain.TripApplication, error) {
	const q = `
		INSERT INTO trip_applications (trip_id, ogrenci_ad_soyad, ogrenci_sinifi,
			veli_ad_soyad, veli_telefon, ogrenci_telefon, status)
		VALUES (@trip_id, @ogrenci_ad_soyad, @ogrenci_sinifi,
			@veli_ad_soyad, @veli_telefon, @ogrenci_telefon, @status)
		RETURNING ` + applicationColumns

	args := pgx.NamedArgs{
		"trip_id":          app.TripID,
		"ogrenci_ad_soyad": app.StudentName,
		"ogrenci_sinifi":   app.StudentGrade,
		"veli_ad_soyad":    app.GuardianName,
		"veli_telefon":     app.GuardianPhone,
		"ogrenci_telefon":  app.StudentPhone,
		"status":           app.Status,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanApplication(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.TripApplication{}, fmt.Errorf("repo.ApplicationRepo.Create: %w", domain.ErrDuplicate)
		}
		return domain.TripApplication{}, fmt.Errorf("repo.ApplicationRepo.Create: %w", err)
	}
	return result, nil
}

// ExistsForTripAndPhone checks for a prior application with the same trip and
// student phone.
func (r *pgApplicationRepo) ExistsForTripAndPhone(ctx context.Context, tripID uuid.UUID, studentPhone string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM trip_applications
			WHERE trip_id = @trip_id AND ogrenci_telefon = @ogrenci_telefon
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id":         tripID,
		"ogrenci_telefon": studentPhone,
	}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.ApplicationRepo.ExistsForTripAndPhone: %w", err)
	}
	return exists, nil
}

// ListByTrip returns one page of applications for a trip, newest first.
// The query, when present, matches student/guardian names case-insensitively
// and both phone numbers as plain substrings.
func (r *pgApplicationRepo) ListByTrip(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams, query string) ([]domain.TripApplication, int64, error) {
	where := ` WHERE trip_id = @trip_id`
	args := pgx.NamedArgs{
		"trip_id": tripID,
		"limit":   params.Limit,
		"offset":  params.Offset(),
	}
	if query != "" {
		where += ` AND (ogrenci_ad_soyad ILIKE @query OR veli_ad_soyad ILIKE @query
			OR ogrenci_telefon LIKE @query OR veli_telefon LIKE @query)`
		args["query"] = "%" + query + "%"
	}

	q := `SELECT ` + applicationColumns + ` FROM trip_applications` + where +
		` ORDER BY created_at DESC LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ApplicationRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var apps []domain.TripApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ApplicationRepo.ListByTrip: scan: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ApplicationRepo.ListByTrip: rows: %w", err)
	}

	var total int64
	countQ := `SELECT count(*) FROM trip_applications` + where
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ApplicationRepo.ListByTrip: count: %w", err)
	}

	return apps, total, nil
}

// ListAllByTrip returns every application for a trip, oldest first, so export
// rows appear in submission order.
func (r *pgApplicationRepo) ListAllByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripApplication, error) {
	q := `SELECT ` + applicationColumns + `
		FROM trip_applications
		WHERE trip_id = @trip_id
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ApplicationRepo.ListAllByTrip: %w", err)
	}
	defer rows.Close()

	var apps []domain.TripApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ApplicationRepo.ListAllByTrip: scan: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ApplicationRepo.ListAllByTrip: rows: %w", err)
	}

	return apps, nil
}

// CountTotal returns the number of applications across all trips.
func (r *pgApplicationRepo) CountTotal(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM trip_applications`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.ApplicationRepo.CountTotal: %w", err)
	}
	return n, nil
}

// CountCreatedSince returns the number of applications created at or after ref.
func (r *pgApplicationRepo) CountCreatedSince(ctx context.Context, ref time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM trip_applications WHERE created_at >= @ref`,
		pgx.NamedArgs{"ref": ref}).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.ApplicationRepo.CountCreatedSince: %w", err)
	}
	return n, nil
}

// scanApplication maps a single database row into a domain.TripApplication.
func scanApplication(s scanner) (domain.TripApplication, error) {
	var (
		a      domain.TripApplication
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &a.StudentName, &a.StudentGrade, &a.GuardianName,
		&a.GuardianPhone, &a.StudentPhone, &a.Status, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripApplication{}, domain.ErrNotFound
		}
		return domain.TripApplication{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	return a, nil
}
