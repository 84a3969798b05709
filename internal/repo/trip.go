// Package repo contains all database access logic for the trip application API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
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

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// tripColumns is the SELECT list shared by every trip query, including the
// per-trip application count subquery.
const tripColumns = `
	t.id, t.title, t.description, t.extra_notes, t.location,
	t.start_date, t.end_date, t.price, t.quota, t.is_active,
	t.created_at, t.updated_at,
	(SELECT count(*) FROM trip_applications a WHERE a.trip_id = t.id) AS application_count`

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip with its application count.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns trips matching the filter, ordered by start_date ascending.
	List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// CountTotal returns the number of trips.
	CountTotal(ctx context.Context) (int64, error)

	// CountActive returns the number of trips with the active flag set.
	CountActive(ctx context.Context) (int64, error)

	// CountUpcoming returns the number of trips starting at or after ref.
	CountUpcoming(ctx context.Context, ref time.Time) (int64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips AS t (title, description, extra_notes, location,
			start_date, end_date, price, quota, is_active)
		VALUES (@title, @description, @extra_notes, @location,
			@start_date, @end_date, @price, @quota, @is_active)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"title":       trip.Title,
		"description": trip.Description, // nil becomes NULL
		"extra_notes": trip.ExtraNotes,
		"location":    trip.Location,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"price":       trip.Price,
		"quota":       trip.Quota,
		"is_active":   trip.IsActive,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, including its application count.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips t WHERE t.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns trips matching the filter, soonest start date first.
// Filters compose with AND; the free-text query matches title or location.
func (r *pgTripRepo) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips t WHERE true`
	args := pgx.NamedArgs{}

	if filter.IsActive != nil {
		q += ` AND t.is_active = @is_active`
		args["is_active"] = *filter.IsActive
	}
	if filter.UpcomingOnly {
		q += ` AND t.start_date >= now()`
	}
	if filter.NotEndedOnly {
		q += ` AND t.end_date >= now()`
	}
	if filter.Query != "" {
		q += ` AND (t.title ILIKE @query OR t.location ILIKE @query)`
		args["query"] = "%" + filter.Query + "%"
	}
	q += ` ORDER BY t.start_date ASC`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
// The service layer has already merged the patch into a full record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips AS t
		SET title       = @title,
		    description = @description,
		    extra_notes = @extra_notes,
		    location    = @location,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    price       = @price,
		    quota       = @quota,
		    is_active   = @is_active,
		    updated_at  = now()
		WHERE t.id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"title":       trip.Title,
		"description": trip.Description,
		"extra_notes": trip.ExtraNotes,
		"location":    trip.Location,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"price":       trip.Price,
		"quota":       trip.Quota,
		"is_active":   trip.IsActive,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// CountTotal returns the total number of trips.
func (r *pgTripRepo) CountTotal(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM trips`, pgx.NamedArgs{})
}

// CountActive returns the number of active trips.
func (r *pgTripRepo) CountActive(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM trips WHERE is_active`, pgx.NamedArgs{})
}

// CountUpcoming returns the number of trips starting at or after ref.
func (r *pgTripRepo) CountUpcoming(ctx context.Context, ref time.Time) (int64, error) {
	return r.count(ctx,
		`SELECT count(*) FROM trips WHERE start_date >= @ref`,
		pgx.NamedArgs{"ref": ref})
}

func (r *pgTripRepo) count(ctx context.Context, q string, args pgx.NamedArgs) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, q, args).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.TripRepo.count: %w", err)
	}
	return n, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and the nullable description/extra_notes/price/quota
// conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t           domain.Trip
		id          pgtype.UUID
		description pgtype.Text
		extraNotes  pgtype.Text
		price       pgtype.Float8
		quota       pgtype.Int4
	)

	err := s.Scan(&id, &t.Title, &description, &extraNotes, &t.Location,
		&t.StartDate, &t.EndDate, &price, &quota, &t.IsActive,
		&t.CreatedAt, &t.UpdatedAt, &t.ApplicationCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	if description.Valid {
		d := description.String
		t.Description = &d
	}
	if extraNotes.Valid {
		n := extraNotes.String
		t.ExtraNotes = &n
	}
	if price.Valid {
		p := price.Float64
		t.Price = &p
	}
	if quota.Valid {
		q := int(quota.Int32)
		t.Quota = &q
	}

	return t, nil
}
