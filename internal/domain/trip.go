// Package domain contains the core data types for the trip application system.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a school field trip that guardians can apply to.
// JSON field names follow the wire contract consumed by the admin panel and
// the public application form, which is why several of them are Turkish.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ExtraNotes  *string   `json:"extraNotes"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Price       *float64  `json:"price"`
	Quota       *int      `json:"quota"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// ApplicationCount is the number of applications submitted for this trip.
	// Populated by repo queries that join trip_applications; not a column.
	ApplicationCount int `json:"applicationCount"`
}

// TripFilter narrows trip listings. The zero value matches all trips.
type TripFilter struct {
	// IsActive filters on the active flag when non-nil.
	IsActive *bool
	// Query is a case-insensitive substring match on title or location.
	Query string
	// UpcomingOnly keeps trips whose start date is in the future.
	UpcomingOnly bool
	// NotEndedOnly keeps trips whose end date has not passed.
	// Used by the public listing so past trips never show on the form.
	NotEndedOnly bool
}

// TripPatch carries a partial trip update. Nil fields are left untouched.
// Description and ExtraNotes set to an empty string clear the stored value.
type TripPatch struct {
	Title       *string
	Description *string
	ExtraNotes  *string
	Location    *string
	StartDate   *time.Time
	EndDate     *time.Time
	Price       *float64
	Quota       *int
	IsActive    *bool
}

// IsZero reports whether the patch carries no recognized field at all.
// An all-nil patch is a validation failure ("no field to update").
func (p TripPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.ExtraNotes == nil &&
		p.Location == nil && p.StartDate == nil && p.EndDate == nil &&
		p.Price == nil && p.Quota == nil && p.IsActive == nil
}

// Apply merges the patch into t and returns the merged record.
func (p TripPatch) Apply(t Trip) Trip {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		if *p.Description == "" {
			t.Description = nil
		} else {
			t.Description = p.Description
		}
	}
	if p.ExtraNotes != nil {
		if *p.ExtraNotes == "" {
			t.ExtraNotes = nil
		} else {
			t.ExtraNotes = p.ExtraNotes
		}
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Price != nil {
		t.Price = p.Price
	}
	if p.Quota != nil {
		t.Quota = p.Quota
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	return t
}

// TripStats aggregates counts for the admin dashboard.
type TripStats struct {
	TotalTrips          int64 `json:"totalTrips"`
	ActiveTrips         int64 `json:"activeTrips"`
	UpcomingTrips       int64 `json:"upcomingTrips"`
	TotalApplications   int64 `json:"totalApplications"`
	MonthlyApplications int64 `json:"monthlyApplications"`
}
