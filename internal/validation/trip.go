package validation

import (
	"time"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
)

// CreateTripRequest is the payload for POST /api/trips.
type CreateTripRequest struct {
	Title       string         `json:"title" validate:"required,min=3"`
	Description *string        `json:"description" validate:"omitempty,max=2000"`
	ExtraNotes  *string        `json:"extraNotes" validate:"omitempty,max=2000"`
	Location    string         `json:"location" validate:"required,min=2"`
	StartDate   string         `json:"startDate" validate:"required"`
	EndDate     string         `json:"endDate" validate:"required"`
	Price       OptionalNumber `json:"price"`
	Quota       OptionalInt    `json:"quota"`
	IsActive    *bool          `json:"isActive"`
}

// tripJSONNames maps struct fields back to their wire names for field errors.
var tripJSONNames = map[string]string{
	"Title":       "title",
	"Description": "description",
	"ExtraNotes":  "extraNotes",
	"Location":    "location",
	"StartDate":   "startDate",
	"EndDate":     "endDate",
}

// CreateTrip validates the request and returns the normalized trip.
// On failure the FieldErrors map is non-empty and the trip is the zero value.
func (r CreateTripRequest) CreateTrip() (domain.Trip, FieldErrors) {
	fe := FieldErrors{}
	structErrors(r, tripJSONNames, fe)

	start, end := r.checkDates(fe)
	nonNegative(r.Price, "price", fe)
	nonNegativeInt(r.Quota, "quota", fe)

	if len(fe) > 0 {
		return domain.Trip{}, fe
	}

	trip := domain.Trip{
		Title:       r.Title,
		Description: normalizeText(r.Description),
		ExtraNotes:  normalizeText(r.ExtraNotes),
		Location:    r.Location,
		StartDate:   start,
		EndDate:     end,
		Price:       r.Price.Ptr(),
		Quota:       r.Quota.Ptr(),
		IsActive:    true,
	}
	if r.IsActive != nil {
		trip.IsActive = *r.IsActive
	}
	return trip, nil
}

// checkDates parses both dates and enforces endDate >= startDate.
// Errors attach to the individual date fields, with the ordering violation
// reported on endDate.
func (r CreateTripRequest) checkDates(fe FieldErrors) (start, end time.Time) {
	start, startOK := parseDate(r.StartDate)
	if r.StartDate != "" && !startOK {
		fe.add("startDate", "Geçerli bir tarih giriniz")
	}
	end, endOK := parseDate(r.EndDate)
	if r.EndDate != "" && !endOK {
		fe.add("endDate", "Geçerli bir tarih giriniz")
	}
	if startOK && endOK && end.Before(start) {
		fe.add("endDate", "Bitiş tarihi başlangıç tarihinden önce olamaz")
	}
	return start, end
}

// UpdateTripRequest is the payload for PATCH /api/trips/{id}.
// Every field is optional; absent fields leave the stored value untouched.
type UpdateTripRequest struct {
	Title       *string        `json:"title" validate:"omitempty,min=3"`
	Description *string        `json:"description" validate:"omitempty,max=2000"`
	ExtraNotes  *string        `json:"extraNotes" validate:"omitempty,max=2000"`
	Location    *string        `json:"location" validate:"omitempty,min=2"`
	StartDate   *string        `json:"startDate"`
	EndDate     *string        `json:"endDate"`
	Price       OptionalNumber `json:"price"`
	Quota       OptionalInt    `json:"quota"`
	IsActive    *bool          `json:"isActive"`
}

// UpdateTrip validates the request and returns the patch.
// The patch may still be empty; the service rejects empty patches so the
// "no field to update" rule lives with the other business rules.
func (r UpdateTripRequest) UpdateTrip() (domain.TripPatch, FieldErrors) {
	fe := FieldErrors{}
	structErrors(r, tripJSONNames, fe)
	nonNegative(r.Price, "price", fe)
	nonNegativeInt(r.Quota, "quota", fe)

	patch := domain.TripPatch{
		Title:       r.Title,
		Description: r.Description,
		ExtraNotes:  r.ExtraNotes,
		Location:    r.Location,
		Price:       r.Price.Ptr(),
		Quota:       r.Quota.Ptr(),
		IsActive:    r.IsActive,
	}

	if r.StartDate != nil && *r.StartDate != "" {
		start, ok := parseDate(*r.StartDate)
		if !ok {
			fe.add("startDate", "Geçerli bir tarih giriniz")
		} else {
			patch.StartDate = &start
		}
	}
	if r.EndDate != nil && *r.EndDate != "" {
		end, ok := parseDate(*r.EndDate)
		if !ok {
			fe.add("endDate", "Geçerli bir tarih giriniz")
		} else {
			patch.EndDate = &end
		}
	}
	if patch.StartDate != nil && patch.EndDate != nil && patch.EndDate.Before(*patch.StartDate) {
		fe.add("endDate", "Bitiş tarihi başlangıç tarihinden önce olamaz")
	}

	if len(fe) > 0 {
		return domain.TripPatch{}, fe
	}
	return patch, nil
}

// normalizeText trims a nullable free-text field, mapping empty to nil.
func normalizeText(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
