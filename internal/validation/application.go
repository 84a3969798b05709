package validation

import (
	"github.com/google/uuid"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
)

// CreateApplicationRequest is the payload for POST /api/applications.
// Field names are the Turkish wire names the public form submits.
type CreateApplicationRequest struct {
	TripID        string `json:"tripId" validate:"required"`
	StudentName   string `json:"ogrenciAdSoyad" validate:"required,min=3"`
	GuardianName  string `json:"veliAdSoyad" validate:"required,min=3"`
	StudentGrade  string `json:"ogrenciSinifi" validate:"required,oneof=5 6 7 8 9 10 11 12"`
	GuardianPhone string `json:"veliTelefon" validate:"required,trphone"`
	StudentPhone  string `json:"ogrenciTelefon" validate:"required,trphone"`
}

var applicationJSONNames = map[string]string{
	"TripID":        "tripId",
	"StudentName":   "ogrenciAdSoyad",
	"GuardianName":  "veliAdSoyad",
	"StudentGrade":  "ogrenciSinifi",
	"GuardianPhone": "veliTelefon",
	"StudentPhone":  "ogrenciTelefon",
}

// CreateApplication validates the request and returns the normalized record.
// Status is always StatusPending; applications never arrive pre-approved.
func (r CreateApplicationRequest) CreateApplication() (domain.TripApplication, FieldErrors) {
	fe := FieldErrors{}
	structErrors(r, applicationJSONNames, fe)

	var tripID uuid.UUID
	if r.TripID != "" {
		var err error
		tripID, err = uuid.Parse(r.TripID)
		if err != nil {
			fe.add("tripId", "Geçersiz gezi ID")
		}
	}

	if len(fe) > 0 {
		return domain.TripApplication{}, fe
	}

	return domain.TripApplication{
		TripID:        tripID,
		StudentName:   r.StudentName,
		StudentGrade:  r.StudentGrade,
		GuardianName:  r.GuardianName,
		GuardianPhone: r.GuardianPhone,
		StudentPhone:  r.StudentPhone,
		Status:        domain.StatusPending,
	}, nil
}
