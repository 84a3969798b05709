package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusPending is the initial status assigned to every application.
// No code path transitions it; the admin panel reads it as-is.
const StatusPending = "PENDING"

// AllowedGrades is the fixed set of student grades accepted on applications.
var AllowedGrades = []string{"5", "6", "7", "8", "9", "10", "11", "12"}

// TripApplication is one guardian/student application for a trip.
// Applications are immutable once created; there is no update or delete path.
type TripApplication struct {
	ID            uuid.UUID `json:"id"`
	TripID        uuid.UUID `json:"tripId"`
	StudentName   string    `json:"ogrenciAdSoyad"`
	StudentGrade  string    `json:"ogrenciSinifi"`
	GuardianName  string    `json:"veliAdSoyad"`
	GuardianPhone string    `json:"veliTelefon"`
	StudentPhone  string    `json:"ogrenciTelefon"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
