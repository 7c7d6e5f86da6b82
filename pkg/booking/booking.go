package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrConflict = errors.New("appointment overlaps an existing one")
var ErrAppointmentNotFound = errors.New("appointment not found")

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Appointment is a ledger entry. Rows are never deleted; cancellation is a
// status transition so the CRM timeline stays complete. DurationMinutes is a
// copy taken from the service at booking time.
type Appointment struct {
	ID              uuid.UUID
	BusinessID      int
	ServiceID       int
	ClientID        uuid.UUID
	Date            time.Time // calendar day, midnight UTC
	StartMinute     int
	DurationMinutes int
	Status          Status
	CreatedAt       time.Time
}

// EndMinute is the exclusive end of the appointment's interval.
func (a Appointment) EndMinute() int {
	return a.StartMinute + a.DurationMinutes
}

// Interval is a half-open [Start, End) span in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps is the strict overlap test shared by the generator and the ledger.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}
