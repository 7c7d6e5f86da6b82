package event_bus

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventAppointmentBooked    EventType = "appointment.booked"
	EventAppointmentConfirmed EventType = "appointment.confirmed"
	EventAppointmentCancelled EventType = "appointment.cancelled"
)

// AppointmentEvent is published on every ledger mutation. It carries the
// denormalized fields downstream consumers (CRM timeline, dashboard) need so
// they never have to read the ledger themselves.
type AppointmentEvent struct {
	AppointmentID   uuid.UUID
	BusinessID      int
	ClientID        uuid.UUID
	ServiceName     string
	Date            time.Time
	StartMinute     int
	DurationMinutes int
	Status          string
}
