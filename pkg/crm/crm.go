package crm

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrClientNotFound = errors.New("client not found")

// Client is the CRM's view of a bookable person, keyed per business by phone
// or email. The booking engine holds only weak references to it.
type Client struct {
	ID          uuid.UUID
	BusinessID  int
	DisplayName string
	Phone       string
	Email       string
}

// TimelineEntry is a denormalized booking event in a client's chronological
// feed. Entries are append-only and idempotent per (appointment, status).
type TimelineEntry struct {
	ID            int64
	BusinessID    int
	ClientID      uuid.UUID
	AppointmentID uuid.UUID
	ServiceName   string
	Date          time.Time
	StartMinute   int
	Status        string
	CreatedAt     time.Time
}
