package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RepositoryStub is an in-memory ledger. Commit holds the stub's lock for the
// whole check-and-insert, mirroring the advisory-lock serialization of the
// real repository.
type RepositoryStub struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]Appointment
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{appointments: make(map[uuid.UUID]Appointment)}
}

func (r *RepositoryStub) ListForDate(ctx context.Context, businessId int, date time.Time) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listForDateLocked(businessId, date), nil
}

func (r *RepositoryStub) listForDateLocked(businessId int, date time.Time) []Appointment {
	var result []Appointment
	for _, a := range r.appointments {
		if a.BusinessID == businessId && a.Date.Equal(date) && a.Status != StatusCancelled {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartMinute < result[j].StartMinute })
	return result
}

func (r *RepositoryStub) Commit(ctx context.Context, appointment Appointment) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidate := Interval{Start: appointment.StartMinute, End: appointment.EndMinute()}
	for _, existing := range r.listForDateLocked(appointment.BusinessID, appointment.Date) {
		if candidate.Overlaps(Interval{Start: existing.StartMinute, End: existing.EndMinute()}) {
			return Appointment{}, ErrConflict
		}
	}

	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.Status = StatusPending
	appointment.CreatedAt = time.Now()
	r.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (r *RepositoryStub) Get(ctx context.Context, businessId int, id uuid.UUID) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok || a.BusinessID != businessId {
		return Appointment{}, ErrAppointmentNotFound
	}
	return a, nil
}

func (r *RepositoryStub) UpdateStatus(ctx context.Context, businessId int, id uuid.UUID, from, to Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok || a.BusinessID != businessId || a.Status != from {
		return false, nil
	}
	a.Status = to
	r.appointments[id] = a
	return true, nil
}

func (r *RepositoryStub) CountFutureForService(ctx context.Context, businessId int, serviceId int, from time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, a := range r.appointments {
		if a.BusinessID == businessId && a.ServiceID == serviceId && a.Status != StatusCancelled && !a.Date.Before(from) {
			count++
		}
	}
	return count, nil
}
