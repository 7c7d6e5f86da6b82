package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orario/orario/internal/event_bus"
	"github.com/orario/orario/pkg/business"
	log "github.com/sirupsen/logrus"
)

// ServiceNameResolver resolves a service id to its display name, archived
// services included. Implemented by the catalog package.
type ServiceNameResolver interface {
	ServiceName(ctx context.Context, serviceId int) (string, error)
}

type BookingService interface {
	ListForDate(ctx context.Context, date time.Time) ([]Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (Appointment, error)
	Confirm(ctx context.Context, id uuid.UUID) (Appointment, error)
	// Cancel marks the appointment cancelled. The row stays in the ledger.
	Cancel(ctx context.Context, id uuid.UUID) error
}

type BookingServiceImpl struct {
	repo     Repository
	resolver ServiceNameResolver
	bus      *event_bus.EventBus
}

func NewBookingService(repo Repository, resolver ServiceNameResolver, bus *event_bus.EventBus) *BookingServiceImpl {
	return &BookingServiceImpl{repo: repo, resolver: resolver, bus: bus}
}

func (s *BookingServiceImpl) ListForDate(ctx context.Context, date time.Time) ([]Appointment, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current business: %w", err)
	}
	return s.repo.ListForDate(ctx, businessId, date)
}

func (s *BookingServiceImpl) Get(ctx context.Context, id uuid.UUID) (Appointment, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return Appointment{}, fmt.Errorf("failed to get current business: %w", err)
	}
	return s.repo.Get(ctx, businessId, id)
}

func (s *BookingServiceImpl) Confirm(ctx context.Context, id uuid.UUID) (Appointment, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return Appointment{}, fmt.Errorf("failed to get current business: %w", err)
	}

	transitioned, err := s.repo.UpdateStatus(ctx, businessId, id, StatusPending, StatusConfirmed)
	if err != nil {
		return Appointment{}, err
	}
	if !transitioned {
		return Appointment{}, fmt.Errorf("%w: no pending appointment %s", ErrAppointmentNotFound, id)
	}

	appointment, err := s.repo.Get(ctx, businessId, id)
	if err != nil {
		return Appointment{}, err
	}

	s.publish(ctx, event_bus.EventAppointmentConfirmed, appointment)
	return appointment, nil
}

func (s *BookingServiceImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current business: %w", err)
	}

	appointment, err := s.repo.Get(ctx, businessId, id)
	if err != nil {
		return err
	}
	if appointment.Status == StatusCancelled {
		return nil
	}

	cancelled, err := s.repo.UpdateStatus(ctx, businessId, id, appointment.Status, StatusCancelled)
	if err != nil {
		return err
	}
	if !cancelled {
		// Status changed between Get and UpdateStatus; either way it is no
		// longer in the state the caller saw.
		return fmt.Errorf("%w: appointment %s changed state concurrently", ErrAppointmentNotFound, id)
	}

	appointment.Status = StatusCancelled
	s.publish(ctx, event_bus.EventAppointmentCancelled, appointment)
	return nil
}

// publish notifies downstream consumers of a ledger mutation. Best-effort:
// failures are logged and never propagated, so a timeline or dashboard glitch
// cannot invalidate a committed status change.
func (s *BookingServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, appointment Appointment) {
	serviceName, err := s.resolver.ServiceName(ctx, appointment.ServiceID)
	if err != nil {
		log.Warnf("could not resolve service name for appointment %s: %v", appointment.ID, err)
	}

	event := event_bus.NewEvent(ctx, eventType, event_bus.AppointmentEvent{
		AppointmentID:   appointment.ID,
		BusinessID:      appointment.BusinessID,
		ClientID:        appointment.ClientID,
		ServiceName:     serviceName,
		Date:            appointment.Date,
		StartMinute:     appointment.StartMinute,
		DurationMinutes: appointment.DurationMinutes,
		Status:          string(appointment.Status),
	})
	if err := s.bus.Publish(event); err != nil {
		log.Errorf("failed to publish %s for appointment %s: %v", eventType, appointment.ID, err)
	}
}
