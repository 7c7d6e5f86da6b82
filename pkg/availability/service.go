package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orario/orario/internal/config"
	"github.com/orario/orario/internal/event_bus"
	"github.com/orario/orario/internal/utils"
	"github.com/orario/orario/pkg/booking"
	"github.com/orario/orario/pkg/business"
	"github.com/orario/orario/pkg/catalog"
	"github.com/orario/orario/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

var ErrSlotNoLongerAvailable = errors.New("slot is no longer available")

// ScheduleReader provides the current business's weekly working hours.
type ScheduleReader interface {
	Get(ctx context.Context) (schedule.WeeklySchedule, error)
}

// ServiceResolver provides service lookups from the catalog.
type ServiceResolver interface {
	Get(ctx context.Context, serviceId int) (catalog.Service, error)
}

// Ledger is the subset of the booking repository the orchestrator needs.
type Ledger interface {
	ListForDate(ctx context.Context, businessId int, date time.Time) ([]booking.Appointment, error)
	Commit(ctx context.Context, appointment booking.Appointment) (booking.Appointment, error)
}

// ClientDirectory checks whether a CRM client exists for the business.
type ClientDirectory interface {
	Exists(ctx context.Context, businessId int, clientId uuid.UUID) (bool, error)
}

type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, serviceId int, date time.Time) ([]int, error)
	BookSlot(ctx context.Context, serviceId int, clientId uuid.UUID, date time.Time, startMinute int) (booking.Appointment, error)
}

type AvailabilityServiceImpl struct {
	catalog  ServiceResolver
	schedule ScheduleReader
	ledger   Ledger
	clients  ClientDirectory
	bus      *event_bus.EventBus
	clock    utils.Clock
	cfg      config.Booking
}

func NewAvailabilityService(
	catalogService ServiceResolver,
	scheduleService ScheduleReader,
	ledger Ledger,
	clients ClientDirectory,
	bus *event_bus.EventBus,
	clock utils.Clock,
	cfg config.Booking,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		catalog:  catalogService,
		schedule: scheduleService,
		ledger:   ledger,
		clients:  clients,
		bus:      bus,
		clock:    clock,
		cfg:      cfg,
	}
}

// GetAvailableSlots answers "what start times are free" for a service on a
// calendar day. Stateless: every call reads the stores fresh, so two calls
// without intervening bookings return identical results.
func (s *AvailabilityServiceImpl) GetAvailableSlots(ctx context.Context, serviceId int, date time.Time) ([]int, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current business: %w", err)
	}

	service, err := s.catalog.Get(ctx, serviceId)
	if err != nil {
		return nil, err
	}
	if service.Archived {
		return nil, catalog.ErrServiceNotFound
	}

	weeklySchedule, err := s.schedule.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read working hours: %w", err)
	}
	window := weeklySchedule[date.Weekday()]
	if !window.Open {
		return []int{}, nil
	}

	appointments, err := s.ledger.ListForDate(ctx, businessId, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	booked := make([]booking.Interval, 0, len(appointments))
	for _, a := range appointments {
		booked = append(booked, booking.Interval{Start: a.StartMinute, End: a.EndMinute()})
	}

	slots := Slots(window, service.DurationMinutes, booked, Options{
		Granularity: s.cfg.GranularityMinutes,
		Buffer:      s.cfg.BufferMinutes,
		NotBefore:   s.notBefore(date),
	})
	if slots == nil {
		slots = []int{}
	}
	return slots, nil
}

// BookSlot books a start time for a client. The slot list the caller saw may
// be stale, so the flow is defense in depth: re-generate slots first, then let
// the ledger's transactional commit be the final authority on conflicts.
func (s *AvailabilityServiceImpl) BookSlot(ctx context.Context, serviceId int, clientId uuid.UUID, date time.Time, startMinute int) (booking.Appointment, error) {
	businessId, err := business.CurrentId(ctx)
	if err != nil {
		return booking.Appointment{}, fmt.Errorf("failed to get current business: %w", err)
	}

	service, err := s.catalog.Get(ctx, serviceId)
	if err != nil {
		return booking.Appointment{}, err
	}
	if service.Archived {
		return booking.Appointment{}, catalog.ErrServiceNotFound
	}

	slots, err := s.GetAvailableSlots(ctx, serviceId, date)
	if err != nil {
		return booking.Appointment{}, err
	}
	if !containsSlot(slots, startMinute) {
		return booking.Appointment{}, ErrSlotNoLongerAvailable
	}

	// Placeholder policy: an unknown client does not block the booking. The
	// ledger keeps the weak reference and the CRM resolves it later.
	known, err := s.clients.Exists(ctx, businessId, clientId)
	if err != nil {
		log.Warnf("could not verify client %s: %v", clientId, err)
	} else if !known {
		log.Warnf("booking for unknown client %s on business %d, proceeding with placeholder reference", clientId, businessId)
	}

	appointment, err := s.ledger.Commit(ctx, booking.Appointment{
		BusinessID:      businessId,
		ServiceID:       serviceId,
		ClientID:        clientId,
		Date:            date,
		StartMinute:     startMinute,
		DurationMinutes: service.DurationMinutes,
	})
	if err != nil {
		// A true race: someone else committed between the freshness check and
		// the ledger transaction. Propagate verbatim; the caller re-queries.
		return booking.Appointment{}, err
	}

	s.publishBooked(ctx, appointment, service.Name)
	return appointment, nil
}

// publishBooked notifies the CRM timeline and dashboard. Fire-and-forget: a
// failure here is logged and never rolls back the booking.
func (s *AvailabilityServiceImpl) publishBooked(ctx context.Context, appointment booking.Appointment, serviceName string) {
	event := event_bus.NewEvent(ctx, event_bus.EventAppointmentBooked, event_bus.AppointmentEvent{
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
		log.Errorf("failed to publish booking event for appointment %s: %v", appointment.ID, err)
	}
}

// notBefore returns the earliest bookable minute of day when date is today,
// zero otherwise. Past start times must never be offered.
func (s *AvailabilityServiceImpl) notBefore(date time.Time) int {
	now := s.clock.Now().UTC()
	if date.Year() != now.Year() || date.YearDay() != now.YearDay() {
		return 0
	}
	return now.Hour()*60 + now.Minute() + s.cfg.MinLeadMinutes
}

func containsSlot(slots []int, startMinute int) bool {
	for _, slot := range slots {
		if slot == startMinute {
			return true
		}
	}
	return false
}
