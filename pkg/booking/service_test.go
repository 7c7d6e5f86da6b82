package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orario/orario/internal/event_bus"
	"github.com/orario/orario/pkg/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverStub struct{}

func (resolverStub) ServiceName(ctx context.Context, serviceId int) (string, error) {
	return "Haircut", nil
}

func newBookingFixture(t *testing.T) (context.Context, *RepositoryStub, *BookingServiceImpl, *event_bus.EventBus) {
	t.Helper()
	ctx := business.WithBusiness(context.Background(), business.Business{ID: 1, Uid: "test-business"})
	repo := NewRepositoryStub()
	bus := event_bus.NewEventBus()
	return ctx, repo, NewBookingService(repo, resolverStub{}, bus), bus
}

func commitAppointment(t *testing.T, ctx context.Context, repo *RepositoryStub) Appointment {
	t.Helper()
	appointment, err := repo.Commit(ctx, Appointment{
		BusinessID:      1,
		ServiceID:       1,
		ClientID:        uuid.New(),
		Date:            time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		StartMinute:     10 * 60,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	return appointment
}

func TestConfirm(t *testing.T) {
	t.Run("pending appointment becomes confirmed and is published", func(t *testing.T) {
		ctx, repo, service, bus := newBookingFixture(t)
		appointment := commitAppointment(t, ctx, repo)

		var published []event_bus.AppointmentEvent
		event_bus.SubscribeTyped[event_bus.AppointmentEvent](bus, event_bus.EventAppointmentConfirmed,
			func(e event_bus.EventT[event_bus.AppointmentEvent]) error {
				published = append(published, e.Data)
				return nil
			})

		confirmed, err := service.Confirm(ctx, appointment.ID)

		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, confirmed.Status)
		require.Len(t, published, 1)
		assert.Equal(t, appointment.ID, published[0].AppointmentID)
		assert.Equal(t, "Haircut", published[0].ServiceName)
	})

	t.Run("confirming twice fails", func(t *testing.T) {
		ctx, repo, service, _ := newBookingFixture(t)
		appointment := commitAppointment(t, ctx, repo)

		_, err := service.Confirm(ctx, appointment.ID)
		require.NoError(t, err)

		_, err = service.Confirm(ctx, appointment.ID)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("unknown appointment fails", func(t *testing.T) {
		ctx, _, service, _ := newBookingFixture(t)

		_, err := service.Confirm(ctx, uuid.New())

		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancelled appointment stays in the ledger", func(t *testing.T) {
		ctx, repo, service, _ := newBookingFixture(t)
		appointment := commitAppointment(t, ctx, repo)

		require.NoError(t, service.Cancel(ctx, appointment.ID))

		stored, err := service.Get(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, stored.Status)
	})

	t.Run("cancelling frees the slot", func(t *testing.T) {
		ctx, repo, service, _ := newBookingFixture(t)
		appointment := commitAppointment(t, ctx, repo)

		_, err := repo.Commit(ctx, appointment)
		assert.ErrorIs(t, err, ErrConflict)

		require.NoError(t, service.Cancel(ctx, appointment.ID))

		rebooked := commitAppointment(t, ctx, repo)
		assert.NotEqual(t, appointment.ID, rebooked.ID)
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		ctx, repo, service, bus := newBookingFixture(t)
		appointment := commitAppointment(t, ctx, repo)

		events := 0
		event_bus.SubscribeTyped[event_bus.AppointmentEvent](bus, event_bus.EventAppointmentCancelled,
			func(e event_bus.EventT[event_bus.AppointmentEvent]) error {
				events++
				return nil
			})

		require.NoError(t, service.Cancel(ctx, appointment.ID))
		require.NoError(t, service.Cancel(ctx, appointment.ID))

		assert.Equal(t, 1, events)
	})

	t.Run("confirmed appointment can be cancelled", func(t *testing.T) {
		ctx, repo, service, _ := newBookingFixture(t)
		appointment := commitAppointment(t, ctx, repo)

		_, err := service.Confirm(ctx, appointment.ID)
		require.NoError(t, err)

		require.NoError(t, service.Cancel(ctx, appointment.ID))

		stored, err := service.Get(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, stored.Status)
	})
}
