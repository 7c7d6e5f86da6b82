package crm

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orario/orario/internal/event_bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjector(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	newEvent := func(ctx context.Context, eventType event_bus.EventType, appointmentId, clientId uuid.UUID, status string) event_bus.Event {
		return event_bus.NewEvent(ctx, eventType, event_bus.AppointmentEvent{
			AppointmentID:   appointmentId,
			BusinessID:      1,
			ClientID:        clientId,
			ServiceName:     "Haircut",
			Date:            date,
			StartMinute:     600,
			DurationMinutes: 30,
			Status:          status,
		})
	}

	t.Run("booking events become timeline entries", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		timeline := NewTimelineRepositoryStub()
		projector := NewProjector(timeline, bus)
		defer projector.Close()

		ctx := context.Background()
		appointmentId := uuid.New()
		clientId := uuid.New()

		require.NoError(t, bus.Publish(newEvent(ctx, event_bus.EventAppointmentBooked, appointmentId, clientId, "pending")))
		require.NoError(t, bus.Publish(newEvent(ctx, event_bus.EventAppointmentConfirmed, appointmentId, clientId, "confirmed")))

		entries, err := timeline.ListForClient(ctx, 1, clientId)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "Haircut", entries[0].ServiceName)
		assert.Equal(t, appointmentId, entries[0].AppointmentID)
		assert.Equal(t, 600, entries[0].StartMinute)
	})

	t.Run("redelivered event is projected once", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		timeline := NewTimelineRepositoryStub()
		projector := NewProjector(timeline, bus)
		defer projector.Close()

		ctx := context.Background()
		appointmentId := uuid.New()
		clientId := uuid.New()

		event := newEvent(ctx, event_bus.EventAppointmentBooked, appointmentId, clientId, "pending")
		require.NoError(t, bus.Publish(event))
		require.NoError(t, bus.Publish(event))

		entries, err := timeline.ListForClient(ctx, 1, clientId)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("closed projector stops consuming", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		timeline := NewTimelineRepositoryStub()
		projector := NewProjector(timeline, bus)
		projector.Close()

		ctx := context.Background()
		clientId := uuid.New()

		require.NoError(t, bus.Publish(newEvent(ctx, event_bus.EventAppointmentBooked, uuid.New(), clientId, "pending")))

		entries, err := timeline.ListForClient(ctx, 1, clientId)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
