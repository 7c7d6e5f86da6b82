package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orario/orario/internal/config"
	"github.com/orario/orario/internal/event_bus"
	"github.com/orario/orario/internal/utils"
	"github.com/orario/orario/pkg/booking"
	"github.com/orario/orario/pkg/business"
	"github.com/orario/orario/pkg/catalog"
	"github.com/orario/orario/pkg/crm"
	"github.com/orario/orario/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
var sunday = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

type fixture struct {
	ctx      context.Context
	service  *AvailabilityServiceImpl
	catalog  *catalog.CatalogServiceImpl
	ledger   *booking.RepositoryStub
	clients  *crm.ClientRepositoryStub
	bus      *event_bus.EventBus
	clock    *utils.MockClock
	haircut  catalog.Service
	clientId uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := business.WithBusiness(context.Background(), business.Business{ID: 1, Uid: "test-business", Timezone: "UTC"})
	clock := &utils.MockClock{FixedNow: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	ledger := booking.NewRepositoryStub()

	catalogService := catalog.NewCatalogService(catalog.NewRepositoryStub(), ledger, clock)
	haircut, err := catalogService.Add(ctx, catalog.Service{Name: "Haircut", DurationMinutes: 30, PriceCents: 3000})
	require.NoError(t, err)

	scheduleService := schedule.NewService(schedule.NewRepositoryStub(), catalogService)
	var week schedule.WeeklySchedule
	week[monday.Weekday()] = schedule.DayWindow{Open: true, OpenMinute: 9 * 60, CloseMinute: 18 * 60}
	_, err = scheduleService.Set(ctx, week)
	require.NoError(t, err)

	clients := crm.NewClientRepositoryStub()
	clientId, err := clients.Store(ctx, crm.Client{BusinessID: 1, DisplayName: "Ada"})
	require.NoError(t, err)

	bus := event_bus.NewEventBus()
	service := NewAvailabilityService(catalogService, scheduleService, ledger, clients, bus, clock, config.Booking{
		GranularityMinutes: 30,
	})

	return &fixture{
		ctx:      ctx,
		service:  service,
		catalog:  catalogService,
		ledger:   ledger,
		clients:  clients,
		bus:      bus,
		clock:    clock,
		haircut:  haircut,
		clientId: clientId,
	}
}

func TestGetAvailableSlots(t *testing.T) {
	t.Run("closed day returns an empty list", func(t *testing.T) {
		f := newFixture(t)

		slots, err := f.service.GetAvailableSlots(f.ctx, f.haircut.ID, sunday)

		require.NoError(t, err)
		assert.Equal(t, []int{}, slots)
	})

	t.Run("same inputs produce the same slots", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.service.GetAvailableSlots(f.ctx, f.haircut.ID, monday)
		require.NoError(t, err)
		second, err := f.service.GetAvailableSlots(f.ctx, f.haircut.ID, monday)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 9*60, first[0])
		assert.Equal(t, 17*60+30, first[len(first)-1])
	})

	t.Run("unknown service fails", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.GetAvailableSlots(f.ctx, 999, monday)

		assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
	})

	t.Run("past start times are excluded for today", func(t *testing.T) {
		f := newFixture(t)
		f.clock.SetNow(time.Date(2026, 3, 9, 12, 5, 0, 0, time.UTC))

		slots, err := f.service.GetAvailableSlots(f.ctx, f.haircut.ID, monday)

		require.NoError(t, err)
		assert.Equal(t, 12*60+30, slots[0])
	})
}

func TestBookSlot(t *testing.T) {
	t.Run("booked slot disappears from the next read", func(t *testing.T) {
		f := newFixture(t)

		appointment, err := f.service.BookSlot(f.ctx, f.haircut.ID, f.clientId, monday, 10*60)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, appointment.Status)
		assert.Equal(t, 30, appointment.DurationMinutes)

		slots, err := f.service.GetAvailableSlots(f.ctx, f.haircut.ID, monday)
		require.NoError(t, err)
		assert.NotContains(t, slots, 10*60)
		assert.Contains(t, slots, 10*60+30)
	})

	t.Run("stale slot is rejected before reaching the ledger", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.BookSlot(f.ctx, f.haircut.ID, f.clientId, monday, 10*60)
		require.NoError(t, err)

		_, err = f.service.BookSlot(f.ctx, f.haircut.ID, f.clientId, monday, 10*60)
		assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	})

	t.Run("start time off the grid is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.BookSlot(f.ctx, f.haircut.ID, f.clientId, monday, 10*60+5)

		assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	})

	t.Run("unknown client does not block the booking", func(t *testing.T) {
		f := newFixture(t)

		appointment, err := f.service.BookSlot(f.ctx, f.haircut.ID, uuid.New(), monday, 9*60)

		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, appointment.Status)
	})

	t.Run("publishes a booked event", func(t *testing.T) {
		f := newFixture(t)

		var got event_bus.AppointmentEvent
		event_bus.SubscribeTyped[event_bus.AppointmentEvent](f.bus, event_bus.EventAppointmentBooked,
			func(e event_bus.EventT[event_bus.AppointmentEvent]) error {
				got = e.Data
				return nil
			})

		appointment, err := f.service.BookSlot(f.ctx, f.haircut.ID, f.clientId, monday, 11*60)
		require.NoError(t, err)

		assert.Equal(t, appointment.ID, got.AppointmentID)
		assert.Equal(t, "Haircut", got.ServiceName)
		assert.Equal(t, string(booking.StatusPending), got.Status)
	})

	t.Run("concurrent requests for one slot produce a single appointment", func(t *testing.T) {
		f := newFixture(t)

		const attempts = 8
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.service.BookSlot(f.ctx, f.haircut.ID, f.clientId, monday, 14*60)
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
				continue
			}
			if !assert.True(t, errors.Is(err, ErrSlotNoLongerAvailable) || errors.Is(err, booking.ErrConflict), "unexpected error: %v", err) {
				t.FailNow()
			}
		}
		assert.Equal(t, 1, winners)

		appointments, err := f.ledger.ListForDate(f.ctx, 1, monday)
		require.NoError(t, err)
		assert.Len(t, appointments, 1)
	})
}
