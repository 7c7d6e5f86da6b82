package availability

import (
	"testing"

	"github.com/orario/orario/pkg/booking"
	"github.com/orario/orario/pkg/schedule"
	"github.com/stretchr/testify/assert"
)

func TestSlots(t *testing.T) {
	nineToSix := schedule.DayWindow{Open: true, OpenMinute: 9 * 60, CloseMinute: 18 * 60}

	t.Run("empty day offers every granularity step", func(t *testing.T) {
		slots := Slots(nineToSix, 30, nil, Options{Granularity: 30})

		assert.Equal(t, 9*60, slots[0])
		assert.Equal(t, 17*60+30, slots[len(slots)-1])
		assert.Len(t, slots, 18)
	})

	t.Run("booked interval removes overlapping candidates only", func(t *testing.T) {
		booked := []booking.Interval{{Start: 10 * 60, End: 10*60 + 30}}

		slots := Slots(nineToSix, 30, booked, Options{Granularity: 30})

		assert.NotContains(t, slots, 10*60)
		assert.Contains(t, slots, 9*60+30, "slot ending exactly at the booking start stays")
		assert.Contains(t, slots, 10*60+30, "slot starting exactly at the booking end stays")
	})

	t.Run("duration longer than any gap yields no slots", func(t *testing.T) {
		window := schedule.DayWindow{Open: true, OpenMinute: 9 * 60, CloseMinute: 9*60 + 30}

		assert.Empty(t, Slots(window, 45, nil, Options{Granularity: 15}))
	})

	t.Run("last slot must fit entirely before close", func(t *testing.T) {
		slots := Slots(nineToSix, 45, nil, Options{Granularity: 30})

		assert.Equal(t, 17*60, slots[len(slots)-1])
	})

	t.Run("buffer keeps a gap around bookings", func(t *testing.T) {
		booked := []booking.Interval{{Start: 12 * 60, End: 13 * 60}}

		slots := Slots(nineToSix, 30, booked, Options{Granularity: 30, Buffer: 15})

		assert.NotContains(t, slots, 11*60+30, "would end inside the buffer")
		assert.Contains(t, slots, 11*60)
		assert.NotContains(t, slots, 13*60, "would start inside the buffer")
		assert.Contains(t, slots, 13*60+30)
	})

	t.Run("not-before cuts off earlier start times", func(t *testing.T) {
		slots := Slots(nineToSix, 30, nil, Options{Granularity: 30, NotBefore: 14*60 + 10})

		assert.Equal(t, 14*60+30, slots[0])
	})

	t.Run("closed day yields nothing", func(t *testing.T) {
		assert.Nil(t, Slots(schedule.DayWindow{}, 30, nil, Options{Granularity: 30}))
	})

	t.Run("adjacent bookings leave no room between them", func(t *testing.T) {
		booked := []booking.Interval{
			{Start: 10 * 60, End: 11 * 60},
			{Start: 11 * 60, End: 12 * 60},
		}

		slots := Slots(nineToSix, 60, booked, Options{Granularity: 60})

		assert.Equal(t, []int{9 * 60, 12 * 60, 13 * 60, 14 * 60, 15 * 60, 16 * 60, 17 * 60}, slots)
	})
}
