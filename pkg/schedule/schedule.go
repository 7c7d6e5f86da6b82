package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/orario/orario/internal/utils"
)

var ErrInvalidSchedule = errors.New("invalid schedule")

// DayWindow is a single weekday's opening window in minutes since midnight.
// A closed day is the zero value.
type DayWindow struct {
	Open        bool
	OpenMinute  int
	CloseMinute int
}

// WeeklySchedule maps time.Weekday (Sunday = 0) to that day's window. It is
// always replaced wholesale; a day is never patched in isolation.
type WeeklySchedule [7]DayWindow

// Validate enforces the hard invariants: open days must have start < end and
// both within the day.
func (s WeeklySchedule) Validate() error {
	for weekday, day := range s {
		if !day.Open {
			continue
		}
		if day.OpenMinute < 0 || day.CloseMinute > utils.MinutesPerDay {
			return fmt.Errorf("%w: %s window outside of day bounds", ErrInvalidSchedule, time.Weekday(weekday))
		}
		if day.OpenMinute >= day.CloseMinute {
			return fmt.Errorf("%w: %s opens at %s but closes at %s", ErrInvalidSchedule, time.Weekday(weekday),
				utils.MinutesToHHMM(day.OpenMinute), utils.MinutesToHHMM(day.CloseMinute))
		}
	}
	return nil
}

// Default returns the schedule seeded at business creation: Monday to Friday,
// 09:00 to 17:00.
func Default() WeeklySchedule {
	var s WeeklySchedule
	for weekday := time.Monday; weekday <= time.Friday; weekday++ {
		s[weekday] = DayWindow{Open: true, OpenMinute: 9 * 60, CloseMinute: 17 * 60}
	}
	return s
}
