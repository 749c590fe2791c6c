package attendance

import (
	attendanceerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/attendance/errors"

	"github.com/shopspring/decimal"
)

// lateAfterMinute is 09:15. A check-in strictly after it is late.
const lateAfterMinute = 9*60 + 15

const minutesPerDay = 24 * 60

// CalculateHoursBetween returns the hours from start to end rounded to two
// decimals. Seconds are ignored. An end before start rolls over midnight.
func CalculateHoursBetween(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return hoursBetween(s, e)
}

func hoursBetween(start, end ClockTime) (float64, error) {
	minutes := end.MinuteOfDay() - start.MinuteOfDay()
	if minutes < 0 {
		minutes += minutesPerDay
	}
	h, _ := decimal.NewFromInt(int64(minutes)).
		Div(decimal.NewFromInt(60)).
		Round(2).
		Float64()
	if h <= 0 || h > 24 {
		return 0, attendanceerrors.ErrInvalidHours
	}
	return h, nil
}

func isLateClock(c ClockTime) bool {
	return c.MinuteOfDay() > lateAfterMinute
}
