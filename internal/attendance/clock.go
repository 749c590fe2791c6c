package attendance

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	attendanceerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/attendance/errors"
)

// ClockTime is a time of day stored as seconds since midnight. It maps to a
// Postgres TIME column and is exchanged as "HH:MM" in JSON.
type ClockTime int

const secondsPerDay = 24 * 60 * 60

// ParseClock accepts "HH:MM" or "HH:MM:SS".
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, attendanceerrors.ErrInvalidTimeFormat
	}
	limits := []int{23, 59, 59}
	vals := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return 0, attendanceerrors.ErrInvalidTimeFormat
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, attendanceerrors.ErrInvalidTimeFormat
		}
		vals[i] = n
	}
	return ClockTime(vals[0]*3600 + vals[1]*60 + vals[2]), nil
}

func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// MinuteOfDay drops the seconds.
func (c ClockTime) MinuteOfDay() int {
	return int(c) / 60
}

func (c ClockTime) HHMM() string {
	return fmt.Sprintf("%02d:%02d", int(c)/3600, int(c)%3600/60)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(c)/3600, int(c)%3600/60, int(c)%60)
}

func (c ClockTime) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *ClockTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c = ClockOf(v)
		return nil
	case string:
		return c.scanText(v)
	case []byte:
		return c.scanText(string(v))
	default:
		return fmt.Errorf("clock time: unsupported scan type %T", src)
	}
}

func (c *ClockTime) scanText(s string) error {
	// TIME values may carry fractional seconds.
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	v, err := ParseClock(s)
	if err != nil {
		return fmt.Errorf("clock time: %q: %w", s, err)
	}
	*c = v
	return nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.HHMM())
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Date is a calendar day without a zone, formatted YYYY-MM-DD.
type Date string

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", attendanceerrors.ErrInvalidDate
	}
	return Date(t.Format(dateLayout)), nil
}

// DateOf takes the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("date: unsupported scan type %T", src)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) < len(dateLayout) {
		return fmt.Errorf("date: %q too short", s)
	}
	v, err := ParseDate(s[:len(dateLayout)])
	if err != nil {
		return fmt.Errorf("date: %q: %w", s, err)
	}
	*d = v
	return nil
}
