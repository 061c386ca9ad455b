// Package progress computes workout streaks and monthly completion stats.
//
// All calendar reasoning happens on day keys: a timestamp is first converted
// to the calendar date it falls on in the user's timezone, and everything
// downstream compares whole days. Two instants on the same local date are the
// same day no matter how far apart their clock readings are.
package progress

import (
	"log/slog"
	"time"

	"github.com/vlourenco/treinoapp/internal/errors"
)

// ErrInvalidTimezone is returned when a timezone identifier is not a valid
// IANA name such as "America/Sao_Paulo".
var ErrInvalidTimezone = errors.NewSentinel("invalid timezone")

const secondsPerDay = 24 * 60 * 60

// DayKey identifies one calendar day as the number of days since 1970-01-01.
// The key is computed from the date in the user's timezone, so instants
// convert to different keys in different timezones but day arithmetic on the
// keys themselves is timezone-free.
type DayKey int

// StartOfDay returns the day key of the calendar date instant falls on in loc.
func StartOfDay(instant time.Time, loc *time.Location) DayKey {
	year, month, day := instant.In(loc).Date()
	return DayKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// Weekday returns the weekday of the day, compatible with time.Weekday
// (Sunday = 0).
func (k DayKey) Weekday() time.Weekday {
	// Day zero, 1970-01-01, was a Thursday.
	return time.Weekday(((int(k)+4)%7 + 7) % 7)
}

// Date returns the calendar date identified by the key.
func (k DayKey) Date() (int, time.Month, int) {
	return time.Unix(int64(k)*secondsPerDay, 0).UTC().Date()
}

func (k DayKey) String() string {
	return time.Unix(int64(k)*secondsPerDay, 0).UTC().Format(time.DateOnly)
}

// MarshalJSON renders the day as a "2006-01-02" date string.
func (k DayKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// loadLocation resolves an IANA timezone name, mapping failures to
// ErrInvalidTimezone.
func loadLocation(timezone string) (*time.Location, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidTimezone, "load location", slog.String("timezone", timezone))
	}
	return loc, nil
}
