package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-biorhythm/internal/config"
)

const secondsPerDay = 24 * 60 * 60

// ErrInvalidDate reports reference-date text that does not match YYYY-MM-DD.
var ErrInvalidDate = errors.New(config.ErrInvalidDate)

// CivilDate keeps only the calendar date of t, expressed at UTC midnight.
// The local calendar date is used: it is the user's birthday in Tokyo on June
// 15th even if it is still June 14th in UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseReferenceDate parses the exact YYYY-MM-DD pattern.
// Anything else, including surrounding spaces, is rejected.
func ParseReferenceDate(text string) (time.Time, error) {
	t, err := time.Parse(config.DateFormatInput, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	return t, nil
}

// FormatReferenceDate is the inverse of ParseReferenceDate.
func FormatReferenceDate(t time.Time) string {
	return t.Format(config.DateFormatInput)
}

// AddDays moves a civil date by n days.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// DaysBetween returns the whole number of days from -> to.
// Unix seconds are used instead of time.Duration, which overflows past ~292 years.
func DaysBetween(from, to time.Time) int {
	diff := CivilDate(to).Unix() - CivilDate(from).Unix()
	return int(diff / secondsPerDay)
}

// ElapsedDays is the signed day distance between date and the reference date,
// as a real number for the trigonometric model.
func ElapsedDays(date, reference time.Time) float64 {
	return float64(DaysBetween(reference, date))
}

// TargetDate resolves a day offset against today.
func TargetDate(today time.Time, offset int) time.Time {
	return AddDays(CivilDate(today), offset)
}
