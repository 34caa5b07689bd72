package schedule

import (
	"time"

	"github.com/iliyamo/livehouse/internal/model"
)

// DayClass is the color category of an event's weekday label.
type DayClass string

const (
	DayAlert     DayClass = "alert"     // Sundays and holidays
	DaySecondary DayClass = "secondary" // Saturdays
	DayNeutral   DayClass = "neutral"
)

// HolidayChecker reports whether a calendar date is a designated holiday.
// Only the year, month and day of t are significant.
type HolidayChecker interface {
	IsHoliday(t time.Time) bool
}

// ParseDate parses an events.date value as a calendar day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout, s, loc)
}

// Classify returns the class of a calendar day.  A nil checker treats no
// day as a holiday.
func Classify(day time.Time, holidays HolidayChecker) DayClass {
	if holidays != nil && holidays.IsHoliday(day) {
		return DayAlert
	}
	switch day.Weekday() {
	case time.Sunday:
		return DayAlert
	case time.Saturday:
		return DaySecondary
	}
	return DayNeutral
}

// ClassifyDate is Classify for an ISO date string.  Unparseable dates are
// neutral.
func ClassifyDate(date string, holidays HolidayChecker) (DayClass, error) {
	day, err := ParseDate(date, time.UTC)
	if err != nil {
		return DayNeutral, err
	}
	return Classify(day, holidays), nil
}
