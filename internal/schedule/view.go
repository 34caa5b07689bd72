package schedule

import (
	"time"

	"github.com/iliyamo/livehouse/internal/model"
)

// Entry is an event together with the values derived for display.
type Entry struct {
	model.Event
	EffectiveDoorPrice string   `json:"effectiveDoorPrice"`
	DayClass           DayClass `json:"dayClass"`
	Weekday            string   `json:"weekday"`
	IsToday            bool     `json:"isToday"`
	IsPast             bool     `json:"isPast"`
}

// Decorate derives the display values for each event relative to today,
// which should already be in the venue's time zone.
func Decorate(events []model.Event, holidays HolidayChecker, today time.Time) []Entry {
	todayStr := today.Format(model.DateLayout)
	out := make([]Entry, 0, len(events))
	for _, e := range events {
		entry := Entry{
			Event:              e,
			EffectiveDoorPrice: EffectiveDoorPrice(e),
			DayClass:           DayNeutral,
			IsToday:            e.Date == todayStr,
			IsPast:             e.Date < todayStr,
		}
		if day, err := ParseDate(e.Date, time.UTC); err == nil {
			entry.DayClass = Classify(day, holidays)
			entry.Weekday = day.Format("Mon")
		}
		out = append(out, entry)
	}
	return out
}
