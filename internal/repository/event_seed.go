package repository

import (
	"context"
	"time"

	"github.com/iliyamo/livehouse/internal/model"
)

// demoEvents are inserted into an empty table.  Day is the offset from the
// seeding date.
var demoEvents = []struct {
	Day   int
	Input model.EventInput
}{
	{0, model.EventInput{
		Title:       "Neon Nights: Synthwave Special",
		Artists:     "The Midnight Runners, Cyber City",
		Description: "Featuring The Midnight Runners and Cyber City.",
		OpenTime:    "18:00",
		StartTime:   "19:00",
		TicketPrice: "¥2,500",
		DoorPrice:   "¥3,000",
	}},
	{1, model.EventInput{
		Title:       "Heavy Metal Thunder",
		Artists:     "Iron Fist, Skull Crusher",
		Description: "Loud noises and headbanging. Earplugs recommended.",
		OpenTime:    "17:30",
		StartTime:   "18:30",
		TicketPrice: "¥3,000",
		DoorPrice:   "¥3,500",
	}},
	{7, model.EventInput{
		Title:       "Jazz & Gin",
		Artists:     "Downtown Quartet",
		Description: "Smooth jazz evening with the Downtown Quartet.",
		OpenTime:    "19:00",
		StartTime:   "20:00",
		TicketPrice: "¥2,000",
		DoorPrice:   "¥2,500",
	}},
}

// SeedIfEmpty inserts the demo events dated relative to today when the table
// has no rows.  It reports how many events were inserted.
func (r *EventRepo) SeedIfEmpty(ctx context.Context, today time.Time) (int, error) {
	n, err := r.Count(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	for i, d := range demoEvents {
		in := d.Input
		in.Date = today.AddDate(0, 0, d.Day).Format(model.DateLayout)
		if _, err := r.Create(ctx, in); err != nil {
			return i, err
		}
	}
	return len(demoEvents), nil
}
