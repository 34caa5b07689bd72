package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() EventInput {
	return EventInput{
		Date:        "2026-10-14",
		Title:       "Jazz & Gin",
		Description: "",
		OpenTime:    "19:00",
		StartTime:   "20:00",
		TicketPrice: "¥2,000",
	}
}

func TestEventInput_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(in *EventInput)
		wantErr string
	}{
		{"valid", func(in *EventInput) {}, ""},
		{"empty description allowed", func(in *EventInput) { in.Description = "" }, ""},
		{"times optional", func(in *EventInput) { in.OpenTime, in.StartTime = "", "" }, ""},
		{"missing date", func(in *EventInput) { in.Date = "" }, "date is required"},
		{"missing title", func(in *EventInput) { in.Title = "" }, "title is required"},
		{"bad date", func(in *EventInput) { in.Date = "2026/10/14" }, "date must be a date in YYYY-MM-DD format"},
		{"impossible date", func(in *EventInput) { in.Date = "2026-02-30" }, "date must be a date"},
		{"off-grid time", func(in *EventInput) { in.OpenTime = "18:10" }, "openTime must be HH:MM in 15-minute steps"},
		{"unpadded time", func(in *EventInput) { in.StartTime = "9:00" }, "startTime must be HH:MM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := in.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestEventInput_NormalizeBlankTitle(t *testing.T) {
	in := validInput()
	in.Title = "   "
	in.Normalize()

	assert.EqualError(t, in.Validate(), "title is required")
}

func TestIsQuarterHour(t *testing.T) {
	for _, ok := range []string{"00:00", "18:15", "19:30", "23:45"} {
		assert.True(t, IsQuarterHour(ok), ok)
	}
	for _, bad := range []string{"", "24:00", "18:10", "7:00", "18:00:00", "noon"} {
		assert.False(t, IsQuarterHour(bad), bad)
	}
}

func TestInputRoundTrip(t *testing.T) {
	e := Event{ID: 7, Date: "2026-10-20", Title: "Heavy Metal Thunder", DoorPrice: "¥3,500"}

	assert.Equal(t, e, InputFrom(e).ToEvent(7))
}
