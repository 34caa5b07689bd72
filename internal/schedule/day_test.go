package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/livehouse/internal/model"
)

type fixedHolidays map[string]bool

func (f fixedHolidays) IsHoliday(t time.Time) bool { return f[t.Format(model.DateLayout)] }

func TestClassifyDate(t *testing.T) {
	hol := fixedHolidays{"2026-10-12": true, "2026-11-01": true}
	cases := []struct {
		date string
		want DayClass
	}{
		{"2026-10-12", DayAlert},     // Monday holiday
		{"2026-10-11", DayAlert},     // Sunday
		{"2026-10-17", DaySecondary}, // Saturday
		{"2026-10-14", DayNeutral},   // Wednesday
		{"2026-11-01", DayAlert},     // Sunday and holiday
	}
	for _, tc := range cases {
		got, err := ClassifyDate(tc.date, hol)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.date)
	}
}

func TestClassifyDate_NilCheckerAndBadInput(t *testing.T) {
	got, err := ClassifyDate("2026-10-12", nil)
	assert.NoError(t, err)
	assert.Equal(t, DayNeutral, got)

	got, err = ClassifyDate("not-a-date", nil)
	assert.Error(t, err)
	assert.Equal(t, DayNeutral, got)
}

func TestTimeOptions(t *testing.T) {
	opts := TimeOptions()

	assert.Len(t, opts, 96)
	assert.Equal(t, "00:00", opts[0])
	assert.Equal(t, "18:00", opts[72])
	assert.Equal(t, "23:45", opts[95])
	for _, o := range opts {
		assert.True(t, model.IsQuarterHour(o), o)
	}
}

func TestDecorate(t *testing.T) {
	today := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: 1, Date: "2026-10-10", Title: "past", TicketPrice: "¥2,000"},
		{ID: 2, Date: "2026-10-14", Title: "today", TicketPrice: "¥2,500", DoorPrice: "¥3,000"},
		{ID: 3, Date: "2026-10-18", Title: "sunday", TicketPrice: "tbd"},
		{ID: 4, Date: "garbage", Title: "broken"},
	}

	got := Decorate(events, nil, today)

	require.Len(t, got, 4)
	assert.True(t, got[0].IsPast)
	assert.Equal(t, "¥2,500", got[0].EffectiveDoorPrice)
	assert.Equal(t, DaySecondary, got[0].DayClass)
	assert.True(t, got[1].IsToday)
	assert.False(t, got[1].IsPast)
	assert.Equal(t, "Wed", got[1].Weekday)
	assert.Equal(t, "¥3,000", got[1].EffectiveDoorPrice)
	assert.Equal(t, DayAlert, got[2].DayClass)
	assert.Equal(t, NoPrice, got[2].EffectiveDoorPrice)
	assert.Equal(t, DayNeutral, got[3].DayClass)
	assert.Empty(t, got[3].Weekday)
}
