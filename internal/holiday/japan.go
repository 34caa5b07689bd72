// Package holiday designates the public holidays used to color the
// schedule.  Japan computes the national holidays from the statutory rules;
// Calendar combines them with an optional ICS feed.
package holiday

import (
	"sync"
	"time"
)

type day struct {
	month time.Month
	day   int
}

// Japan implements the national holiday rules from 2000 onwards: fixed
// dates, Happy Monday days, the equinox approximation, substitute holidays
// and citizens' holidays.  The zero value is ready to use.
type Japan struct {
	years sync.Map // int -> map[day]string
}

// IsHoliday reports whether the calendar date of t is a national holiday.
func (j *Japan) IsHoliday(t time.Time) bool {
	_, ok := j.Name(t)
	return ok
}

// Name returns the holiday name for the calendar date of t.
func (j *Japan) Name(t time.Time) (string, bool) {
	y, m, d := t.Date()
	name, ok := j.year(y)[day{m, d}]
	return name, ok
}

func (j *Japan) year(y int) map[day]string {
	if v, ok := j.years.Load(y); ok {
		return v.(map[day]string)
	}
	v, _ := j.years.LoadOrStore(y, computeYear(y))
	return v.(map[day]string)
}

func computeYear(y int) map[day]string {
	h := namedHolidays(y)

	// A holiday falling on Sunday moves to the next day that is not
	// already a holiday.
	for _, d := range sortedDays(y, h) {
		if date(y, d).Weekday() != time.Sunday {
			continue
		}
		next := date(y, d).AddDate(0, 0, 1)
		for {
			if _, taken := h[day{next.Month(), next.Day()}]; !taken {
				break
			}
			next = next.AddDate(0, 0, 1)
		}
		if next.Year() == y {
			h[day{next.Month(), next.Day()}] = "振替休日"
		}
	}

	// A weekday sandwiched between two holidays is itself a holiday.
	for _, d := range sortedDays(y, h) {
		gap := date(y, d).AddDate(0, 0, 1)
		after := gap.AddDate(0, 0, 1)
		_, gapTaken := h[day{gap.Month(), gap.Day()}]
		_, afterHoliday := h[day{after.Month(), after.Day()}]
		if !gapTaken && afterHoliday && gap.Year() == y && gap.Weekday() != time.Sunday {
			h[day{gap.Month(), gap.Day()}] = "国民の休日"
		}
	}
	return h
}

func namedHolidays(y int) map[day]string {
	h := map[day]string{
		{time.January, 1}:   "元日",
		{time.February, 11}: "建国記念の日",
		{time.April, 29}:    "昭和の日",
		{time.May, 3}:       "憲法記念日",
		{time.May, 4}:       "みどりの日",
		{time.May, 5}:       "こどもの日",
		{time.November, 3}:  "文化の日",
		{time.November, 23}: "勤労感謝の日",
	}
	h[day{time.January, nthMonday(y, time.January, 2)}] = "成人の日"
	h[day{time.March, vernalEquinox(y)}] = "春分の日"
	h[day{time.September, autumnalEquinox(y)}] = "秋分の日"
	h[day{time.September, nthMonday(y, time.September, 3)}] = "敬老の日"

	switch {
	case y >= 2020:
		h[day{time.February, 23}] = "天皇誕生日"
	case y <= 2018:
		h[day{time.December, 23}] = "天皇誕生日"
	}

	// Marine Day, Mountain Day and Sports Day moved for the Tokyo Olympics.
	switch y {
	case 2020:
		h[day{time.July, 23}] = "海の日"
		h[day{time.July, 24}] = "スポーツの日"
		h[day{time.August, 10}] = "山の日"
	case 2021:
		h[day{time.July, 22}] = "海の日"
		h[day{time.July, 23}] = "スポーツの日"
		h[day{time.August, 8}] = "山の日"
	default:
		h[day{time.July, nthMonday(y, time.July, 3)}] = "海の日"
		h[day{time.October, nthMonday(y, time.October, 2)}] = "スポーツの日"
		if y >= 2016 {
			h[day{time.August, 11}] = "山の日"
		}
	}

	if y == 2019 {
		h[day{time.May, 1}] = "即位の日"
		h[day{time.October, 22}] = "即位礼正殿の儀"
	}
	return h
}

// sortedDays returns the keys of h in calendar order.
func sortedDays(y int, h map[day]string) []day {
	out := make([]day, 0, len(h))
	for d := date(y, day{time.January, 1}); d.Year() == y; d = d.AddDate(0, 0, 1) {
		k := day{d.Month(), d.Day()}
		if _, ok := h[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

func date(y int, d day) time.Time {
	return time.Date(y, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func nthMonday(y int, m time.Month, n int) int {
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(first.Weekday()) + 7) % 7
	return 1 + offset + (n-1)*7
}

// The equinox days use the published approximation valid for 1980-2099.
func vernalEquinox(y int) int {
	return int(20.8431+0.242194*float64(y-1980)) - (y-1980)/4
}

func autumnalEquinox(y int) int {
	return int(23.2488+0.242194*float64(y-1980)) - (y-1980)/4
}
