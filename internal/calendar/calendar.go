// Package calendar holds the week arithmetic shared by meal plans and the
// shopping list. Weeks start on Monday at 00:00 UTC.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
)

const weekStartLayout = "2006-01-02"

var weekDays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// ErrInvalidWeeks is returned by ParseWeeks for an unknown selector.
var ErrInvalidWeeks = errors.New("invalid weeks parameter")

// WeekDays returns the seven day names starting from Monday.
func WeekDays() []string {
	out := make([]string, len(weekDays))
	copy(out, weekDays)
	return out
}

// DayIndex returns the position of day within the week, or -1.
func DayIndex(day string) int {
	for i, d := range weekDays {
		if d == day {
			return i
		}
	}
	return -1
}

// IsWeekDay reports whether day is one of the seven day names.
func IsWeekDay(day string) bool {
	return DayIndex(day) >= 0
}

// TodayIndex is the Monday-based index of now's weekday in UTC.
func TodayIndex(now time.Time) int {
	return (int(now.UTC().Weekday()) + 6) % 7
}

// WeekStart returns Monday 00:00 UTC of the week containing now, shifted by offset weeks.
func WeekStart(now time.Time, offset int) time.Time {
	t := now.UTC()
	monday := time.Date(t.Year(), t.Month(), t.Day()-TodayIndex(t), 0, 0, 0, 0, time.UTC)
	return monday.AddDate(0, 0, 7*offset)
}

// FormatWeekStart renders a week start as YYYY-MM-DD.
func FormatWeekStart(t time.Time) string {
	return t.UTC().Format(weekStartLayout)
}

// ParseWeekStart accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// UTC date it names.
func ParseWeekStart(s string) (time.Time, error) {
	if t, err := time.Parse(weekStartLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week start %q: %w", s, err)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// WeekLabel renders a week as "Jan 27 – Feb 2".
func WeekLabel(weekStart time.Time) string {
	start := weekStart.UTC()
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2"))
}

// Weeks selects which plans feed the shopping list.
type Weeks string

const (
	ThisWeek  Weeks = "this"
	NextWeek  Weeks = "next"
	BothWeeks Weeks = "both"
)

// ParseWeeks validates a selector. An empty string means this week.
func ParseWeeks(s string) (Weeks, error) {
	switch Weeks(s) {
	case "":
		return ThisWeek, nil
	case ThisWeek, NextWeek, BothWeeks:
		return Weeks(s), nil
	default:
		return "", ErrInvalidWeeks
	}
}

// Starts returns the week starts the selector covers, relative to now.
func (w Weeks) Starts(now time.Time) []time.Time {
	switch w {
	case NextWeek:
		return []time.Time{WeekStart(now, 1)}
	case BothWeeks:
		return []time.Time{WeekStart(now, 0), WeekStart(now, 1)}
	default:
		return []time.Time{WeekStart(now, 0)}
	}
}

// FilterFromToday drops the days of the current week that are already past.
// Plans for any other week are returned unchanged. The input is not modified.
func FilterFromToday(plan shopping.WeeklyMealPlan, now time.Time) shopping.WeeklyMealPlan {
	start, err := ParseWeekStart(plan.WeekStart)
	if err != nil || !start.Equal(WeekStart(now, 0)) {
		return plan
	}

	today := TodayIndex(now)
	days := make([]shopping.DayPlan, 0, len(plan.Days))
	for _, d := range plan.Days {
		if DayIndex(d.Day) >= today {
			days = append(days, d)
		}
	}
	return shopping.WeeklyMealPlan{WeekStart: plan.WeekStart, Days: days}
}
