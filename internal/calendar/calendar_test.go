package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
)

// Wednesday, January 29 2025.
var wednesday = time.Date(2025, time.January, 29, 15, 30, 0, 0, time.UTC)

func TestWeekStart(t *testing.T) {
	assert.Equal(t, time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC), WeekStart(wednesday, 0))
	assert.Equal(t, time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC), WeekStart(wednesday, 1))
	assert.Equal(t, time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC), WeekStart(wednesday, -1))

	sunday := time.Date(2025, time.February, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC), WeekStart(sunday, 0))

	monday := time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStart(monday, 0))
}

func TestWeekStartNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// Monday 05:00 in UTC+10 is still Sunday in UTC.
	local := time.Date(2025, time.February, 3, 5, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC), WeekStart(local, 0))
}

func TestDayIndex(t *testing.T) {
	assert.Equal(t, 0, DayIndex("Monday"))
	assert.Equal(t, 6, DayIndex("Sunday"))
	assert.Equal(t, -1, DayIndex("monday"))
	assert.True(t, IsWeekDay("Friday"))
	assert.False(t, IsWeekDay("Funday"))
	assert.Equal(t, 2, TodayIndex(wednesday))
	assert.Len(t, WeekDays(), 7)
}

func TestWeekDaysReturnsCopy(t *testing.T) {
	days := WeekDays()
	days[0] = "changed"
	assert.Equal(t, "Monday", WeekDays()[0])
}

func TestParseAndFormatWeekStart(t *testing.T) {
	ws, err := ParseWeekStart("2025-01-27")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-27", FormatWeekStart(ws))

	ws, err = ParseWeekStart("2025-01-27T00:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-27", FormatWeekStart(ws))

	_, err = ParseWeekStart("not-a-date")
	assert.Error(t, err)
}

func TestWeekLabel(t *testing.T) {
	assert.Equal(t, "Jan 27 – Feb 2", WeekLabel(time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC)))
}

func TestParseWeeks(t *testing.T) {
	w, err := ParseWeeks("")
	require.NoError(t, err)
	assert.Equal(t, ThisWeek, w)

	for _, s := range []string{"this", "next", "both"} {
		w, err := ParseWeeks(s)
		require.NoError(t, err)
		assert.Equal(t, Weeks(s), w)
	}

	_, err = ParseWeeks("last")
	assert.ErrorIs(t, err, ErrInvalidWeeks)
}

func TestWeeksStarts(t *testing.T) {
	this := WeekStart(wednesday, 0)
	next := WeekStart(wednesday, 1)

	assert.Equal(t, []time.Time{this}, ThisWeek.Starts(wednesday))
	assert.Equal(t, []time.Time{next}, NextWeek.Starts(wednesday))
	assert.Equal(t, []time.Time{this, next}, BothWeeks.Starts(wednesday))
}

func TestFilterFromToday(t *testing.T) {
	days := make([]shopping.DayPlan, 0, 7)
	for _, d := range WeekDays() {
		days = append(days, shopping.DayPlan{Day: d})
	}

	current := shopping.WeeklyMealPlan{WeekStart: "2025-01-27", Days: days}
	filtered := FilterFromToday(current, wednesday)
	require.Len(t, filtered.Days, 5)
	assert.Equal(t, "Wednesday", filtered.Days[0].Day)
	assert.Len(t, current.Days, 7)

	upcoming := shopping.WeeklyMealPlan{WeekStart: "2025-02-03", Days: days}
	assert.Equal(t, upcoming, FilterFromToday(upcoming, wednesday))
}
