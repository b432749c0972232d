package safetyhub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/waichung/safetyhub"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekOf(t *testing.T) {
	// 2023-10-23 is a Monday.
	monday := date(2023, time.October, 23)
	saturday := date(2023, time.October, 28)

	t.Run("MondayStartsItsOwnWeek", func(t *testing.T) {
		w := safetyhub.WeekOf(monday)
		assert.True(t, w.Start.Equal(monday))
		assert.True(t, w.End.Equal(saturday))
	})

	t.Run("SaturdayBelongsToSameWeek", func(t *testing.T) {
		w := safetyhub.WeekOf(saturday)
		assert.True(t, w.Start.Equal(monday))
	})

	t.Run("SundayResolvesToPreviousMonday", func(t *testing.T) {
		// 2023-10-29 is the Sunday following the week that starts
		// Monday the 23rd.
		w := safetyhub.WeekOf(date(2023, time.October, 29))
		assert.True(t, w.Start.Equal(monday))
		assert.True(t, w.End.Equal(saturday))
	})

	t.Run("TimeOfDayIgnored", func(t *testing.T) {
		noon := time.Date(2023, time.October, 25, 12, 30, 0, 0, time.UTC)
		w := safetyhub.WeekOf(noon)
		assert.True(t, w.Start.Equal(monday))
	})

	t.Run("Idempotent", func(t *testing.T) {
		w := safetyhub.WeekOf(date(2023, time.October, 26))
		again := safetyhub.WeekOf(w.Start)
		assert.Equal(t, w.Key(), again.Key())
	})
}

func TestWeekContains(t *testing.T) {
	w := safetyhub.WeekOf(date(2023, time.October, 23))

	assert.True(t, w.Contains(date(2023, time.October, 23)), "Monday start is inside")
	assert.True(t, w.Contains(date(2023, time.October, 28)), "Saturday end is inside")
	assert.False(t, w.Contains(date(2023, time.October, 29)), "Sunday falls outside the window")
	assert.False(t, w.Contains(date(2023, time.October, 22)))
}

func TestWeekKey(t *testing.T) {
	w := safetyhub.WeekOf(date(2023, time.October, 26))
	assert.Equal(t, "2023-10-23", w.Key())

	// Same week key regardless of which day bucketed into it.
	assert.Equal(t, w.Key(), safetyhub.WeekOf(date(2023, time.October, 28)).Key())
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("HKT", 8*3600)
	stamped := time.Date(2023, time.October, 23, 23, 59, 59, 0, loc)

	got := safetyhub.DateOnly(stamped)
	assert.True(t, got.Equal(date(2023, time.October, 23)))
	assert.Equal(t, time.UTC, got.Location())
}

func TestPeriodLabel(t *testing.T) {
	// Day 23 -> ceil(23/7) = week 4 of the month.
	d := date(2023, time.October, 23)

	assert.Equal(t, "October 2023 - Week 4", safetyhub.PeriodLabel(d, safetyhub.LangEnglish))
	assert.Equal(t, "2023年10月 - 第4週", safetyhub.PeriodLabel(d, safetyhub.LangChinese))

	// First of the month is week 1.
	first := date(2023, time.October, 1)
	assert.Equal(t, "October 2023 - Week 1", safetyhub.PeriodLabel(first, safetyhub.LangEnglish))
}
