package util

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMonth(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-08", "2025-08", true},
		{"2025年8月", "2025-08", true},
		{"2025年12月", "2025-12", true},
		{"２０２５年８月", "2025-08", true}, // full-width digits
		{"2025/08", "2025/08", false},
		{"August 2025", "August 2025", false},
		{"2025年13月", "2025年13月", false},
	}
	for _, c := range cases {
		got, ok := NormalizeMonth(c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
	}
}

func TestNormalizeMonthIdempotent(t *testing.T) {
	once, ok := NormalizeMonth("2024年1月")
	require.True(t, ok)
	twice, ok := NormalizeMonth(once)
	require.True(t, ok)
	assert.Equal(t, once, twice)
}

func TestMonthRollover(t *testing.T) {
	next, err := NextMonth("2024-12")
	require.NoError(t, err)
	assert.Equal(t, "2025-01", next)

	prev, err := PreviousMonth("2025-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-12", prev)
}

func TestPreviousWeekYearBoundary(t *testing.T) {
	// 2024 is a 52-week ISO year; week 1 of 2025 starts Monday 2024-12-30.
	prev, err := PreviousWeek("2025-W01")
	require.NoError(t, err)
	assert.Equal(t, "2024-W52", prev)

	// 2020 had 53 ISO weeks.
	prev, err = PreviousWeek("2021-W01")
	require.NoError(t, err)
	assert.Equal(t, "2020-W53", prev)
}

func TestNextWeekIsInverseOfPreviousWeek(t *testing.T) {
	// Walk every week of a sample ISO year plus the boundary weeks around it.
	for week := 1; week <= 52; week++ {
		w := fmt.Sprintf("2025-W%02d", week)
		next, err := NextWeek(w)
		require.NoError(t, err)
		back, err := PreviousWeek(next)
		require.NoError(t, err)
		assert.Equal(t, w, back)
	}
}

func TestWeekOfMatchesMondayOfWeek(t *testing.T) {
	for week := 1; week <= 52; week++ {
		monday := MondayOfWeek(2025, week)
		assert.Equal(t, time.Monday, monday.Weekday())
		assert.Equal(t, fmt.Sprintf("2025-W%02d", week), WeekOf(monday))
	}
}

func TestParseWeekRejectsGarbage(t *testing.T) {
	for _, in := range []string{"2025-08", "2025W01", "2025-W00", "2025-W99", "week one"} {
		_, _, err := ParseWeek(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestFormatLabels(t *testing.T) {
	assert.Equal(t, "2025年8月", FormatMonthJP("2025-08"))
	assert.Equal(t, "2025年 第8週", FormatWeekJP("2025-W08"))
	assert.Equal(t, "not-a-month", FormatMonthJP("not-a-month"))
}
