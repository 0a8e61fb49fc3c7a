package util

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/text/width"
)

// Periods come in two shapes: months as "YYYY-MM" and ISO calendar weeks
// (Monday start) as "YYYY-Www". All functions here are pure date arithmetic.

var (
	monthPattern   = regexp.MustCompile(`^\d{4}-\d{2}$`)
	monthJPPattern = regexp.MustCompile(`^(\d{4})年(\d{1,2})月$`)
	weekPattern    = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)
)

// NormalizeMonth converts a recording-month value to "YYYY-MM". Accepted
// inputs are "YYYY-MM" and the Japanese "YYYY年M月" form, including
// full-width digits. Unrecognized values are returned unchanged with
// ok=false so the caller can warn instead of rejecting the row.
func NormalizeMonth(s string) (string, bool) {
	s = width.Narrow.String(s)

	if monthPattern.MatchString(s) {
		return s, true
	}

	if m := monthJPPattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return fmt.Sprintf("%04d-%02d", year, month), true
		}
	}

	return s, false
}

// MonthOf formats the month containing t as "YYYY-MM"
func MonthOf(t time.Time) string {
	return t.Format("2006-01")
}

// ParseMonth splits a "YYYY-MM" string into year and month
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

// PreviousMonth returns the month before the given "YYYY-MM" month,
// handling the January rollover into the previous year
func PreviousMonth(s string) (string, error) {
	return addMonths(s, -1)
}

// NextMonth returns the month after the given "YYYY-MM" month,
// handling the December rollover into the next year
func NextMonth(s string) (string, error) {
	return addMonths(s, 1)
}

func addMonths(s string, n int) (string, error) {
	year, month, err := ParseMonth(s)
	if err != nil {
		return "", err
	}
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthOf(t), nil
}

// FormatMonthJP renders a "YYYY-MM" month for display, e.g. "2025年8月"
func FormatMonthJP(s string) string {
	year, month, err := ParseMonth(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%d年%d月", year, int(month))
}

// WeekOf formats the ISO week containing t as "YYYY-Www". The ISO year can
// differ from the calendar year around January 1st.
func WeekOf(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ParseWeek splits a "YYYY-Www" string into ISO year and week number
func ParseWeek(s string) (int, int, error) {
	m := weekPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid week %q", s)
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("invalid week number in %q", s)
	}
	return year, week, nil
}

// MondayOfWeek returns the Monday starting the given ISO week.
// January 4th is always inside week 1 of its ISO year.
func MondayOfWeek(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	monday := jan4.AddDate(0, 0, 1-weekday)
	return monday.AddDate(0, 0, (week-1)*7)
}

// PreviousWeek returns the ISO week before the given "YYYY-Www" week.
// Week 1 of a year yields the last week of the previous ISO year.
func PreviousWeek(s string) (string, error) {
	return addWeeks(s, -1)
}

// NextWeek returns the ISO week after the given "YYYY-Www" week
func NextWeek(s string) (string, error) {
	return addWeeks(s, 1)
}

func addWeeks(s string, n int) (string, error) {
	year, week, err := ParseWeek(s)
	if err != nil {
		return "", err
	}
	return WeekOf(MondayOfWeek(year, week).AddDate(0, 0, n*7)), nil
}

// FormatWeekJP renders a "YYYY-Www" week for display, e.g. "2025年 第8週"
func FormatWeekJP(s string) string {
	year, week, err := ParseWeek(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%d年 第%d週", year, week)
}
