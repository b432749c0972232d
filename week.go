package safetyhub

import (
	"fmt"
	"time"
)

// Week is one reporting period: Monday through Saturday of a calendar week.
//
// The factory runs a six-day working week, so Sunday is deliberately outside
// the window on the end side. Downstream filtering treats the window as
// inclusive on both ends. This is a confirmed business rule, not an ISO
// week truncation bug.
type Week struct {
	Start time.Time `json:"start"` // Monday
	End   time.Time `json:"end"`   // Saturday (Start + 5 days)
}

// WeekOf buckets a date into its canonical week. A Sunday date resolves to
// the Monday of the week just ended, matching the inspection form's
// behavior, even though the Sunday itself falls outside [Start, End].
func WeekOf(date time.Time) Week {
	d := DateOnly(date)
	day := int(d.Weekday())
	var monday time.Time
	if day == 0 {
		monday = d.AddDate(0, 0, -6)
	} else {
		monday = d.AddDate(0, 0, -(day - 1))
	}
	return Week{
		Start: monday,
		End:   monday.AddDate(0, 0, 5),
	}
}

// Contains reports whether the date falls inside the week window,
// inclusive on both ends.
func (w Week) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Key returns the week's identity for coverage matching: the start date
// formatted as a calendar date. Reports cover a week when their week-start
// key is equal, never by fuzzy overlap.
func (w Week) Key() string {
	return w.Start.Format("2006-01-02")
}

// DateOnly truncates a timestamp to midnight UTC of its calendar date.
// All bucketing and window comparisons operate on calendar dates only.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PeriodLabel renders the human-readable period heading for the week
// containing date, e.g. "October 2023 - Week 4" or "2023年10月 - 第4週".
// Week-of-month is ceil(day-of-month / 7).
func PeriodLabel(date time.Time, lang Language) string {
	d := DateOnly(date)
	weekNo := (d.Day() + 6) / 7
	if lang == LangChinese {
		return fmt.Sprintf("%d年%d月 - 第%d週", d.Year(), int(d.Month()), weekNo)
	}
	return fmt.Sprintf("%s %d - Week %d", d.Month().String(), d.Year(), weekNo)
}
