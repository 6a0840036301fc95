package util

import "time"

// DateLayout is the ISO-8601 calendar date format used on the wire.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in UTC. Returns (t, true) if it worked.
func ParseDate(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    t, err := time.ParseInLocation(DateLayout, s, time.UTC)
    if err != nil {
        return time.Time{}, false
    }
    return t, true
}

// WithinDays reports whether d falls in [from, to], comparing calendar days only.
func WithinDays(d, from, to time.Time) bool {
    day := TruncateDay(d)
    return !day.Before(TruncateDay(from)) && !day.After(TruncateDay(to))
}

// TruncateDay drops the time-of-day part, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
    y, m, d := t.Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// YearsSpanned lists every calendar year touched by [from, to], ascending.
func YearsSpanned(from, to time.Time) []int {
    if to.Before(from) {
        from, to = to, from
    }
    years := make([]int, 0, to.Year()-from.Year()+1)
    for y := from.Year(); y <= to.Year(); y++ {
        years = append(years, y)
    }
    return years
}
