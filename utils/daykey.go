package utils

import "time"

const dayKeyLayout = "2006-01-02"

// StreakLookbackDays bounds how far back the streak walk looks. Streaks
// longer than the window are reported as the window size.
const StreakLookbackDays = 60

// DayKey returns the canonical YYYY-MM-DD key for the calendar day t falls
// on. The key uses the process wall clock's location, not the user's stored
// timezone; a user near their own midnight may see the day roll over at a
// different moment than their clock does. Known limitation.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// DayKeyOffset returns the day key for t shifted by the given number of
// days (negative for the past).
func DayKeyOffset(t time.Time, days int) string {
	return t.AddDate(0, 0, days).Format(dayKeyLayout)
}
