package models

// UserSettings holds the per-user preferences. One row per user; the row is
// seeded with defaults on the first settings visit and replaced on save.
type UserSettings struct {
	UserID       string  `db:"user_id"`
	TargetDate   *string `db:"target_date"` // YYYY-MM-DD, nil until chosen
	Timezone     string  `db:"timezone"`
	ReminderHour int     `db:"reminder_hour"` // 0-23
}
