package models

// DailyTaskState is one task's completion flag for one calendar day.
// Keyed (user_id, task_id, day); no row for a day means "not done".
type DailyTaskState struct {
	UserID string `db:"user_id"`
	TaskID string `db:"task_id"`
	Day    string `db:"day"` // YYYY-MM-DD
	Done   bool   `db:"done"`
}
