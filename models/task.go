package models

import (
	"github.com/google/uuid"
)

type Task struct {
	ID      uuid.UUID `db:"id"`
	UserID  uuid.UUID `db:"user_id"`
	Title   string    `db:"title"`
	Ord     int       `db:"ord"`
	IsDaily bool      `db:"is_daily"`
	Active  bool      `db:"active"`
	URL     *string   `db:"url"`
}

// TaskToday is a task joined with today's completion state and current
// streak, as rendered on the home page.
type TaskToday struct {
	Task
	Done   bool
	Streak int
}
