package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StreakFromDays counts consecutive done-days ending at today. doneSet holds
// the day keys with done = true; the walk steps backwards one day at a time
// from today and stops at the first missing key, so a gap yesterday zeroes
// out any older run. Bounded by StreakLookbackDays.
func StreakFromDays(doneSet map[string]bool, today time.Time) int {
	streak := 0
	for i := 0; i < StreakLookbackDays; i++ {
		if !doneSet[DayKeyOffset(today, -i)] {
			break
		}
		streak++
	}
	return streak
}

// AdjustStreak applies the optimistic streak adjustment after a toggle.
// Completing today bumps the streak (0 becomes 1); unchecking decrements,
// floored at 0. It assumes the displayed streak was correct before the
// toggle and today's flip is the only change, so it can drift from the
// authoritative count; GetStreak on the next page load reconciles.
func AdjustStreak(streak int, nowDone bool) int {
	if nowDone {
		if streak == 0 {
			return 1
		}
		return streak + 1
	}
	if streak > 0 {
		return streak - 1
	}
	return 0
}

// GetStreak runs the authoritative recompute: it loads this task's state
// rows inside the lookback window and walks them with StreakFromDays.
func GetStreak(userID string, taskID string, db *pgxpool.Pool) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	since := DayKeyOffset(now, -StreakLookbackDays)

	stmt := "SELECT day, done FROM daily_task_state WHERE user_id = $1 AND task_id = $2 AND day >= $3"
	rows, err := db.Query(ctx, stmt, userID, taskID, since)
	if err != nil {
		return 0, fmt.Errorf("error querying daily state: %w", err)
	}
	defer rows.Close()

	doneSet := map[string]bool{}
	for rows.Next() {
		var day string
		var done bool
		if err := rows.Scan(&day, &done); err != nil {
			return 0, fmt.Errorf("error scanning daily state row: %w", err)
		}
		if done {
			doneSet[day] = true
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error reading daily state rows: %w", err)
	}

	return StreakFromDays(doneSet, now), nil
}

// IsDoneToday reports whether the task has a done row for today's day key.
// No row means not done.
func IsDoneToday(userID string, taskID string, db *pgxpool.Pool) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT done FROM daily_task_state WHERE user_id = $1 AND task_id = $2 AND day = $3;"
	var done bool
	err := db.QueryRow(ctx, stmt, userID, taskID, DayKey(time.Now())).Scan(&done)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return done, nil
}

// ToggleToday upserts today's completion row for the task, flipping the
// caller-supplied prior state. It returns the new done flag; the caller
// applies AdjustStreak only when the upsert succeeded, so a storage failure
// leaves the displayed state untouched.
func ToggleToday(userID string, taskID string, wasDone bool, db *pgxpool.Pool) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	nowDone := !wasDone
	stmt := `INSERT INTO daily_task_state (user_id, task_id, day, done)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, task_id, day) DO UPDATE SET done = EXCLUDED.done;`
	_, err := db.Exec(ctx, stmt, userID, taskID, DayKey(time.Now()), nowDone)
	if err != nil {
		log.Println("Error upserting daily state:", err)
		return wasDone, fmt.Errorf("failed to toggle task: %w", err)
	}
	return nowDone, nil
}
