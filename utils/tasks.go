package utils

import (
	"context"
	"daysleft/models"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTasks are seeded once per user, on the first settings visit.
var DefaultTasks = []models.Task{
	{Title: "Pray"},
	{Title: "LeetCode", URL: strPtr("https://leetcode.com/problemset/")},
	{Title: "Apply to jobs", URL: strPtr("https://www.linkedin.com/jobs/")},
	{Title: "Network on LinkedIn", URL: strPtr("https://www.linkedin.com/mynetwork/")},
	{Title: "Work on project"},
	{Title: "Workout", URL: strPtr("https://www.youtube.com/results?search_query=20+min+workout")},
	{Title: "Eat healthy", URL: strPtr("https://www.reddit.com/r/MealPrepSunday/")},
}

func strPtr(s string) *string { return &s }

func scanTasks(rows pgx.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		t := models.Task{}
		err := rows.Scan(&t.ID, &t.Title, &t.Ord, &t.IsDaily, &t.Active, &t.URL)
		if err != nil {
			log.Println("Error scanning task row:", err)
			return tasks, errors.New("error processing tasks")
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		log.Println("Error after scanning all rows:", err)
		return tasks, errors.New("error processing tasks")
	}
	return tasks, nil
}

// GetTasks returns the user's tasks in display order, inactive ones
// included so the tasks page can show them greyed out.
func GetTasks(userID string, db *pgxpool.Pool) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT id, title, ord, is_daily, active, url FROM tasks WHERE user_id = $1 ORDER BY ord"
	rows, err := db.Query(ctx, stmt, userID)
	if err != nil {
		log.Println(err)
		return nil, errors.New("error querying tasks")
	}
	return scanTasks(rows)
}

// GetActiveTasks returns only the active tasks, in display order. The home
// page renders these with today's state.
func GetActiveTasks(userID string, db *pgxpool.Pool) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT id, title, ord, is_daily, active, url FROM tasks WHERE user_id = $1 AND active = TRUE ORDER BY ord"
	rows, err := db.Query(ctx, stmt, userID)
	if err != nil {
		log.Println(err)
		return nil, errors.New("error querying tasks")
	}
	return scanTasks(rows)
}

// AddTask appends a task to the end of the user's list.
func AddTask(userID string, title string, url *string, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := `INSERT INTO tasks (user_id, title, url, ord, is_daily, active)
		VALUES ($1, $2, $3, (SELECT COUNT(*) FROM tasks WHERE user_id = $1), TRUE, TRUE);`
	_, err := db.Exec(ctx, stmt, userID, title, url)
	if err != nil {
		log.Println("Error inserting task:", err)
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// ReorderTask moves a task to a new position. Every task whose position
// shifts gets its ord rewritten so positions stay dense and unique.
func ReorderTask(userID string, taskID string, newOrd int, db *pgxpool.Pool) error {
	tasks, err := GetTasks(userID, db)
	if err != nil {
		return err
	}

	oldIdx := -1
	for i, t := range tasks {
		if t.ID.String() == taskID {
			oldIdx = i
			break
		}
	}
	if oldIdx == -1 {
		return errors.New("task not found")
	}
	if newOrd < 0 {
		newOrd = 0
	}
	if newOrd >= len(tasks) {
		newOrd = len(tasks) - 1
	}
	if newOrd == oldIdx {
		return nil
	}

	moved := tasks[oldIdx]
	tasks = append(tasks[:oldIdx], tasks[oldIdx+1:]...)
	tasks = append(tasks[:newOrd], append([]models.Task{moved}, tasks[newOrd:]...)...)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "UPDATE tasks SET ord = $1 WHERE id = $2 AND user_id = $3"
	for i, t := range tasks {
		if t.Ord == i {
			continue
		}
		if _, err := db.Exec(ctx, stmt, i, t.ID, userID); err != nil {
			return fmt.Errorf("failed to reorder task: %w", err)
		}
	}
	return nil
}

// DeactivateTask hides a task from the daily list. Tasks are never hard
// deleted so their completion history keeps counting for past days.
func DeactivateTask(userID string, taskID string, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "UPDATE tasks SET active = FALSE WHERE id = $1 AND user_id = $2;"
	_, err := db.Exec(ctx, stmt, taskID, userID)
	if err != nil {
		log.Println("Failed to deactivate task:", err)
		return err
	}
	return nil
}

// SeedDefaultTasks inserts the starter list for users with no tasks yet.
// Returns whether anything was seeded.
func SeedDefaultTasks(userID string, db *pgxpool.Pool) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var exists bool
	err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM tasks WHERE user_id = $1)", userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("database error checking tasks: %w", err)
	}
	if exists {
		return false, nil
	}

	stmt := "INSERT INTO tasks (user_id, title, url, ord, is_daily, active) VALUES ($1, $2, $3, $4, TRUE, TRUE);"
	for i, t := range DefaultTasks {
		if _, err := db.Exec(ctx, stmt, userID, t.Title, t.URL, i); err != nil {
			return false, fmt.Errorf("failed to seed default tasks: %w", err)
		}
	}
	return true, nil
}
