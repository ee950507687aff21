package utils

import (
	"context"
	"daysleft/models"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSettings upserts a default settings row for the user if none exists
// yet. Idempotent; called on every settings page visit.
func EnsureSettings(userID string, timezone string, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := `INSERT INTO user_settings (user_id, timezone, reminder_hour)
		VALUES ($1, $2, 8)
		ON CONFLICT (user_id) DO NOTHING;`
	_, err := db.Exec(ctx, stmt, userID, timezone)
	if err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}

// GetSettings loads the user's settings row. Missing row comes back as
// zero-value settings with ok = false.
func GetSettings(userID string, db *pgxpool.Pool) (models.UserSettings, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := models.UserSettings{UserID: userID}
	stmt := "SELECT target_date, timezone, reminder_hour FROM user_settings WHERE user_id = $1;"
	err := db.QueryRow(ctx, stmt, userID).Scan(&s.TargetDate, &s.Timezone, &s.ReminderHour)
	if err != nil {
		if err == pgx.ErrNoRows {
			return s, false, nil
		}
		return s, false, fmt.Errorf("error loading settings: %w", err)
	}
	return s, true, nil
}

// SaveSettings replaces the user's settings.
func SaveSettings(s models.UserSettings, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := `INSERT INTO user_settings (user_id, target_date, timezone, reminder_hour)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET target_date = EXCLUDED.target_date,
		    timezone = EXCLUDED.timezone,
		    reminder_hour = EXCLUDED.reminder_hour;`
	_, err := db.Exec(ctx, stmt, s.UserID, s.TargetDate, s.Timezone, s.ReminderHour)
	if err != nil {
		return errors.New("unable to update settings")
	}
	return nil
}

// CountdownDays returns the number of whole calendar days from today until
// the target date, floored at 0 once the date has passed. The comparison is
// between day keys, so partial days don't count.
func CountdownDays(targetDate string, now time.Time) (int, error) {
	target, err := time.ParseInLocation(dayKeyLayout, targetDate, now.Location())
	if err != nil {
		return 0, fmt.Errorf("invalid target date %q: %w", targetDate, err)
	}

	today, err := time.ParseInLocation(dayKeyLayout, DayKey(now), now.Location())
	if err != nil {
		return 0, err
	}

	// Round rather than truncate so a DST shift inside the span doesn't
	// drop a day.
	days := int(math.Round(target.Sub(today).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return days, nil
}
