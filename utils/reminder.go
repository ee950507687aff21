package utils

import (
	"context"
	"daysleft/models"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// StartReminderScheduler runs the reminder sweep at the top of every hour.
// Returns the cron so the caller can Stop it on shutdown.
func StartReminderScheduler(db *pgxpool.Pool) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("0 * * * *", func() {
		if err := SendDueReminders(db, time.Now()); err != nil {
			log.Println("Reminder sweep failed:", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule reminder sweep: %v", err)
	}
	c.Start()
	return c
}

// SendDueReminders emails every user whose reminder hour, evaluated in their
// own stored timezone, matches the current hour. A bad timezone or a failed
// send skips that user and continues; one broken row must not starve the
// rest of the sweep.
func SendDueReminders(db *pgxpool.Pool, now time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stmt := `SELECT s.user_id, s.target_date, s.timezone, s.reminder_hour, u.email
		FROM user_settings s JOIN users u ON u.id = s.user_id;`
	rows, err := db.Query(ctx, stmt)
	if err != nil {
		return fmt.Errorf("error querying reminder settings: %w", err)
	}
	defer rows.Close()

	type due struct {
		settings models.UserSettings
		email    string
	}
	var dueUsers []due
	for rows.Next() {
		var s models.UserSettings
		var email string
		if err := rows.Scan(&s.UserID, &s.TargetDate, &s.Timezone, &s.ReminderHour, &email); err != nil {
			return fmt.Errorf("error scanning reminder settings: %w", err)
		}
		loc, err := time.LoadLocation(s.Timezone)
		if err != nil {
			log.Printf("Skipping reminder for %s: bad timezone %q", s.UserID, s.Timezone)
			continue
		}
		if now.In(loc).Hour() == s.ReminderHour {
			dueUsers = append(dueUsers, due{settings: s, email: email})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading reminder settings: %w", err)
	}

	for _, d := range dueUsers {
		if err := sendReminderEmail(d.settings, d.email, db, now); err != nil {
			log.Printf("Failed to send reminder to %s: %v", d.email, err)
		}
	}
	return nil
}

func sendReminderEmail(s models.UserSettings, email string, db *pgxpool.Pool, now time.Time) error {
	tasks, err := GetActiveTasks(s.UserID, db)
	if err != nil {
		return err
	}

	var unfinished []string
	for _, t := range tasks {
		done, err := IsDoneToday(s.UserID, t.ID.String(), db)
		if err != nil {
			return err
		}
		if !done {
			unfinished = append(unfinished, t.Title)
		}
	}

	var b strings.Builder
	if s.TargetDate != nil {
		if days, err := CountdownDays(*s.TargetDate, now); err == nil {
			fmt.Fprintf(&b, "%d days to go.\n\n", days)
		}
	}
	if len(unfinished) == 0 {
		b.WriteString("All of today's tasks are done. Keep the streaks alive tomorrow!")
	} else {
		b.WriteString("Still open today:\n")
		for _, title := range unfinished {
			fmt.Fprintf(&b, "- %s\n", title)
		}
	}

	from := mail.NewEmail("Daysleft", "donotreply@daysleft.app")
	to := mail.NewEmail("", email)
	subject := "Your daily check-in"
	body := b.String()
	message := mail.NewSingleEmail(from, subject, to, body, "<pre>"+body+"</pre>")

	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	log.Printf("Reminder sent to %s, status: %d", email, response.StatusCode)
	return nil
}
