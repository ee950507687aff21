package handlers

import (
	"daysleft/models"
	"daysleft/utils"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"text/template"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// defaultTimezone seeds the settings row until the user picks their own.
const defaultTimezone = "America/New_York"

// SettingsHandler renders the settings page. The first visit seeds the
// settings row and the default task list; both seeds are idempotent.
func SettingsHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	userID, err := utils.CurrentUser(r, redisClient)
	if err != nil {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	if err := utils.EnsureSettings(userID, defaultTimezone, db); err != nil {
		log.Println("error seeding settings:", err)
	}

	seeded, err := utils.SeedDefaultTasks(userID, db)
	if err != nil {
		log.Println("error seeding default tasks:", err)
	}

	settings, _, err := utils.GetSettings(userID, db)
	if err != nil {
		log.Println("error loading settings:", err)
	}

	st, _ := r.Cookie("session_token")
	csrfToken, err := utils.GetCSRFFromST(redisClient, st.Value)
	if err != nil {
		log.Println("error retrieving csrf token:", err)
	}

	email, err := utils.GetUserEmail(userID, db)
	if err != nil {
		log.Println("error looking up email:", err)
	}

	data := models.SettingsData{
		Settings:   settings,
		Seeded:     seeded,
		CSRFtoken:  csrfToken,
		IsLoggedIn: true,
		Email:      email,
	}

	tmpl, err := template.ParseFiles("./ui/html/settings.html")
	if err != nil {
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, data)
}

// UpdateSettingsHandler saves the target date, timezone and reminder hour.
func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	userID, err := utils.CurrentUser(r, redisClient)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := utils.Authorize(r, redisClient); err != nil {
		log.Println("Authorization failed:", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	targetDate := r.FormValue("target_date")
	timezone := r.FormValue("timezone")
	reminderHour, errHour := strconv.Atoi(r.FormValue("reminder_hour"))

	if err := utils.ValidateTargetDate(targetDate); err != nil {
		fmt.Fprintf(w, "<p style='color: red;'>Error: %s</p>", err)
		return
	}
	if err := utils.ValidateTimezone(timezone); err != nil {
		fmt.Fprintf(w, "<p style='color: red;'>Error: %s</p>", err)
		return
	}
	if errHour != nil {
		fmt.Fprintf(w, "<p style='color: red;'>Error: reminder hour must be a number.</p>")
		return
	}
	if err := utils.ValidateReminderHour(reminderHour); err != nil {
		fmt.Fprintf(w, "<p style='color: red;'>Error: %s</p>", err)
		return
	}

	settings := models.UserSettings{
		UserID:       userID,
		Timezone:     timezone,
		ReminderHour: reminderHour,
	}
	if targetDate != "" {
		settings.TargetDate = &targetDate
	}

	if err := utils.SaveSettings(settings, db); err != nil {
		log.Println("Database update error:", err)
		fmt.Fprintf(w, "<p style='color: red;'>Error updating settings.</p>")
		return
	}

	fmt.Fprintf(w, "<p style='color: green;'>Settings updated successfully!</p>")
}
