package handlers

import (
	"daysleft/models"
	"daysleft/utils"
	"log"
	"net/http"
	"text/template"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Home renders the countdown, the daily quote and today's task list with
// per-task streaks. Signed-out visitors get the landing view.
func Home(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	tmpl, err := template.ParseFiles("./ui/html/home.html")
	if err != nil {
		log.Println("Error loading template:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	userID, err := utils.CurrentUser(r, redisClient)
	if err != nil {
		data := models.HomeData{IsLoggedIn: false}
		if err := tmpl.Execute(w, data); err != nil {
			log.Println("Error rendering template:", err)
			http.Error(w, "Error displaying home page", http.StatusInternalServerError)
		}
		return
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

	settings, hasSettings, err := utils.GetSettings(userID, db)
	if err != nil {
		log.Println("error loading settings:", err)
	}

	countdown := 0
	hasTarget := false
	if hasSettings && settings.TargetDate != nil {
		days, err := utils.CountdownDays(*settings.TargetDate, time.Now())
		if err != nil {
			log.Println("error computing countdown:", err)
		} else {
			countdown = days
			hasTarget = true
		}
	}

	tasks, err := utils.GetActiveTasks(userID, db)
	if err != nil {
		log.Println("Error retrieving tasks for user:", userID, ":", err)
	}

	today := []models.TaskToday{}
	for _, t := range tasks {
		done, err := utils.IsDoneToday(userID, t.ID.String(), db)
		if err != nil {
			log.Println("error loading today's state:", err)
		}
		streak, err := utils.GetStreak(userID, t.ID.String(), db)
		if err != nil {
			log.Println("error computing streak:", err)
		}
		today = append(today, models.TaskToday{Task: t, Done: done, Streak: streak})
	}

	if err := utils.UpdateLastActivityRedis(redisClient, st.Value); err != nil {
		log.Println("Error updating last activity in Redis:", err)
	}
	if err := utils.UpdateLastActivityDB(db, userID); err != nil {
		log.Println("Error updating last activity in database:", err)
	}

	data := models.HomeData{
		Tasks:         today,
		CountdownDays: countdown,
		HasTarget:     hasTarget,
		CSRFtoken:     csrfToken,
		IsLoggedIn:    true,
		Email:         email,
	}

	if err := tmpl.Execute(w, data); err != nil {
		log.Println("Error rendering template:", err)
		http.Error(w, "Error displaying home page", http.StatusInternalServerError)
	}
}
