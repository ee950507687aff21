package handlers

import (
	"daysleft/models"
	"daysleft/utils"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path"
	"strconv"
	"text/template"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// TasksPage renders the task management list in display order.
func TasksPage(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	tmpl, err := template.ParseFiles("./ui/html/tasks.html")
	if err != nil {
		log.Println("Error loading template:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	userID, err := utils.CurrentUser(r, redisClient)
	if err != nil {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	st, _ := r.Cookie("session_token")
	csrfToken, err := utils.GetCSRFFromST(redisClient, st.Value)
	if err != nil {
		log.Println("error retrieving csrf token:", err)
	}

	tasks, err := utils.GetTasks(userID, db)
	if err != nil {
		log.Println("Error retrieving tasks for user:", userID, ":", err)
	}

	data := models.TasksPageData{
		Tasks:      tasks,
		CSRFtoken:  csrfToken,
		IsLoggedIn: true,
	}

	if err := tmpl.Execute(w, data); err != nil {
		log.Println("Error rendering template:", err)
		http.Error(w, "Error displaying tasks", http.StatusInternalServerError)
	}
}

// AddTaskHandler appends a new task to the end of the caller's list.
func AddTaskHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
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

	title := r.FormValue("title")
	if err := utils.ValidateTaskInput(title); err != nil {
		log.Println("error with task title", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "task title must be between 1-255 characters and cannot contain <>\"'")
		return
	}

	rawURL := r.FormValue("url")
	if err := utils.ValidateTaskURL(rawURL); err != nil {
		log.Println("error with task url:", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "task link must be an http(s) URL")
		return
	}
	var taskURL *string
	if rawURL != "" {
		taskURL = &rawURL
	}

	if err := utils.AddTask(userID, title, taskURL, db); err != nil {
		log.Println("Error adding task:", err)
		http.Error(w, "Failed to add task", http.StatusInternalServerError)
		return
	}

	utils.UpdateLastActivityDB(db, userID)
	if st, err := r.Cookie("session_token"); err == nil {
		utils.UpdateLastActivityRedis(redisClient, st.Value)
	}

	w.Header().Set("HX-Redirect", "/tasks")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Task added successfully!")
}

// DeactivateTaskHandler hides a task from the daily list. History rows stay.
func DeactivateTaskHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
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

	taskID := path.Base(r.URL.Path)
	if taskID == "" || taskID == "deactivateTask" {
		http.Error(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	if err := utils.DeactivateTask(userID, taskID, db); err != nil {
		log.Println("Error deactivating task:", err)
		http.Error(w, "Failed to deactivate task", http.StatusInternalServerError)
		return
	}

	utils.UpdateLastActivityDB(db, userID)
	if st, err := r.Cookie("session_token"); err == nil {
		utils.UpdateLastActivityRedis(redisClient, st.Value)
	}

	w.WriteHeader(http.StatusOK)
}

// MoveTaskHandler persists a reorder: the task named in the URL moves to
// the position in the form body, everything between shifts by one.
func MoveTaskHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
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

	taskID := path.Base(r.URL.Path)
	if taskID == "" || taskID == "moveTask" {
		http.Error(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	position, err := strconv.Atoi(r.FormValue("position"))
	if err != nil {
		http.Error(w, "Invalid position value", http.StatusBadRequest)
		return
	}

	if err := utils.ReorderTask(userID, taskID, position, db); err != nil {
		log.Println("error moving task:", err)
		http.Error(w, "Failed to move task", http.StatusInternalServerError)
		return
	}

	utils.UpdateLastActivityDB(db, userID)
	if st, err := r.Cookie("session_token"); err == nil {
		utils.UpdateLastActivityRedis(redisClient, st.Value)
	}

	w.Header().Set("HX-Redirect", "/tasks")
	w.WriteHeader(http.StatusOK)
}

// ToggleTaskHandler flips today's completion flag for a task. The caller
// sends the done state and streak it is currently displaying; on a
// successful upsert the response carries the new state and the optimistic
// streak. On failure nothing is written back, so the client keeps what it
// had and the user can re-click.
func ToggleTaskHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
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

	taskID := path.Base(r.URL.Path)
	if taskID == "" || taskID == "toggleTask" {
		http.Error(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	wasDone := r.FormValue("done") == "true"
	streak, err := strconv.Atoi(r.FormValue("streak"))
	if err != nil || streak < 0 {
		http.Error(w, "Invalid streak value", http.StatusBadRequest)
		return
	}

	nowDone, err := utils.ToggleToday(userID, taskID, wasDone, db)
	if err != nil {
		log.Println("Error toggling task:", err)
		http.Error(w, "Failed to toggle task", http.StatusInternalServerError)
		return
	}

	utils.UpdateLastActivityDB(db, userID)
	if st, err := r.Cookie("session_token"); err == nil {
		utils.UpdateLastActivityRedis(redisClient, st.Value)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"done":   nowDone,
		"streak": utils.AdjustStreak(streak, nowDone),
	})
}
