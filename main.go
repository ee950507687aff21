package main

import (
	"daysleft/handlers"
	"daysleft/utils"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}
	log.Println("environment: ", os.Getenv("APP_ENV"))

	pgDSN := os.Getenv("DATABASE_URL")

	// Initialize the database connection pool
	dbPool, pgErr := utils.OpenDB(pgDSN)
	if pgErr != nil {
		log.Fatalf("Failed to connect to database: %v", pgErr)
	}
	defer dbPool.Close()

	redisDSN := os.Getenv("REDIS_URL")
	redisPool := utils.OpenRedisPool(redisDSN)
	defer redisPool.Close()

	quoteCache := &utils.RedisQuoteCache{Client: redisPool}
	quoteURL := os.Getenv("QUOTE_API_URL")
	if quoteURL == "" {
		quoteURL = utils.QuoteAPIURL
	}
	quoteClient := &http.Client{Timeout: 10 * time.Second}

	// Hourly reminder emails
	reminders := utils.StartReminderScheduler(dbPool)
	defer reminders.Stop()

	// Set up the HTTP server and handlers
	mux := http.NewServeMux()

	// File server for static files
	fileServer := http.FileServer(http.Dir("./ui/static/"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// HTTP handlers
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handlers.Home(w, r, dbPool, redisPool)
	})
	mux.HandleFunc("/api/daily-quote", func(w http.ResponseWriter, r *http.Request) {
		handlers.DailyQuoteHandler(w, r, quoteCache, quoteClient, quoteURL)
	})
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		handlers.TasksPage(w, r, dbPool, redisPool)
	})
	mux.HandleFunc("/addTask", func(w http.ResponseWriter, r *http.Request) {
		handlers.AddTaskHandler(w, r, dbPool, redisPool)
	})
	mux.HandleFunc("/deactivateTask/", func(w http.ResponseWriter, r *http.Request) {
		handlers.DeactivateTaskHandler(w, r, dbPool, redisPool)
	})
	mux.HandleFunc("/moveTask/", func(w http.ResponseWriter, r *http.Request) {
		handlers.MoveTaskHandler(w, r, dbPool, redisPool)
	})
	mux.HandleFunc("/toggleTask/", func(w http.ResponseWriter, r *http.Request) {
		handlers.ToggleTaskHandler(w, r, dbPool, redisPool)
	})
	mux.HandleFunc("/signin", func(w http.ResponseWriter, r *http.Request) {
		handlers.SignInPageHandler(w, r, redisPool)
	})
	mux.HandleFunc("/signin-submit", func(w http.ResponseWriter, r *http.Request) {
		handlers.SignInHandler(w, r, dbPool, redisPool)
	})
	mux.HandleFunc("/signup", func(w http.ResponseWriter, r *http.Request) {
		handlers.SignUpPageHandler(w, r, redisPool)
	})
	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		handlers.RegisterUserHandler(w, r, dbPool, redisPool)
	})
	mux.HandleFunc("/logOut", func(w http.ResponseWriter, r *http.Request) {
		handlers.LogOutHandler(w, r, redisPool)
	})

	mux.HandleFunc("/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		handlers.ResetPasswordRequestForm(w, r, redisPool)
	})
	mux.HandleFunc("/reset-password/send-email", func(w http.ResponseWriter, r *http.Request) {
		handlers.ResetPasswordRequestHandler(w, r, dbPool)
	})
	mux.HandleFunc("/forgot-password/validate-user", func(w http.ResponseWriter, r *http.Request) {
		handlers.TemporaryLoginForm(w, r)
	})
	mux.HandleFunc("/reset-password/temporary-login", func(w http.ResponseWriter, r *http.Request) {
		handlers.TemporaryLoginHandler(w, r, dbPool)
	})
	mux.HandleFunc("/forgot-password/change-password", func(w http.ResponseWriter, r *http.Request) {
		handlers.ChangePasswordForm(w, r)
	})
	mux.HandleFunc("/reset-password/update-password", func(w http.ResponseWriter, r *http.Request) {
		handlers.ChangePasswordHandler(w, r, dbPool, redisPool)
	})
	mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) {
		handlers.SettingsHandler(w, r, dbPool, redisPool)
	})
	mux.HandleFunc("/update-settings", func(w http.ResponseWriter, r *http.Request) {
		handlers.UpdateSettingsHandler(w, r, dbPool, redisPool)
	})

	// Start the server
	fmt.Println("Starting server on :8080")
	log.Fatal(http.ListenAndServe(":8080", mux))
}
