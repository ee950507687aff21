package utils

import (
	"context"
	"crypto/rand"
	"daysleft/models"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"golang.org/x/crypto/bcrypt"
)

// Authorize checks the session and CSRF token on a mutating request.
func Authorize(r *http.Request, client *redis.Client) error {
	st, err := r.Cookie("session_token")
	if err != nil || st.Value == "" {
		return errors.New("unauthorized: missing or empty session token")
	}
	exists, err := ValidateSession(client, st.Value)
	if !exists {
		return errors.New("unauthorized: session token does not exist")
	}
	if err != nil {
		return errors.New("error: invalid session token")
	}

	csrf := r.Header.Get("X-CSRF-Token")
	if csrf == "" {
		csrf = r.FormValue("csrf_token")
	}
	expectedCSRF, err := GetCSRFFromST(client, st.Value)
	if err != nil {
		return errors.New("unauthorized: could not fetch csrf token")
	}
	if csrf == "" || expectedCSRF == "" || csrf != expectedCSRF {
		return errors.New("unauthorized: invalid CSRF token")
	}
	return nil
}

func AddUser(email string, password string, db *pgxpool.Pool) error {
	passwordHash, err := HashPassword(password)
	if err != nil {
		log.Println("error hashing password", err)
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stmt := "INSERT INTO users (email, password_hash) VALUES ($1, $2);"
	_, err = db.Exec(ctx, stmt, email, passwordHash)
	if err != nil {
		log.Println("Error adding User", err)
		return err
	}

	return nil
}

func LoginUser(w http.ResponseWriter, r *http.Request, email string, password string, db *pgxpool.Pool, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stmt := "SELECT id, password_hash FROM users WHERE email = $1;"
	row := db.QueryRow(ctx, stmt, email)
	var (
		userID string
		hash   string
	)
	if err := row.Scan(&userID, &hash); err != nil {
		log.Printf("User lookup failed: %v", err)
		return fmt.Errorf("invalid credentials")
	}

	if !CheckPasswordHash(password, hash) {
		log.Printf("Password verification failed for user: %s", email)
		return fmt.Errorf("invalid credentials")
	}

	sessionToken := GenerateToken(32)
	csrfToken := GenerateToken(32)

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    sessionToken,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   3600 * 24, // 24 hours
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "csrf_token",
		Value:    csrfToken,
		HttpOnly: false, // Needs to be accessible by JavaScript
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   3600 * 24,
	})

	session := models.Session{
		SessionToken: sessionToken,
		UserID:       userID,
		CreatedAt:    time.Now().Format(time.RFC3339),
		ExpiresAt:    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		LastActivity: time.Now().Format(time.RFC3339),
		CSRFToken:    csrfToken,
		UserAgent:    GetUserAgent(r),
		IPAddress:    GetIP(r),
	}

	err := StoreSession(client, session, 24*time.Hour)
	if err != nil {
		log.Printf("Failed to store session: %v", err)
		return fmt.Errorf("login failed: %w", err)
	}

	log.Printf("Login successful for user: %s", email)
	return nil
}

func GenerateToken(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	return base64.URLEncoding.EncodeToString(bytes)
}

func GenerateOTP() string {
	return GenerateToken(32)
}

func SetOTP(email string, otp string, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stmt := "UPDATE users SET one_time_password = $1 WHERE email = $2 RETURNING id;"

	var updatedID string
	err := db.QueryRow(ctx, stmt, otp, email).Scan(&updatedID)
	if err != nil {
		log.Printf("failed to set otp: %s", err)
		return errors.New("unable to set otp")
	}

	return nil
}

func SendOTP(email string, otp string) error {
	from := mail.NewEmail("Daysleft Support", "donotreply@daysleft.app")
	subject := "Password Reset Code"

	to := mail.NewEmail("", email)

	plainTextContent := fmt.Sprintf("Your password reset code is: %s", otp)
	htmlContent := fmt.Sprintf("<strong>Your password reset code is: %s</strong>", otp)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	log.Println("OTP email sent, status:", response.StatusCode)
	return nil
}

func IsTempPasswordCorrect(tempPassword string, email string, db *pgxpool.Pool) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var otp *string

	getOTPstmt := "SELECT one_time_password FROM users WHERE email = $1;"
	row := db.QueryRow(ctx, getOTPstmt, email)
	err := row.Scan(&otp)
	if err != nil {
		log.Printf("error getting otp from database: \nuser: %s \nerror: %s", email, err)
		return false, errors.New("unable to retrieve otp")
	}

	if otp == nil {
		log.Printf("no OTP found for user: %s", email)
		return false, errors.New("otp is null")
	}

	// Single use: clear it on a successful match
	if tempPassword == *otp {
		stmt := "UPDATE users SET one_time_password = NULL WHERE email = $1 RETURNING email;"

		var updatedEmail string
		err := db.QueryRow(ctx, stmt, email).Scan(&updatedEmail)
		if err != nil {
			log.Printf("failed to delete otp for user: %s", email)
			return false, errors.New("unable to delete otp")
		}
	}
	return tempPassword == *otp, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func ChangePassword(email string, password string, db *pgxpool.Pool) error {
	passwordHash, err := HashPassword(password)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stmt := "UPDATE users SET password_hash = $1 WHERE email = $2 RETURNING id;"

	var updatedID string
	err = db.QueryRow(ctx, stmt, passwordHash, email).Scan(&updatedID)
	if err != nil {
		log.Printf("failed to update user password for user: %s", email)
		return errors.New("unable to update user password")
	}

	return nil
}
