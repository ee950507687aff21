package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func OpenDB(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		fmt.Printf("Error parsing DSN: %v\n", err)
		return nil, err
	}

	config.MaxConns = 50
	config.MaxConnIdleTime = 20 * time.Second
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Printf("Unable to create connection pool: %v\n", err)
		return nil, err
	}

	// Test the connection
	err = pool.Ping(context.Background())
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// CurrentUser resolves the authenticated user for a request via the session
// cookie. Missing or stale sessions fail closed with an error; callers
// redirect to /signin.
func CurrentUser(r *http.Request, client *redis.Client) (string, error) {
	st, err := r.Cookie("session_token")
	if err != nil || st.Value == "" {
		return "", errors.New("unauthenticated: no session token")
	}

	valid, err := ValidateSession(client, st.Value)
	if err != nil || !valid {
		return "", errors.New("unauthenticated: session expired or unknown")
	}

	userID, err := GetUserIDFromST(client, st.Value)
	if err != nil || userID == "" {
		return "", errors.New("unauthenticated: session has no user")
	}
	return userID, nil
}

// GetUserEmail returns the account email for display in page headers.
func GetUserEmail(userID string, db *pgxpool.Pool) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var email string
	err := db.QueryRow(ctx, "SELECT email FROM users WHERE id = $1;", userID).Scan(&email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", errors.New("no user found for session")
		}
		return "", fmt.Errorf("error looking up user: %w", err)
	}
	return email, nil
}

func EmailInUse(email string, db *pgxpool.Pool) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)"

	var exists bool
	err := db.QueryRow(ctx, stmt, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("database error checking email: %w", err)
	}

	return exists, nil
}

func UpdateLastActivityDB(db *pgxpool.Pool, userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "UPDATE users SET last_activity = NOW() WHERE id = $1"
	_, err := db.Exec(ctx, stmt, userID)
	if err != nil {
		return fmt.Errorf("error updating last activity: %w", err)
	}

	return nil
}
