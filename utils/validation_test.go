package utils_test

import (
	"daysleft/utils"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCheckPasswordHash(t *testing.T) {
	password := "SecurePass123!"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to generate password hash: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{
			name:     "Valid password should match hash",
			password: password,
			hash:     string(hash),
			want:     true,
		},
		{
			name:     "Invalid password should not match hash",
			password: "WrongPassword123!",
			hash:     string(hash),
			want:     false,
		},
		{
			name:     "Empty password should not match hash",
			password: "",
			hash:     string(hash),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.CheckPasswordHash(tt.password, tt.hash); got != tt.want {
				t.Errorf("CheckPasswordHash() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{
			name:  "Valid email should pass validation",
			email: "user@example.com",
			want:  true,
		},
		{
			name:  "Valid email with plus addressing should pass validation",
			email: "user+tag@example.com",
			want:  true,
		},
		{
			name:  "Email missing @ symbol should fail validation",
			email: "userexample.com",
			want:  false,
		},
		{
			name:  "Email missing domain should fail validation",
			email: "user@",
			want:  false,
		},
		{
			name:  "Empty email should fail validation",
			email: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateEmail(tt.email)
			if (err == nil) != tt.want {
				t.Errorf("ValidateEmail() error = %v, wantErr = %v", err, !tt.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "Valid password should pass validation",
			password: "SecureP@ss123",
			wantErr:  false,
		},
		{
			name:     "Password too short should fail validation",
			password: "Abc1!",
			wantErr:  true,
			errMsg:   "password must be at least 8 characters long",
		},
		{
			name:     "Password without uppercase should fail validation",
			password: "securepass123!",
			wantErr:  true,
			errMsg:   "password must contain at least one uppercase letter",
		},
		{
			name:     "Password without digits should fail validation",
			password: "SecurePass!",
			wantErr:  true,
			errMsg:   "password must contain at least one digit",
		},
		{
			name:     "Password without special characters should fail validation",
			password: "SecurePass123",
			wantErr:  true,
			errMsg:   "password must contain at least one special character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("ValidatePassword() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidateTaskInput(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{
			name:    "Valid title should pass validation",
			title:   "Apply to jobs",
			wantErr: false,
		},
		{
			name:    "Empty title should fail validation",
			title:   "",
			wantErr: true,
		},
		{
			name:    "Title with HTML tags should fail validation",
			title:   "Task <script>alert('x')</script>",
			wantErr: true,
		},
		{
			name:    "Very long title should fail validation",
			title:   string(make([]byte, 256)),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateTaskInput(tt.title)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTaskInput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTaskURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name:    "Empty URL is allowed",
			url:     "",
			wantErr: false,
		},
		{
			name:    "HTTPS URL should pass validation",
			url:     "https://leetcode.com/problemset/",
			wantErr: false,
		},
		{
			name:    "HTTP URL should pass validation",
			url:     "http://example.com",
			wantErr: false,
		},
		{
			name:    "Javascript scheme should fail validation",
			url:     "javascript:alert(1)",
			wantErr: true,
		},
		{
			name:    "Relative path should fail validation",
			url:     "/tasks",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateTaskURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTaskURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		wantErr bool
	}{
		{
			name:    "IANA name should pass validation",
			tz:      "America/New_York",
			wantErr: false,
		},
		{
			name:    "UTC should pass validation",
			tz:      "UTC",
			wantErr: false,
		},
		{
			name:    "Made up zone should fail validation",
			tz:      "Mars/Olympus_Mons",
			wantErr: true,
		},
		{
			name:    "Empty timezone should fail validation",
			tz:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateTimezone(tt.tz)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTimezone() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReminderHour(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		wantErr bool
	}{
		{name: "Midnight is allowed", hour: 0, wantErr: false},
		{name: "Last hour is allowed", hour: 23, wantErr: false},
		{name: "Negative hour should fail", hour: -1, wantErr: true},
		{name: "Hour past 23 should fail", hour: 24, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateReminderHour(tt.hour)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateReminderHour() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTargetDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "Empty date means not set yet", date: "", wantErr: false},
		{name: "Calendar date should pass validation", date: "2026-05-20", wantErr: false},
		{name: "Wrong layout should fail validation", date: "05/20/2026", wantErr: true},
		{name: "Nonsense should fail validation", date: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateTargetDate(tt.date)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTargetDate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSamePassword(t *testing.T) {
	tests := []struct {
		name              string
		password          string
		confirmedPassword string
		want              bool
	}{
		{
			name:              "Matching passwords should return true",
			password:          "SecureP@ss123",
			confirmedPassword: "SecureP@ss123",
			want:              true,
		},
		{
			name:              "Non-matching passwords should return false",
			password:          "SecureP@ss123",
			confirmedPassword: "DifferentP@ss456",
			want:              false,
		},
		{
			name:              "Case sensitivity should be preserved",
			password:          "SecureP@ss123",
			confirmedPassword: "securep@ss123",
			want:              false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.SamePassword(tt.password, tt.confirmedPassword); got != tt.want {
				t.Errorf("SamePassword() = %v, want %v", got, tt.want)
			}
		})
	}
}
