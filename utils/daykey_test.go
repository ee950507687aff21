package utils_test

import (
	"daysleft/utils"
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "Midday",
			in:   time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC),
			want: "2025-03-14",
		},
		{
			name: "Just before midnight stays on the same day",
			in:   time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC),
			want: "2025-03-14",
		},
		{
			name: "Single digit month and day are zero padded",
			in:   time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC),
			want: "2025-01-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.DayKey(tt.in); got != tt.want {
				t.Errorf("DayKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDayKeyOffset(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		days int
		want string
	}{
		{name: "Zero offset", days: 0, want: "2025-03-01"},
		{name: "Yesterday crosses month boundary", days: -1, want: "2025-02-28"},
		{name: "Tomorrow", days: 1, want: "2025-03-02"},
		{name: "Sixty days back", days: -60, want: "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.DayKeyOffset(base, tt.days); got != tt.want {
				t.Errorf("DayKeyOffset() = %v, want %v", got, tt.want)
			}
		})
	}
}
