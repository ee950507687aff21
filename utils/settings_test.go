package utils_test

import (
	"daysleft/utils"
	"testing"
	"time"
)

func TestCountdownDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		target  string
		want    int
		wantErr bool
	}{
		{
			name:   "Target later this year",
			target: "2025-12-20",
			want:   188,
		},
		{
			name:   "Target tomorrow",
			target: "2025-06-16",
			want:   1,
		},
		{
			name:   "Target today",
			target: "2025-06-15",
			want:   0,
		},
		{
			name:   "Past target floors at zero",
			target: "2025-01-01",
			want:   0,
		},
		{
			name:    "Garbage date",
			target:  "soon",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.CountdownDays(tt.target, now)
			if (err != nil) != tt.wantErr {
				t.Errorf("CountdownDays() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("CountdownDays() = %v, want %v", got, tt.want)
			}
		})
	}
}
