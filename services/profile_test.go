package services

import (
	"math"
	"testing"
	"time"
)

func TestAnalysisWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	start, end := AnalysisWindow(now, 3)

	if !end.Equal(now) {
		t.Errorf("end = %v, want %v", end, now)
	}
	wantStart := now.AddDate(0, 0, -90)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
}

func TestBuildSpendingProfile(t *testing.T) {
	tests := []struct {
		name   string
		totals map[string]float64
		months int
		want   map[string]float64
	}{
		{
			name:   "averages over months",
			totals: map[string]float64{"Dining": 900, "Petrol": 300},
			months: 3,
			want:   map[string]float64{"Dining": 300, "Petrol": 100},
		},
		{
			name:   "single month passes through",
			totals: map[string]float64{"Groceries": 450},
			months: 1,
			want:   map[string]float64{"Groceries": 450},
		},
		{
			name:   "zero and negative totals dropped",
			totals: map[string]float64{"Dining": 0, "Petrol": -50, "Groceries": 300},
			months: 3,
			want:   map[string]float64{"Groceries": 100},
		},
		{
			name:   "empty totals give empty profile",
			totals: map[string]float64{},
			months: 3,
			want:   map[string]float64{},
		},
		{
			name:   "invalid months give empty profile",
			totals: map[string]float64{"Dining": 900},
			months: 0,
			want:   map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSpendingProfile(tt.totals, tt.months)

			if len(got) != len(tt.want) {
				t.Fatalf("profile has %d categories, want %d", len(got), len(tt.want))
			}
			for category, want := range tt.want {
				if math.Abs(got[category]-want) > 1e-9 {
					t.Errorf("profile[%q] = %v, want %v", category, got[category], want)
				}
			}
		})
	}
}
