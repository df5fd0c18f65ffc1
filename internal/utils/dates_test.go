package utils

import (
	"testing"
	"time"
)

func TestLastNDates(t *testing.T) {
	from := time.Date(2025, time.March, 3, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{
			name: "seven days crossing a month boundary",
			n:    7,
			want: []string{"2025-03-03", "2025-03-02", "2025-03-01", "2025-02-28", "2025-02-27", "2025-02-26", "2025-02-25"},
		},
		{
			name: "single day",
			n:    1,
			want: []string{"2025-03-03"},
		},
		{
			name: "zero days",
			n:    0,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LastNDates(tt.n, from)
			if len(result) != len(tt.want) {
				t.Fatalf("LastNDates(%d) returned %d dates, want %d", tt.n, len(result), len(tt.want))
			}
			for i, date := range result {
				if date != tt.want[i] {
					t.Errorf("position %d: got %v, want %v", i, date, tt.want[i])
				}
			}
		})
	}
}

func TestDateString(t *testing.T) {
	got := DateString(time.Date(2025, time.January, 5, 23, 59, 0, 0, time.Local))
	if got != "2025-01-05" {
		t.Errorf("DateString() = %v, want 2025-01-05", got)
	}
}

func TestClockString(t *testing.T) {
	got := ClockString(time.Date(2025, time.January, 5, 9, 7, 0, 0, time.Local))
	if got != "09:07" {
		t.Errorf("ClockString() = %v, want 09:07", got)
	}
}
