package trends

import "testing"

func TestBuzzMeter(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 5},    // floor
		{1, 5},    // still floored
		{20, 50},  // midpoint
		{40, 100}, // saturation point
		{1000, 100},
		{-3, 5},
	}
	for _, tt := range tests {
		if got := BuzzMeter(tt.count); got != tt.want {
			t.Errorf("BuzzMeter(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestBuzzMeterMonotonic(t *testing.T) {
	prev := 0
	for count := 0; count <= 60; count++ {
		got := BuzzMeter(count)
		if got < prev {
			t.Fatalf("BuzzMeter(%d) = %d dipped below %d", count, got, prev)
		}
		prev = got
	}
}
