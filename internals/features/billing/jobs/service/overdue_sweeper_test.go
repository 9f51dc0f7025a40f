package service

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.July, d, 9, 30, 0, 0, time.UTC)
}

func TestSweepGuardActive(t *testing.T) {
	tests := []struct {
		day  int
		want bool
	}{
		{1, true},
		{4, true},
		{5, true},
		{6, false},
		{15, false},
		{31, false},
	}

	for _, tt := range tests {
		if got := SweepGuardActive(day(tt.day)); got != tt.want {
			t.Errorf("SweepGuardActive(day %d) = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestWindowBounds(t *testing.T) {
	from, to := WindowBounds(day(20))

	wantFrom := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC)

	if !from.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", from, wantFrom)
	}
	if !to.Equal(wantTo) {
		t.Errorf("to = %v, want %v", to, wantTo)
	}
}

func TestWindowBoundsStaysInCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.February, 28, 23, 59, 0, 0, time.UTC)
	from, to := WindowBounds(now)
	if from.Month() != time.February || to.Month() != time.February {
		t.Errorf("window crossed month boundary: from=%v to=%v", from, to)
	}
}
