package service

import (
	"testing"
	"time"
)

func TestResolveTargetDueDate(t *testing.T) {
	now := time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		targetMonth string
		want        time.Time
		wantErr     bool
	}{
		{
			name:        "empty defaults to next month",
			targetMonth: "",
			want:        time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "explicit month",
			targetMonth: "2026-11",
			want:        time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "past month is accepted",
			targetMonth: "2026-01",
			want:        time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "malformed month",
			targetMonth: "noviembre",
			wantErr:     true,
		},
		{
			name:        "wrong layout",
			targetMonth: "11-2026",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTargetDueDate(tt.targetMonth, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveTargetDueDate(%q) expected error", tt.targetMonth)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveTargetDueDate(%q) error = %v", tt.targetMonth, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ResolveTargetDueDate(%q) = %v, want %v", tt.targetMonth, got, tt.want)
			}
		})
	}
}

func TestResolveTargetDueDateYearRollover(t *testing.T) {
	now := time.Date(2026, time.December, 15, 0, 0, 0, 0, time.UTC)
	got, err := ResolveTargetDueDate("", now)
	if err != nil {
		t.Fatalf("ResolveTargetDueDate() error = %v", err)
	}
	want := time.Date(2027, time.January, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ResolveTargetDueDate() = %v, want %v", got, want)
	}
}

func TestResolveTargetDueDateMonthEnd(t *testing.T) {
	// Days 29-31 of a long month must still target the immediately following
	// month, even when that month is shorter.
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "jan 31 targets february",
			now:  time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "jan 29 targets february",
			now:  time.Date(2026, time.January, 29, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "mar 31 targets april",
			now:  time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "dec 31 targets january",
			now:  time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2027, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTargetDueDate("", tt.now)
			if err != nil {
				t.Fatalf("ResolveTargetDueDate() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ResolveTargetDueDate() = %v, want %v", got, tt.want)
			}
		})
	}
}
