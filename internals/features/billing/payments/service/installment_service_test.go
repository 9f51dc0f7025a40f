package service

import (
	"testing"
	"time"
)

func TestSplitInstallments(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		count int
		want  []int64
	}{
		{"even split", 300000, 3, []int64{100000, 100000, 100000}},
		{"last absorbs remainder", 100, 3, []int64{33, 33, 34}},
		{"single installment", 250000, 1, []int64{250000}},
		{"remainder of one", 1000001, 2, []int64{500000, 500001}},
		{"total smaller than count", 2, 3, []int64{0, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitInstallments(tt.total, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			var sum int64
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("part[%d] = %d, want %d", i, got[i], tt.want[i])
				}
				sum += got[i]
			}
			if sum != tt.total {
				t.Errorf("sum = %d, want %d", sum, tt.total)
			}
		})
	}
}

func TestInstallmentDueDate(t *testing.T) {
	loc := time.UTC
	start := time.Date(2026, time.January, 20, 0, 0, 0, 0, loc)

	tests := []struct {
		n    int
		want time.Time
	}{
		{0, time.Date(2026, time.January, 5, 0, 0, 0, 0, loc)},
		{1, time.Date(2026, time.February, 5, 0, 0, 0, 0, loc)},
		{2, time.Date(2026, time.March, 5, 0, 0, 0, 0, loc)},
		// Month arithmetic rolls over the year boundary.
		{12, time.Date(2027, time.January, 5, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		got := InstallmentDueDate(start, tt.n)
		if !got.Equal(tt.want) {
			t.Errorf("InstallmentDueDate(n=%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestInstallmentDueDateAlwaysOnBillingDay(t *testing.T) {
	start := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)
	for n := 0; n < 24; n++ {
		if d := InstallmentDueDate(start, n); d.Day() != BillingDay {
			t.Fatalf("n=%d: day = %d, want %d", n, d.Day(), BillingDay)
		}
	}
}
