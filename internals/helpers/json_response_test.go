package helper

import "testing"

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		page           int
		perPage        int
		wantTotalPages int
		wantHasNext    bool
		wantHasPrev    bool
	}{
		{"first of many", 95, 1, 20, 5, true, false},
		{"middle page", 95, 3, 20, 5, true, true},
		{"last page", 95, 5, 20, 5, false, true},
		{"empty result still has one page", 0, 1, 20, 1, false, false},
		{"exact multiple", 40, 2, 20, 2, false, true},
		{"defaults applied for zero inputs", 10, 0, 0, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPagination(tt.total, tt.page, tt.perPage)
			if got.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, tt.wantTotalPages)
			}
			if got.HasNext != tt.wantHasNext {
				t.Errorf("HasNext = %v, want %v", got.HasNext, tt.wantHasNext)
			}
			if got.HasPrev != tt.wantHasPrev {
				t.Errorf("HasPrev = %v, want %v", got.HasPrev, tt.wantHasPrev)
			}
			if got.Total != tt.total {
				t.Errorf("Total = %d, want %d", got.Total, tt.total)
			}
		})
	}
}

func TestStatusToErrorCode(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{400, "BAD_REQUEST"},
		{401, "UNAUTHORIZED"},
		{403, "FORBIDDEN"},
		{404, "NOT_FOUND"},
		{409, "CONFLICT"},
		{422, "VALIDATION_ERROR"},
		{500, "INTERNAL_ERROR"},
		{503, "INTERNAL_ERROR"},
		{418, "ERROR"},
	}

	for _, tt := range tests {
		if got := statusToErrorCode(tt.status); got != tt.want {
			t.Errorf("statusToErrorCode(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}
