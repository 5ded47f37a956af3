package pagination_test

import (
	"net/http/httptest"
	"testing"

	"vnnews/internal/common/pagination"
)

func TestCalculateOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		page  int
		limit int
		want  int
	}{
		{name: "first page", page: 1, limit: 20, want: 0},
		{name: "second page", page: 2, limit: 20, want: 20},
		{name: "third page with limit 10", page: 3, limit: 10, want: 20},
		{name: "large page number", page: 1000, limit: 20, want: 19980},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagination.CalculateOffset(tt.page, tt.limit)
			if got != tt.want {
				t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{name: "zero total", total: 0, limit: 20, want: 1},
		{name: "total less than limit", total: 10, limit: 20, want: 1},
		{name: "total equals limit", total: 20, limit: 20, want: 1},
		{name: "total one more than limit", total: 21, limit: 20, want: 2},
		{name: "large total", total: 10000, limit: 100, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagination.CalculateTotalPages(tt.total, tt.limit)
			if got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	cfg := pagination.DefaultConfig()

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 20},
		{name: "explicit page and limit", query: "page=3&limit=50", wantPage: 3, wantLimit: 50},
		{name: "zero page rejected", query: "page=0", wantErr: true},
		{name: "negative page rejected", query: "page=-1", wantErr: true},
		{name: "non-numeric limit rejected", query: "limit=abc", wantErr: true},
		{name: "limit above max rejected", query: "limit=101", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/articles?"+tt.query, nil)
			params, err := pagination.ParseQueryParams(r, cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if params.Page != tt.wantPage || params.Limit != tt.wantLimit {
				t.Errorf("params = %+v, want page %d limit %d", params, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestNewMetadata(t *testing.T) {
	t.Parallel()

	meta := pagination.NewMetadata(45, pagination.Params{Page: 2, Limit: 20})
	if meta.Total != 45 || meta.Page != 2 || meta.Limit != 20 || meta.TotalPages != 3 {
		t.Errorf("metadata = %+v", meta)
	}
}
