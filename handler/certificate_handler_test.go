package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"main/dto"

	"github.com/gin-gonic/gin"
)

func bindListQuery(t *testing.T, rawQuery string) dto.CertificateListQuery {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/certificates?"+rawQuery, nil)

	var query dto.CertificateListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		t.Fatalf("ShouldBindQuery failed: %v", err)
	}
	return query
}

func TestNormalizeListQuery(t *testing.T) {
	tests := []struct {
		name      string
		rawQuery  string
		wantPage  int
		wantLimit int
	}{
		{"Defaults When Absent", "", 1, 10},
		{"Explicit Values Kept", "page=3&limit=25", 3, 25},
		{"Zero Limit Clamped", "limit=0", 1, 10},
		{"Negative Page Clamped", "page=-2&limit=5", 1, 5},
		{"Oversized Limit Clamped", "limit=5000", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := bindListQuery(t, tt.rawQuery)
			normalizeListQuery(&query)

			if query.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", query.Page, tt.wantPage)
			}
			if query.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", query.Limit, tt.wantLimit)
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		want  int64
	}{
		{"Empty", 0, 10, 0},
		{"Exact Fit", 30, 10, 3},
		{"Partial Last Page", 31, 10, 4},
		{"Single Row", 1, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageCount(tt.total, tt.limit); got != tt.want {
				t.Errorf("pageCount(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}
