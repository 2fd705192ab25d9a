package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func pageContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/topics"+query, nil)
	return c
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=3", 3},
		{"?page=0", 1},
		{"?page=-2", 1},
		{"?page=abc", 1},
	}
	for _, tt := range tests {
		c := pageContext(t, tt.query)
		if got := ParsePageParam(c); got != tt.want {
			t.Errorf("query %q: expected page %d, got %d", tt.query, tt.want, got)
		}
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalItems int64
		size       int
		want       int
	}{
		{"within range", 2, 20, 5, 2},
		{"past end serves last page", 9, 20, 5, 4},
		{"empty collection serves page 1", 3, 0, 5, 1},
		{"sub-1 page serves page 1", 0, 20, 5, 1},
		{"exact boundary", 4, 20, 5, 4},
	}
	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.totalItems, tt.size); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestTotalPages(t *testing.T) {
	if got := TotalPages(21, 5); got != 5 {
		t.Errorf("21 items at 5 per page: expected 5 pages, got %d", got)
	}
	if got := TotalPages(20, 5); got != 4 {
		t.Errorf("20 items at 5 per page: expected 4 pages, got %d", got)
	}
	if got := TotalPages(0, 5); got != 0 {
		t.Errorf("empty collection: expected 0 pages, got %d", got)
	}
}

func TestOffsetLimit(t *testing.T) {
	offset, limit := OffsetLimit(3, TopicPageSize)
	if offset != 10 || limit != 5 {
		t.Errorf("page 3: expected offset 10 limit 5, got offset %d limit %d", offset, limit)
	}
	offset, limit = OffsetLimit(0, ReplyPageSize)
	if offset != 0 || limit != 6 {
		t.Errorf("page 0: expected offset 0 limit 6, got offset %d limit %d", offset, limit)
	}
}

func TestNewPaginationInfoEmptyCollection(t *testing.T) {
	info := NewPaginationInfo(0, 1, AnnouncementPageSize)
	if info.TotalPages != 1 {
		t.Errorf("empty collection: expected 1 total page, got %d", info.TotalPages)
	}
	if info.CurrentPage != 1 {
		t.Errorf("empty collection: expected current page 1, got %d", info.CurrentPage)
	}
	if info.TotalItems != 0 {
		t.Errorf("expected 0 total items, got %d", info.TotalItems)
	}
}
