package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cid2105/virtual-greek/internal/app/models/dto" // Import DTO for PaginationInfo
)

// Fixed page sizes per collection type. These are independent constants, never
// user-configurable.
const (
	AnnouncementPageSize = 4
	TopicPageSize        = 5
	ConversationPageSize = 5
	ReplyPageSize        = 6
	MessagePageSize      = 6
	PhotoPageSize        = 9

	DefaultPage = 1 // Default page is 1-based
)

// ParsePageParam extracts the 1-based page number from the request. A missing,
// non-numeric, or sub-1 value serves page 1.
func ParsePageParam(c *gin.Context) int {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}

// ClampPage clamps a requested 1-based page number against the collection: a
// page past the end serves the last page, and an empty collection serves page 1.
func ClampPage(page int, totalItems int64, size int) int {
	if page < 1 {
		page = DefaultPage
	}
	totalPages := TotalPages(totalItems, size)
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}

// TotalPages computes the page count for a collection of totalItems
func TotalPages(totalItems int64, size int) int {
	if size <= 0 || totalItems <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(size)))
}

// OffsetLimit converts a clamped 1-based page into SQL offset and limit
func OffsetLimit(page, size int) (offset uint64, limit int) {
	if page < 1 {
		page = DefaultPage
	}
	return uint64((page - 1) * size), size
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based, already clamped page number.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	totalPages := TotalPages(totalItems, size)
	if totalPages == 0 && page == 1 {
		totalPages = 1
	}

	currentPage := page
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}
