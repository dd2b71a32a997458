package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DefaultPageSize là số items mỗi trang của các list công khai
const DefaultPageSize = 5

// ErrInvalidPage trả về khi ?page không phải số nguyên dương
var ErrInvalidPage = errors.New("page must be a positive integer")

// Page là một trang kết quả cùng context phân trang
type Page[T any] struct {
	Items       []T   `json:"items"`
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	IsPaginated bool  `json:"is_paginated"`
}

// New tạo Page từ items của trang hiện tại và tổng số items.
// Luôn có ít nhất 1 trang (trang rỗng khi không có dữ liệu).
func New[T any](items []T, page, pageSize int, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 1
	if pageSize > 0 && total > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	return &Page[T]{
		Items:       items,
		Page:        page,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
		IsPaginated: total > int64(pageSize),
	}
}

// Offset tính OFFSET cho page (1-based).
// Page quá lớn (nhân ra tràn int) trả về math.MaxInt, tức là trang rỗng.
func Offset(page, pageSize int) int {
	if page < 1 || pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

// ParsePage đọc giá trị ?page, rỗng thì mặc định 1
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, ErrInvalidPage
	}
	return page, nil
}

// ParseLimit đọc ?limit cho các list admin, clamp về [1, max]
func ParseLimit(raw string, def, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	if limit > max {
		limit = max
	}
	return limit, nil
}
