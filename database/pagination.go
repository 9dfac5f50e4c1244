package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage            = 1
	DefaultProjectPageSize = 12
	DefaultPageSize        = 10
)

// PageRequest is a 1-based page selection. Values below 1 fall back to the defaults.
type PageRequest struct {
	Page     int
	PageSize int
}

func (p PageRequest) normalize(defaultSize int) PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	return p
}

// Page is one slice of a filtered, ordered result set.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func lastPage(total int64, pageSize int) int {
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func newPage[T any](items []T, total int64, req PageRequest) Page[T] {
	totalPages := lastPage(total, req.PageSize)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Total:       total,
		Page:        req.Page,
		PageSize:    req.PageSize,
		TotalPages:  totalPages,
		HasNext:     req.Page < totalPages,
		HasPrevious: req.Page > 1,
	}
}

// MapPage converts the items of a page, keeping its counters.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{
		Items:       items,
		Total:       p.Total,
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalPages:  p.TotalPages,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
	}
}

// paginate counts query, then loads the requested slice in the given order. Preloads belong in
// scopes so they only run for the item query.
func paginate[T any](ctx context.Context, query *gorm.DB, req PageRequest, defaultSize int, order string, scopes ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	req = req.normalize(defaultSize)

	var total int64
	if err := query.Session(&gorm.Session{}).WithContext(ctx).Count(&total).Error; err != nil {
		return Page[T]{}, fmt.Errorf("count: %w", err)
	}
	// a page past the end serves the last page
	if last := lastPage(total, req.PageSize); last > 0 && req.Page > last {
		req.Page = last
	}

	var items []T
	err := query.Session(&gorm.Session{}).WithContext(ctx).
		Scopes(scopes...).
		Order(order).
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&items).Error
	if err != nil {
		return Page[T]{}, fmt.Errorf("find page: %w", err)
	}
	return newPage(items, total, req), nil
}

// likePattern builds a lower-cased %term% pattern with LIKE wildcards escaped.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// ilike matches any of columns case-insensitively against term.
func ilike(query *gorm.DB, term string, columns ...string) *gorm.DB {
	pattern := likePattern(term)
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		clauses[i] = fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col)
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
