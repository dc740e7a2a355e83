// Package paging parses page/size/sort query parameters and builds the
// matching LIMIT/OFFSET and ORDER BY clauses.
package paging

import (
	"strconv"
	"strings"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Request is a zero-based page request.
type Request struct {
	Page int
	Size int
	Sort string
	Desc bool
}

// Getter matches drift's Context.QueryParam and url.Values.Get.
type Getter func(key string) string

// Parse reads page, size and sort ("field" or "field,desc"). Invalid values
// fall back to defaults and size is clamped to maxSize.
func Parse(get Getter, defaultSize, maxSize int) Request {
	if defaultSize <= 0 {
		defaultSize = DefaultSize
	}
	if maxSize <= 0 {
		maxSize = MaxSize
	}

	r := Request{Page: 0, Size: defaultSize}
	if n, err := strconv.Atoi(get("page")); err == nil && n >= 0 {
		r.Page = n
	}
	if n, err := strconv.Atoi(get("size")); err == nil && n > 0 {
		r.Size = n
	}
	if r.Size > maxSize {
		r.Size = maxSize
	}

	if sort := strings.TrimSpace(get("sort")); sort != "" {
		field, dir, _ := strings.Cut(sort, ",")
		r.Sort = strings.TrimSpace(field)
		r.Desc = strings.EqualFold(strings.TrimSpace(dir), "desc")
	}
	return r
}

func (r Request) Offset() int {
	return r.Page * r.Size
}

// OrderBy maps the requested sort field through allowed (API field to SQL
// column). Unknown fields use fallback so user input never reaches SQL.
func (r Request) OrderBy(allowed map[string]string, fallback string) string {
	col, ok := allowed[r.Sort]
	if !ok {
		return fallback
	}
	if r.Desc {
		return col + " DESC"
	}
	return col + " ASC"
}

func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
