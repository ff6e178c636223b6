package services

import (
	"math"

	"github.com/anonto42/nano-social/backend/internal/repositories"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50

	// MaxPageNumber keeps the row offset of any page within an int32
	MaxPageNumber = math.MaxInt32 / MaxPageSize
)

// Page is a 1-based page request
type Page struct {
	Number int
	Size   int
}

// NewPage normalizes client input: pages start at 1, a missing or
// non-positive size falls back to DefaultPageSize and oversized requests are
// clamped to MaxPageSize. Page numbers past MaxPageNumber are clamped too.
func NewPage(number, size int) Page {
	switch {
	case number < 1:
		number = 1
	case number > MaxPageNumber:
		number = MaxPageNumber
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) window() repositories.Pagination {
	return repositories.Pagination{Offset: (p.Number - 1) * p.Size, Limit: p.Size}
}

// PageResult is one page of a larger ordered result
type PageResult[T any] struct {
	Items []T
	Page  Page
	Total int64
}

func (r PageResult[T]) TotalPages() int {
	if r.Page.Size == 0 {
		return 0
	}
	return int((r.Total + int64(r.Page.Size) - 1) / int64(r.Page.Size))
}

func (r PageResult[T]) HasNext() bool { return r.Page.Number < r.TotalPages() }

func (r PageResult[T]) HasPrevious() bool { return r.Page.Number > 1 }

func newPageResult[T any](items []T, page Page, total int64) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{Items: items, Page: page, Total: total}
}
