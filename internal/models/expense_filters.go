package models

import (
	"time"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ExpenseFilters contains filtering and pagination options for expense
// listing queries.
type ExpenseFilters struct {
	StartDate        *time.Time
	EndDate          *time.Time
	SystemCategoryID *uint
	UserCategoryID   *uint
	Type             string
	Page             int
	PerPage          int
}

// Normalize clamps pagination to sane bounds: page at least 1 and
// per_page between 1 and MaxPageSize, with DefaultPageSize when unset.
func (f *ExpenseFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}

	// Zero means the caller did not choose a page size; anything below
	// one clamps to the smallest valid page rather than the default
	if f.PerPage == 0 {
		f.PerPage = DefaultPageSize
	}
	if f.PerPage < 1 {
		f.PerPage = 1
	}
	if f.PerPage > MaxPageSize {
		f.PerPage = MaxPageSize
	}
}

// Offset returns the row offset for the normalized page.
func (f *ExpenseFilters) Offset() int {
	return (f.Page - 1) * f.PerPage
}
