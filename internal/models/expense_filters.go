package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDateRange   = errors.New("date_from must not be after date_to")
	ErrInvalidAmountRange = errors.New("amount_min must not exceed amount_max")
	ErrInvalidSortKey     = errors.New("invalid sort key")
)

// SortKey identifies one of the supported orderings for expense queries
type SortKey string

const (
	SortDateDesc     SortKey = "-date"
	SortDateAsc      SortKey = "date"
	SortAmountDesc   SortKey = "-amount"
	SortAmountAsc    SortKey = "amount"
	SortCategoryAsc  SortKey = "category"
	SortCategoryDesc SortKey = "-category"

	DefaultSortKey = SortDateDesc
)

// AllSortKeys returns every supported sort key
func AllSortKeys() []SortKey {
	return []SortKey{
		SortDateDesc,
		SortDateAsc,
		SortAmountDesc,
		SortAmountAsc,
		SortCategoryAsc,
		SortCategoryDesc,
	}
}

// IsValidSortKey checks if a sort key string is supported
func IsValidSortKey(key string) bool {
	for _, valid := range AllSortKeys() {
		if SortKey(key) == valid {
			return true
		}
	}
	return false
}

// OrderClause maps the sort key to an explicit SQL ORDER BY clause.
// Amount and category orderings use date descending as a tiebreaker so
// the result order stays deterministic.
func (k SortKey) OrderClause() string {
	switch k {
	case SortDateAsc:
		return "expenses.date ASC, expenses.created_at ASC"
	case SortAmountDesc:
		return "expenses.amount DESC, expenses.date DESC"
	case SortAmountAsc:
		return "expenses.amount ASC, expenses.date DESC"
	case SortCategoryAsc:
		return "expense_categories.name ASC, expenses.date DESC"
	case SortCategoryDesc:
		return "expense_categories.name DESC, expenses.date DESC"
	default:
		return "expenses.date DESC, expenses.created_at DESC"
	}
}

// RequiresCategoryJoin reports whether ordering needs the category table joined
func (k SortKey) RequiresCategoryJoin() bool {
	return k == SortCategoryAsc || k == SortCategoryDesc
}

// ExpenseFilters contains filtering options for expense queries.
// All criteria are optional and combined with AND; UserID is always required.
type ExpenseFilters struct {
	UserID     uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	CategoryID *uuid.UUID
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
	Search     string
	SortBy     SortKey
}

// Validate checks range consistency and the sort key
func (f *ExpenseFilters) Validate() error {
	if f.UserID == uuid.Nil {
		return ErrUserRequired
	}

	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return ErrInvalidDateRange
	}

	if f.AmountMin != nil && f.AmountMax != nil && f.AmountMin.GreaterThan(*f.AmountMax) {
		return ErrInvalidAmountRange
	}

	if f.SortBy != "" && !IsValidSortKey(string(f.SortBy)) {
		return ErrInvalidSortKey
	}

	return nil
}

// EffectiveSortKey returns the sort key to use, falling back to the default
func (f *ExpenseFilters) EffectiveSortKey() SortKey {
	if f.SortBy == "" {
		return DefaultSortKey
	}
	return f.SortBy
}

// Period is a named date-range shortcut relative to an evaluation instant
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// DateRange resolves the period to [start, now]. Week looks back seven
// days; month, quarter and year snap to the start of the containing
// calendar unit. Unknown periods fall back to the last 30 days.
func (p Period) DateRange(now time.Time) (time.Time, time.Time) {
	var start time.Time
	switch p {
	case PeriodWeek:
		start = now.AddDate(0, 0, -7)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodQuarter:
		quarterStart := time.Month((int(now.Month())-1)/3*3 + 1)
		start = time.Date(now.Year(), quarterStart, 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		start = now.AddDate(0, 0, -30)
	}
	return start, now
}
