package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseFilters_Validate(t *testing.T) {
	userID := uuid.New()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	low := decimal.RequireFromString("10.00")
	high := decimal.RequireFromString("50.00")

	tests := []struct {
		name    string
		filters ExpenseFilters
		wantErr error
	}{
		{
			name:    "empty filters with owner",
			filters: ExpenseFilters{UserID: userID},
			wantErr: nil,
		},
		{
			name:    "missing owner",
			filters: ExpenseFilters{},
			wantErr: ErrUserRequired,
		},
		{
			name:    "valid date range",
			filters: ExpenseFilters{UserID: userID, DateFrom: &from, DateTo: &to},
			wantErr: nil,
		},
		{
			name:    "inverted date range",
			filters: ExpenseFilters{UserID: userID, DateFrom: &to, DateTo: &from},
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "equal date bounds",
			filters: ExpenseFilters{UserID: userID, DateFrom: &from, DateTo: &from},
			wantErr: nil,
		},
		{
			name:    "valid amount range",
			filters: ExpenseFilters{UserID: userID, AmountMin: &low, AmountMax: &high},
			wantErr: nil,
		},
		{
			name:    "inverted amount range",
			filters: ExpenseFilters{UserID: userID, AmountMin: &high, AmountMax: &low},
			wantErr: ErrInvalidAmountRange,
		},
		{
			name:    "valid sort key",
			filters: ExpenseFilters{UserID: userID, SortBy: SortAmountDesc},
			wantErr: nil,
		},
		{
			name:    "unknown sort key",
			filters: ExpenseFilters{UserID: userID, SortBy: SortKey("random")},
			wantErr: ErrInvalidSortKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filters.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSortKey_OrderClause(t *testing.T) {
	tests := []struct {
		key    SortKey
		clause string
	}{
		{SortDateDesc, "expenses.date DESC, expenses.created_at DESC"},
		{SortDateAsc, "expenses.date ASC, expenses.created_at ASC"},
		{SortAmountDesc, "expenses.amount DESC, expenses.date DESC"},
		{SortAmountAsc, "expenses.amount ASC, expenses.date DESC"},
		{SortCategoryAsc, "expense_categories.name ASC, expenses.date DESC"},
		{SortCategoryDesc, "expense_categories.name DESC, expenses.date DESC"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.clause, tt.key.OrderClause())
		})
	}
}

func TestSortKey_RequiresCategoryJoin(t *testing.T) {
	assert.True(t, SortCategoryAsc.RequiresCategoryJoin())
	assert.True(t, SortCategoryDesc.RequiresCategoryJoin())
	assert.False(t, SortDateDesc.RequiresCategoryJoin())
	assert.False(t, SortAmountAsc.RequiresCategoryJoin())
}

func TestIsValidSortKey(t *testing.T) {
	for _, key := range AllSortKeys() {
		assert.True(t, IsValidSortKey(string(key)))
	}
	assert.False(t, IsValidSortKey("balance"))
	assert.False(t, IsValidSortKey(""))
}

func TestPeriod_DateRange(t *testing.T) {
	// 2026-08-15 sits in Q3
	now := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		period Period
		start  time.Time
	}{
		{PeriodWeek, time.Date(2026, 8, 8, 10, 30, 0, 0, time.UTC)},
		{PeriodMonth, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodQuarter, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYear, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Period("unknown"), time.Date(2026, 7, 16, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			start, end := tt.period.DateRange(now)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, now, end)
		})
	}
}

func TestExpenseFilters_EffectiveSortKey(t *testing.T) {
	filters := ExpenseFilters{UserID: uuid.New()}
	assert.Equal(t, DefaultSortKey, filters.EffectiveSortKey())

	filters.SortBy = SortAmountAsc
	assert.Equal(t, SortAmountAsc, filters.EffectiveSortKey())
}
