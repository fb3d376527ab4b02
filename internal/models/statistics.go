package models

import "github.com/shopspring/decimal"

// ExpenseSummary contains aggregate figures for a selection of expenses
type ExpenseSummary struct {
	Count   int64           `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

// MonthlyComparison compares the current calendar month's spending against
// the previous month's, with a saturating percentage change
type MonthlyComparison struct {
	CurrentTotal  decimal.Decimal `json:"current_total"`
	PreviousTotal decimal.Decimal `json:"previous_total"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// TrendPoint is one bucket of a time-series aggregation
type TrendPoint struct {
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// CategoryBreakdown contains aggregated expense data for one category
type CategoryBreakdown struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
	Color        string          `json:"color"`
}

// TopCategory ranks a category by how often it is used
type TopCategory struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Count        int64  `json:"count"`
}

// ChartData bundles the chart series rendered on the dashboard
type ChartData struct {
	Daily        []TrendPoint        `json:"daily"`
	Weekly       []TrendPoint        `json:"weekly"`
	Monthly      []TrendPoint        `json:"monthly"`
	Distribution []CategoryBreakdown `json:"distribution"`
}
