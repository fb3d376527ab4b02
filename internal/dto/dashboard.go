package dto

import "expense-tracker-api/internal/models"

// DashboardResponse bundles the filtered expense selection with every
// aggregate the dashboard renders
type DashboardResponse struct {
	Expenses          []ExpenseResponse        `json:"expenses"`
	Total             int64                    `json:"total"`
	Summary           models.ExpenseSummary    `json:"summary"`
	MonthlyComparison models.MonthlyComparison `json:"monthlyComparison"`
	ChartData         models.ChartData         `json:"chartData"`
	TopCategories     []models.TopCategory     `json:"topCategories"`
	RecentExpenses    []ExpenseResponse        `json:"recentExpenses"`
}
