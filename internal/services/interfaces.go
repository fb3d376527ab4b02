package services

import (
	"io"
	"time"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/models"

	"github.com/google/uuid"
)

// AuthServiceInterface defines the contract for authentication operations
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error)
}

// TokenServiceInterface defines the contract for JWT handling
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface defines the contract for password handling
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
	PasswordStrength(password string) int
	UpdatePassword(userID uuid.UUID, currentPassword, newPassword string) error
}

// CategoryServiceInterface defines the contract for category catalogue management
type CategoryServiceInterface interface {
	ListCategories() ([]models.ExpenseCategory, error)
	GetCategory(id uuid.UUID) (*models.ExpenseCategory, error)
	CreateCategory(req *dto.CategoryRequest) (*models.ExpenseCategory, error)
	UpdateCategory(id uuid.UUID, req *dto.CategoryRequest) (*models.ExpenseCategory, error)
	DeleteCategory(id uuid.UUID) error
}

// ExpenseServiceInterface defines the contract for expense mutations and queries
type ExpenseServiceInterface interface {
	AddExpense(userID uuid.UUID, req *dto.ExpenseRequest) (*models.Expense, error)
	EditExpense(expenseID, userID uuid.UUID, req *dto.ExpenseRequest) (*models.Expense, error)
	DeleteExpense(expenseID, userID uuid.UUID) error
	GetExpense(expenseID, userID uuid.UUID) (*models.Expense, error)
	GetExpenses(filters models.ExpenseFilters) ([]models.Expense, int64, error)
	GetRecentExpenses(userID uuid.UUID, limit int) ([]models.Expense, error)
}

// StatisticsServiceInterface computes aggregates over a selection of expenses.
// Every method is a pure computation: the selection and the evaluation
// instant come in as parameters, and no request state is consulted.
type StatisticsServiceInterface interface {
	Summarize(expenses []models.Expense) models.ExpenseSummary
	CompareMonths(expenses []models.Expense, now time.Time) models.MonthlyComparison
	DailyTrend(expenses []models.Expense, now time.Time) []models.TrendPoint
	WeeklyTrend(expenses []models.Expense, now time.Time) []models.TrendPoint
	MonthlyTrend(expenses []models.Expense, now time.Time) []models.TrendPoint
	CategoryDistribution(expenses []models.Expense) []models.CategoryBreakdown
	TopCategories(expenses []models.Expense, limit int) []models.TopCategory
	BuildChartData(expenses []models.Expense, now time.Time) models.ChartData
}

// ExportServiceInterface renders expense selections into downloadable formats
type ExportServiceInterface interface {
	WriteCSV(w io.Writer, expenses []models.Expense) error
	ExportCSV(expenses []models.Expense) ([]byte, error)
	Filename(owner string, now time.Time) string
}

// MetricsRecorderInterface abstracts the metrics backend
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
}
