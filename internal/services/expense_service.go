package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultRecentExpenseLimit bounds the recent-expenses widget on the dashboard
const DefaultRecentExpenseLimit = 5

// ValidationError carries field-level validation failures out of the service
// layer so handlers can render them without re-validating
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return "validation failed: " + strings.Join(fields, ", ")
}

// ExpenseService handles expense mutations and queries for a single owner
type ExpenseService struct {
	expenseRepo  repositories.ExpenseRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseServiceInterface {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// AddExpense records a new expense for the given owner
func (s *ExpenseService) AddExpense(userID uuid.UUID, req *dto.ExpenseRequest) (*models.Expense, error) {
	parsed, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(parsed.categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, repositories.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	expense := &models.Expense{
		UserID:      userID,
		CategoryID:  parsed.categoryID,
		Amount:      parsed.amount,
		Description: req.Description,
		Date:        parsed.date,
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.metrics.IncrementCounter("expense_mutation", map[string]string{"action": "add"})
	s.logger.Info("expense added",
		"expense_id", expense.ID,
		"user_id", userID,
		"amount", expense.Amount.String())

	return s.reloadWithCategory(expense)
}

// EditExpense replaces the mutable fields of an expense owned by the user
func (s *ExpenseService) EditExpense(expenseID, userID uuid.UUID, req *dto.ExpenseRequest) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByIDForUser(expenseID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, repositories.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	parsed, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(parsed.categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, repositories.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	expense.CategoryID = parsed.categoryID
	expense.Amount = parsed.amount
	expense.Description = req.Description
	expense.Date = parsed.date

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.metrics.IncrementCounter("expense_mutation", map[string]string{"action": "edit"})
	s.logger.Info("expense edited",
		"expense_id", expense.ID,
		"user_id", userID)

	return s.reloadWithCategory(expense)
}

// DeleteExpense removes an expense owned by the user
func (s *ExpenseService) DeleteExpense(expenseID, userID uuid.UUID) error {
	expense, err := s.expenseRepo.GetByIDForUser(expenseID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return repositories.ErrExpenseNotFound
		}
		return fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.expenseRepo.Delete(expense.ID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.metrics.IncrementCounter("expense_mutation", map[string]string{"action": "delete"})
	s.logger.Info("expense deleted",
		"expense_id", expense.ID,
		"user_id", userID)

	return nil
}

// GetExpense returns a single expense owned by the user
func (s *ExpenseService) GetExpense(expenseID, userID uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByIDForUser(expenseID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, repositories.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// GetExpenses returns the filtered selection plus its total row count
func (s *ExpenseService) GetExpenses(filters models.ExpenseFilters) ([]models.Expense, int64, error) {
	start := time.Now()

	expenses, total, err := s.expenseRepo.GetWithFilters(filters)
	if err != nil {
		return nil, 0, err
	}

	s.metrics.RecordProcessingTime("expense_query", time.Since(start))

	return expenses, total, nil
}

// GetRecentExpenses returns the user's most recent expenses by date
func (s *ExpenseService) GetRecentExpenses(userID uuid.UUID, limit int) ([]models.Expense, error) {
	if limit <= 0 {
		limit = DefaultRecentExpenseLimit
	}

	expenses, err := s.expenseRepo.GetRecentByUserID(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent expenses: %w", err)
	}
	return expenses, nil
}

type parsedExpenseRequest struct {
	categoryID uuid.UUID
	amount     decimal.Decimal
	date       time.Time
}

// parseRequest converts the wire representation into typed values, collecting
// every field failure instead of stopping at the first
func (s *ExpenseService) parseRequest(req *dto.ExpenseRequest) (*parsedExpenseRequest, error) {
	fields := make(map[string]string)
	parsed := &parsedExpenseRequest{}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		fields["category_id"] = "must be a valid category ID"
	} else {
		parsed.categoryID = categoryID
	}

	amount, err := decimal.NewFromString(req.Amount)
	switch {
	case err != nil:
		fields["amount"] = "must be a decimal number"
	case amount.LessThanOrEqual(decimal.Zero):
		fields["amount"] = "must be greater than zero"
	case amount.GreaterThan(models.MaxExpenseAmount):
		fields["amount"] = "exceeds the maximum allowed amount"
	case amount.Exponent() < -2:
		fields["amount"] = "must have at most two decimal places"
	default:
		parsed.amount = amount
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		fields["date"] = "must be a date in YYYY-MM-DD format"
	} else {
		parsed.date = date
	}

	if len(req.Description) > 500 {
		fields["description"] = "must not exceed 500 characters"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return parsed, nil
}

func (s *ExpenseService) reloadWithCategory(expense *models.Expense) (*models.Expense, error) {
	loaded, err := s.expenseRepo.GetByID(expense.ID)
	if err != nil {
		// The write succeeded; serve the in-memory copy rather than failing
		s.logger.Warn("failed to reload expense with category",
			"error", err,
			"expense_id", expense.ID)
		return expense, nil
	}
	return loaded, nil
}
