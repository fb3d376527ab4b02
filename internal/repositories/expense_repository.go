package repositories

import (
	"errors"
	"fmt"
	"strings"

	"expense-tracker-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// expenseRepository implements ExpenseRepositoryInterface
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{
		db: db,
	}
}

// Create creates a new expense
func (r *expenseRepository) Create(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetByID retrieves an expense by ID
func (r *expenseRepository) GetByID(id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.Preload("Category").First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &expense, nil
}

// GetByIDForUser retrieves an expense scoped to its owner.
// A record owned by someone else is indistinguishable from a missing one.
func (r *expenseRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense for user: %w", err)
	}

	return &expense, nil
}

// GetByUserID retrieves all expenses for a user, newest first
func (r *expenseRepository) GetByUserID(userID uuid.UUID) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Preload("Category").
		Where("user_id = ?", userID).
		Order(models.DefaultSortKey.OrderClause()).
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses by user: %w", err)
	}

	return expenses, nil
}

// GetWithFilters retrieves expenses matching the filter criteria.
// Criteria are AND-combined and always scoped to the owning user.
func (r *expenseRepository) GetWithFilters(filters models.ExpenseFilters) ([]models.Expense, int64, error) {
	if err := filters.Validate(); err != nil {
		return nil, 0, err
	}

	var expenses []models.Expense
	var total int64

	sortKey := filters.EffectiveSortKey()

	query := r.db.Model(&models.Expense{}).
		Where("expenses.user_id = ?", filters.UserID)

	// Searching and category-name ordering both need the category table
	if filters.Search != "" || sortKey.RequiresCategoryJoin() {
		query = query.Joins("INNER JOIN expense_categories ON expense_categories.id = expenses.category_id")
	}

	if filters.DateFrom != nil {
		query = query.Where("expenses.date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("expenses.date <= ?", *filters.DateTo)
	}
	if filters.CategoryID != nil {
		query = query.Where("expenses.category_id = ?", *filters.CategoryID)
	}
	if filters.AmountMin != nil {
		query = query.Where("expenses.amount >= ?", *filters.AmountMin)
	}
	if filters.AmountMax != nil {
		query = query.Where("expenses.amount <= ?", *filters.AmountMax)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(expenses.description) LIKE ? OR LOWER(expense_categories.name) LIKE ?",
			pattern, pattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered expenses: %w", err)
	}

	if err := query.Preload("Category").
		Order(sortKey.OrderClause()).
		Find(&expenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered expenses: %w", err)
	}

	return expenses, total, nil
}

// GetRecentByUserID retrieves the most recent expenses for a user
func (r *expenseRepository) GetRecentByUserID(userID uuid.UUID, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Preload("Category").
		Where("user_id = ?", userID).
		Order(models.DefaultSortKey.OrderClause()).
		Limit(limit).
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent expenses: %w", err)
	}

	return expenses, nil
}

// Update updates an expense
func (r *expenseRepository) Update(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.Save(expense).Error; err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

// Delete removes an expense
func (r *expenseRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Expense{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// CountByUserID counts all expenses owned by a user
func (r *expenseRepository) CountByUserID(userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	return count, nil
}
