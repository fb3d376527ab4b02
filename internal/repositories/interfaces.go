package repositories

import (
	"expense-tracker-api/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePasswordHash(userID uuid.UUID, passwordHash string) error
	UpdateFailedLoginAttempts(user *models.User) error
	ResetFailedLoginAttempts(userID uuid.UUID) error
	UnlockAccount(userID uuid.UUID) error
	Delete(userID uuid.UUID) error
	ListUsers(offset, limit int) ([]*models.User, int64, error)
}

// CategoryRepositoryInterface defines the contract for expense category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.ExpenseCategory) error
	GetByID(id uuid.UUID) (*models.ExpenseCategory, error)
	GetByName(name string) (*models.ExpenseCategory, error)
	GetAll() ([]models.ExpenseCategory, error)
	Update(category *models.ExpenseCategory) error
	Delete(id uuid.UUID) error
	CountExpenses(categoryID uuid.UUID) (int64, error)
}

// ExpenseRepositoryInterface defines the contract for expense repository operations
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	GetByID(id uuid.UUID) (*models.Expense, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Expense, error)
	GetByUserID(userID uuid.UUID) ([]models.Expense, error)
	GetWithFilters(filters models.ExpenseFilters) ([]models.Expense, int64, error)
	GetRecentByUserID(userID uuid.UUID, limit int) ([]models.Expense, error)
	Update(expense *models.Expense) error
	Delete(id uuid.UUID) error
	CountByUserID(userID uuid.UUID) (int64, error)
}
