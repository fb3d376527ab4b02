package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCategoryNameTaken = errors.New("a category with this name already exists")
)

// CategoryService manages the shared expense category catalogue
type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &CategoryService{
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// ListCategories returns the full catalogue ordered by name
func (s *CategoryService) ListCategories() ([]models.ExpenseCategory, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategory returns a single category by ID
func (s *CategoryService) GetCategory(id uuid.UUID) (*models.ExpenseCategory, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, repositories.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// CreateCategory adds a new category to the catalogue
func (s *CategoryService) CreateCategory(req *dto.CategoryRequest) (*models.ExpenseCategory, error) {
	name := strings.TrimSpace(req.Name)

	category := &models.ExpenseCategory{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, repositories.ErrCategoryAlreadyExists) {
			return nil, ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.metrics.IncrementCounter("category_created", nil)
	s.logger.Info("category created",
		"category_id", category.ID,
		"name", category.Name)

	return category, nil
}

// UpdateCategory renames or re-describes an existing category
func (s *CategoryService) UpdateCategory(id uuid.UUID, req *dto.CategoryRequest) (*models.ExpenseCategory, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, repositories.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name != category.Name {
		existing, err := s.categoryRepo.GetByName(name)
		if err != nil && !errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		if existing != nil && existing.ID != category.ID {
			return nil, ErrCategoryNameTaken
		}
	}

	category.Name = name
	category.Description = strings.TrimSpace(req.Description)

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, repositories.ErrCategoryAlreadyExists) {
			return nil, ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.logger.Info("category updated",
		"category_id", category.ID,
		"name", category.Name)

	return category, nil
}

// DeleteCategory removes a category and every expense recorded against it
func (s *CategoryService) DeleteCategory(id uuid.UUID) error {
	expenseCount, err := s.categoryRepo.CountExpenses(id)
	if err != nil {
		return fmt.Errorf("failed to count category expenses: %w", err)
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return repositories.ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.metrics.IncrementCounter("category_deleted", nil)
	s.logger.Info("category deleted",
		"category_id", id,
		"cascaded_expenses", expenseCount)

	return nil
}
