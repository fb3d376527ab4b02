package services

import (
	"io"
	"log/slog"
	"testing"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/repositories"
	"expense-tracker-api/internal/repositories/repository_mocks"
	"expense-tracker-api/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// CategoryServiceTestSuite defines the test suite for CategoryService
type CategoryServiceTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	mockCategoryRepo *repository_mocks.MockCategoryRepositoryInterface
	mockMetrics      *service_mocks.MockMetricsRecorderInterface
	service          CategoryServiceInterface
}

// SetupTest runs before each test
func (s *CategoryServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCategoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.mockMetrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.mockMetrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewCategoryService(s.mockCategoryRepo, s.mockMetrics, logger)
}

// TearDownTest runs after each test
func (s *CategoryServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestCategoryServiceSuite runs the test suite
func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}

// Test ListCategories
func (s *CategoryServiceTestSuite) TestListCategories_Success() {
	categories := []models.ExpenseCategory{
		{ID: uuid.New(), Name: "Food"},
		{ID: uuid.New(), Name: "Transport"},
	}

	s.mockCategoryRepo.EXPECT().GetAll().Return(categories, nil)

	result, err := s.service.ListCategories()
	s.NoError(err)
	s.Len(result, 2)
}

// Test GetCategory
func (s *CategoryServiceTestSuite) TestGetCategory_Success() {
	category := &models.ExpenseCategory{ID: uuid.New(), Name: "Food"}

	s.mockCategoryRepo.EXPECT().GetByID(category.ID).Return(category, nil)

	result, err := s.service.GetCategory(category.ID)
	s.NoError(err)
	s.Equal(category.Name, result.Name)
}

func (s *CategoryServiceTestSuite) TestGetCategory_NotFound() {
	id := uuid.New()

	s.mockCategoryRepo.EXPECT().GetByID(id).Return(nil, repositories.ErrCategoryNotFound)

	result, err := s.service.GetCategory(id)
	s.ErrorIs(err, repositories.ErrCategoryNotFound)
	s.Nil(result)
}

// Test CreateCategory
func (s *CategoryServiceTestSuite) TestCreateCategory_Success() {
	req := &dto.CategoryRequest{Name: "  Food  ", Description: "Meals and groceries"}

	s.mockCategoryRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(category *models.ExpenseCategory) error {
		s.Equal("Food", category.Name)
		s.Equal("Meals and groceries", category.Description)
		return nil
	})

	category, err := s.service.CreateCategory(req)
	s.NoError(err)
	s.Equal("Food", category.Name)
}

func (s *CategoryServiceTestSuite) TestCreateCategory_DuplicateName() {
	req := &dto.CategoryRequest{Name: "Food"}

	s.mockCategoryRepo.EXPECT().Create(gomock.Any()).Return(repositories.ErrCategoryAlreadyExists)

	category, err := s.service.CreateCategory(req)
	s.ErrorIs(err, ErrCategoryNameTaken)
	s.Nil(category)
}

func (s *CategoryServiceTestSuite) TestCreateCategory_EmptyName() {
	req := &dto.CategoryRequest{Name: "   "}

	category, err := s.service.CreateCategory(req)
	s.ErrorIs(err, models.ErrCategoryNameRequired)
	s.Nil(category)
}

// Test UpdateCategory
func (s *CategoryServiceTestSuite) TestUpdateCategory_Success() {
	existing := &models.ExpenseCategory{ID: uuid.New(), Name: "Food", Description: "old"}
	req := &dto.CategoryRequest{Name: "Groceries", Description: "new"}

	s.mockCategoryRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.mockCategoryRepo.EXPECT().GetByName("Groceries").Return(nil, repositories.ErrCategoryNotFound)
	s.mockCategoryRepo.EXPECT().Update(gomock.Any()).Return(nil)

	category, err := s.service.UpdateCategory(existing.ID, req)
	s.NoError(err)
	s.Equal("Groceries", category.Name)
	s.Equal("new", category.Description)
}

func (s *CategoryServiceTestSuite) TestUpdateCategory_NameTakenByOther() {
	existing := &models.ExpenseCategory{ID: uuid.New(), Name: "Food"}
	other := &models.ExpenseCategory{ID: uuid.New(), Name: "Transport"}
	req := &dto.CategoryRequest{Name: "Transport"}

	s.mockCategoryRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.mockCategoryRepo.EXPECT().GetByName("Transport").Return(other, nil)

	category, err := s.service.UpdateCategory(existing.ID, req)
	s.ErrorIs(err, ErrCategoryNameTaken)
	s.Nil(category)
}

func (s *CategoryServiceTestSuite) TestUpdateCategory_SameNameKept() {
	existing := &models.ExpenseCategory{ID: uuid.New(), Name: "Food", Description: "old"}
	req := &dto.CategoryRequest{Name: "Food", Description: "updated"}

	s.mockCategoryRepo.EXPECT().GetByID(existing.ID).Return(existing, nil)
	s.mockCategoryRepo.EXPECT().Update(gomock.Any()).Return(nil)

	category, err := s.service.UpdateCategory(existing.ID, req)
	s.NoError(err)
	s.Equal("updated", category.Description)
}

func (s *CategoryServiceTestSuite) TestUpdateCategory_NotFound() {
	id := uuid.New()
	req := &dto.CategoryRequest{Name: "Anything"}

	s.mockCategoryRepo.EXPECT().GetByID(id).Return(nil, repositories.ErrCategoryNotFound)

	category, err := s.service.UpdateCategory(id, req)
	s.ErrorIs(err, repositories.ErrCategoryNotFound)
	s.Nil(category)
}

// Test DeleteCategory
func (s *CategoryServiceTestSuite) TestDeleteCategory_Success() {
	id := uuid.New()

	s.mockCategoryRepo.EXPECT().CountExpenses(id).Return(int64(3), nil)
	s.mockCategoryRepo.EXPECT().Delete(id).Return(nil)

	err := s.service.DeleteCategory(id)
	s.NoError(err)
}

func (s *CategoryServiceTestSuite) TestDeleteCategory_NotFound() {
	id := uuid.New()

	s.mockCategoryRepo.EXPECT().CountExpenses(id).Return(int64(0), nil)
	s.mockCategoryRepo.EXPECT().Delete(id).Return(repositories.ErrCategoryNotFound)

	err := s.service.DeleteCategory(id)
	s.ErrorIs(err, repositories.ErrCategoryNotFound)
}
