package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/repositories"
	"expense-tracker-api/internal/repositories/repository_mocks"
	"expense-tracker-api/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// ExpenseServiceTestSuite defines the test suite for ExpenseService
type ExpenseServiceTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	mockExpenseRepo  *repository_mocks.MockExpenseRepositoryInterface
	mockCategoryRepo *repository_mocks.MockCategoryRepositoryInterface
	mockMetrics      *service_mocks.MockMetricsRecorderInterface
	service          ExpenseServiceInterface
	userID           uuid.UUID
	category         *models.ExpenseCategory
}

// SetupTest runs before each test
func (s *ExpenseServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockExpenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.mockCategoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.mockMetrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.mockMetrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.mockMetrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewExpenseService(s.mockExpenseRepo, s.mockCategoryRepo, s.mockMetrics, logger)

	s.userID = uuid.New()
	s.category = &models.ExpenseCategory{ID: uuid.New(), Name: "Food"}
}

// TearDownTest runs after each test
func (s *ExpenseServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestExpenseServiceSuite runs the test suite
func TestExpenseServiceSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func (s *ExpenseServiceTestSuite) validRequest() *dto.ExpenseRequest {
	return &dto.ExpenseRequest{
		CategoryID:  s.category.ID.String(),
		Amount:      "12.50",
		Description: "Lunch",
		Date:        "2026-08-15",
	}
}

// Test AddExpense
func (s *ExpenseServiceTestSuite) TestAddExpense_Success() {
	req := s.validRequest()

	s.mockCategoryRepo.EXPECT().GetByID(s.category.ID).Return(s.category, nil)
	s.mockExpenseRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(expense *models.Expense) error {
		s.Equal(s.userID, expense.UserID)
		s.Equal(s.category.ID, expense.CategoryID)
		s.True(expense.Amount.Equal(decimal.RequireFromString("12.50")))
		s.Equal("Lunch", expense.Description)
		expense.ID = uuid.New()
		return nil
	})
	s.mockExpenseRepo.EXPECT().GetByID(gomock.Any()).DoAndReturn(func(id uuid.UUID) (*models.Expense, error) {
		return &models.Expense{ID: id, UserID: s.userID, CategoryID: s.category.ID, Category: *s.category}, nil
	})

	expense, err := s.service.AddExpense(s.userID, req)
	s.NoError(err)
	s.Require().NotNil(expense)
	s.Equal("Food", expense.Category.Name)
}

func (s *ExpenseServiceTestSuite) TestAddExpense_InvalidAmount() {
	req := s.validRequest()
	req.Amount = "-5.00"

	expense, err := s.service.AddExpense(s.userID, req)
	s.Nil(expense)

	var validationErr *ValidationError
	s.ErrorAs(err, &validationErr)
	s.Contains(validationErr.Fields, "amount")
}

func (s *ExpenseServiceTestSuite) TestAddExpense_TooManyDecimalPlaces() {
	req := s.validRequest()
	req.Amount = "10.999"

	expense, err := s.service.AddExpense(s.userID, req)
	s.Nil(expense)

	var validationErr *ValidationError
	s.ErrorAs(err, &validationErr)
	s.Contains(validationErr.Fields, "amount")
}

func (s *ExpenseServiceTestSuite) TestAddExpense_InvalidDate() {
	req := s.validRequest()
	req.Date = "15/08/2026"

	expense, err := s.service.AddExpense(s.userID, req)
	s.Nil(expense)

	var validationErr *ValidationError
	s.ErrorAs(err, &validationErr)
	s.Contains(validationErr.Fields, "date")
}

func (s *ExpenseServiceTestSuite) TestAddExpense_CollectsAllFieldErrors() {
	req := &dto.ExpenseRequest{
		CategoryID: "not-a-uuid",
		Amount:     "abc",
		Date:       "yesterday",
	}

	expense, err := s.service.AddExpense(s.userID, req)
	s.Nil(expense)

	var validationErr *ValidationError
	s.ErrorAs(err, &validationErr)
	s.Len(validationErr.Fields, 3)
	s.Contains(validationErr.Fields, "category_id")
	s.Contains(validationErr.Fields, "amount")
	s.Contains(validationErr.Fields, "date")
}

func (s *ExpenseServiceTestSuite) TestAddExpense_UnknownCategory() {
	req := s.validRequest()

	s.mockCategoryRepo.EXPECT().GetByID(s.category.ID).Return(nil, repositories.ErrCategoryNotFound)

	expense, err := s.service.AddExpense(s.userID, req)
	s.ErrorIs(err, repositories.ErrCategoryNotFound)
	s.Nil(expense)
}

// Test EditExpense
func (s *ExpenseServiceTestSuite) TestEditExpense_Success() {
	expenseID := uuid.New()
	existing := &models.Expense{
		ID:         expenseID,
		UserID:     s.userID,
		CategoryID: s.category.ID,
		Amount:     decimal.RequireFromString("5.00"),
		Date:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	req := s.validRequest()

	s.mockExpenseRepo.EXPECT().GetByIDForUser(expenseID, s.userID).Return(existing, nil)
	s.mockCategoryRepo.EXPECT().GetByID(s.category.ID).Return(s.category, nil)
	s.mockExpenseRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(expense *models.Expense) error {
		s.True(expense.Amount.Equal(decimal.RequireFromString("12.50")))
		s.Equal("Lunch", expense.Description)
		return nil
	})
	s.mockExpenseRepo.EXPECT().GetByID(expenseID).Return(existing, nil)

	expense, err := s.service.EditExpense(expenseID, s.userID, req)
	s.NoError(err)
	s.NotNil(expense)
}

func (s *ExpenseServiceTestSuite) TestEditExpense_NotOwned() {
	expenseID := uuid.New()
	req := s.validRequest()

	s.mockExpenseRepo.EXPECT().GetByIDForUser(expenseID, s.userID).Return(nil, repositories.ErrExpenseNotFound)

	expense, err := s.service.EditExpense(expenseID, s.userID, req)
	s.ErrorIs(err, repositories.ErrExpenseNotFound)
	s.Nil(expense)
}

func (s *ExpenseServiceTestSuite) TestEditExpense_ValidationFailureLeavesRecordUntouched() {
	expenseID := uuid.New()
	existing := &models.Expense{ID: expenseID, UserID: s.userID}
	req := s.validRequest()
	req.Amount = "0"

	s.mockExpenseRepo.EXPECT().GetByIDForUser(expenseID, s.userID).Return(existing, nil)

	expense, err := s.service.EditExpense(expenseID, s.userID, req)
	s.Nil(expense)

	var validationErr *ValidationError
	s.ErrorAs(err, &validationErr)
}

// Test DeleteExpense
func (s *ExpenseServiceTestSuite) TestDeleteExpense_Success() {
	expenseID := uuid.New()
	existing := &models.Expense{ID: expenseID, UserID: s.userID}

	s.mockExpenseRepo.EXPECT().GetByIDForUser(expenseID, s.userID).Return(existing, nil)
	s.mockExpenseRepo.EXPECT().Delete(expenseID).Return(nil)

	err := s.service.DeleteExpense(expenseID, s.userID)
	s.NoError(err)
}

func (s *ExpenseServiceTestSuite) TestDeleteExpense_NotOwnedLooksLikeMissing() {
	expenseID := uuid.New()

	s.mockExpenseRepo.EXPECT().GetByIDForUser(expenseID, s.userID).Return(nil, repositories.ErrExpenseNotFound)

	err := s.service.DeleteExpense(expenseID, s.userID)
	s.ErrorIs(err, repositories.ErrExpenseNotFound)
}

// Test GetExpenses
func (s *ExpenseServiceTestSuite) TestGetExpenses_PassesFiltersThrough() {
	filters := models.ExpenseFilters{UserID: s.userID, SortBy: models.SortAmountDesc}
	expenses := []models.Expense{{ID: uuid.New(), UserID: s.userID}}

	s.mockExpenseRepo.EXPECT().GetWithFilters(filters).Return(expenses, int64(1), nil)

	result, total, err := s.service.GetExpenses(filters)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Len(result, 1)
}

func (s *ExpenseServiceTestSuite) TestGetExpenses_InvalidRangePropagates() {
	filters := models.ExpenseFilters{UserID: s.userID}

	s.mockExpenseRepo.EXPECT().GetWithFilters(filters).Return(nil, int64(0), models.ErrInvalidDateRange)

	result, total, err := s.service.GetExpenses(filters)
	s.ErrorIs(err, models.ErrInvalidDateRange)
	s.Nil(result)
	s.Zero(total)
}

// Test GetRecentExpenses
func (s *ExpenseServiceTestSuite) TestGetRecentExpenses_DefaultLimit() {
	s.mockExpenseRepo.EXPECT().GetRecentByUserID(s.userID, DefaultRecentExpenseLimit).Return([]models.Expense{}, nil)

	result, err := s.service.GetRecentExpenses(s.userID, 0)
	s.NoError(err)
	s.Empty(result)
}

func (s *ExpenseServiceTestSuite) TestGetRecentExpenses_ExplicitLimit() {
	s.mockExpenseRepo.EXPECT().GetRecentByUserID(s.userID, 3).Return([]models.Expense{}, nil)

	_, err := s.service.GetRecentExpenses(s.userID, 3)
	s.NoError(err)
}
