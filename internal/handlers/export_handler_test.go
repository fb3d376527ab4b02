package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/services"
	"expense-tracker-api/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestExportHandler(t *testing.T) {
	suite.Run(t, new(ExportHandlerSuite))
}

type ExportHandlerSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	expenseService *service_mocks.MockExpenseServiceInterface
	handler        *ExportHandler
	e              *echo.Echo
	userID         uuid.UUID
}

func (s *ExportHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseService = service_mocks.NewMockExpenseServiceInterface(s.ctrl)
	metrics := service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()

	s.handler = NewExportHandler(s.expenseService, services.NewExportService(), metrics)
	s.e = echo.New()
	s.e.Validator = NewValidator()
	s.userID = uuid.New()
}

func (s *ExportHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ExportHandlerSuite) TestExportCSV_Success() {
	categoryID := uuid.New()
	expenses := []models.Expense{
		{
			ID:         uuid.New(),
			UserID:     s.userID,
			CategoryID: categoryID,
			Category: models.ExpenseCategory{
				ID:   categoryID,
				Name: "Food",
			},
			Amount:      decimal.RequireFromString("12.50"),
			Description: "Lunch",
			Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	s.expenseService.EXPECT().
		GetExpenses(gomock.Any()).
		DoAndReturn(func(filters models.ExpenseFilters) ([]models.Expense, int64, error) {
			s.Equal(s.userID, filters.UserID)
			return expenses, 1, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/expenses/export", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", s.userID)
	c.Set("email", "jamie@example.com")

	err := s.handler.ExportCSV(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("text/csv", rec.Header().Get(echo.HeaderContentType))

	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	s.Contains(disposition, "attachment")
	s.Contains(disposition, "expenses_jamie_example.com_")

	body := rec.Body.String()
	s.Contains(body, "Date,Category,Amount,Description,Created At,Updated At")
	s.Contains(body, "2026-08-15,Food,12.50,Lunch")
}

func (s *ExportHandlerSuite) TestExportCSV_EmptySelection() {
	s.expenseService.EXPECT().GetExpenses(gomock.Any()).Return(nil, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/expenses/export", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", s.userID)

	err := s.handler.ExportCSV(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	// Header row only
	s.Equal("Date,Category,Amount,Description,Created At,Updated At\n", rec.Body.String())
}

func (s *ExportHandlerSuite) TestExportCSV_FallsBackToUserID() {
	s.expenseService.EXPECT().GetExpenses(gomock.Any()).Return(nil, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/expenses/export", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", s.userID)
	// No email claim in context

	err := s.handler.ExportCSV(c)
	s.NoError(err)
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "expenses_"+s.userID.String())
}

func (s *ExportHandlerSuite) TestExportCSV_AppliesFilters() {
	s.expenseService.EXPECT().
		GetExpenses(gomock.Any()).
		DoAndReturn(func(filters models.ExpenseFilters) ([]models.Expense, int64, error) {
			s.Require().NotNil(filters.DateFrom)
			s.Equal("2026-08-01", filters.DateFrom.Format("2006-01-02"))
			return nil, 0, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/expenses/export?date_from=2026-08-01", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", s.userID)

	err := s.handler.ExportCSV(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ExportHandlerSuite) TestExportCSV_MissingUserContext() {
	req := httptest.NewRequest(http.MethodGet, "/expenses/export", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	err := s.handler.ExportCSV(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}
