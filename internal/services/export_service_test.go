package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"expense-tracker-api/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// ExportServiceTestSuite defines the test suite for ExportService
type ExportServiceTestSuite struct {
	suite.Suite
	service ExportServiceInterface
	food    models.ExpenseCategory
}

// SetupTest runs before each test
func (s *ExportServiceTestSuite) SetupTest() {
	s.service = NewExportService()
	s.food = models.ExpenseCategory{ID: uuid.New(), Name: "Food"}
}

// TestExportServiceSuite runs the test suite
func TestExportServiceSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}

func (s *ExportServiceTestSuite) expense(amount, description string, date time.Time) models.Expense {
	created := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	return models.Expense{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		CategoryID:  s.food.ID,
		Category:    s.food,
		Amount:      decimal.RequireFromString(amount),
		Description: description,
		Date:        date,
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Hour),
	}
}

func (s *ExportServiceTestSuite) TestExportCSV_HeaderOnly() {
	data, err := s.service.ExportCSV(nil)
	s.NoError(err)
	s.Equal("Date,Category,Amount,Description,Created At,Updated At\n", string(data))
}

func (s *ExportServiceTestSuite) TestExportCSV_RecordFormatting() {
	expense := s.expense("12.50", "Lunch", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))

	data, err := s.service.ExportCSV([]models.Expense{expense})
	s.NoError(err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(records, 2)

	s.Equal([]string{"Date", "Category", "Amount", "Description", "Created At", "Updated At"}, records[0])
	s.Equal([]string{"2026-08-15", "Food", "12.50", "Lunch", "2026-08-01 09:30:00", "2026-08-01 10:30:00"}, records[1])
}

func (s *ExportServiceTestSuite) TestExportCSV_PreservesInputOrder() {
	first := s.expense("1.00", "first", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	second := s.expense("2.00", "second", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))

	data, err := s.service.ExportCSV([]models.Expense{first, second})
	s.NoError(err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal("first", records[1][3])
	s.Equal("second", records[2][3])
}

func (s *ExportServiceTestSuite) TestExportCSV_QuotesEmbeddedDelimiters() {
	expense := s.expense("9.99", `Dinner, "steak" night`, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))

	data, err := s.service.ExportCSV([]models.Expense{expense})
	s.NoError(err)

	// Round-trip through the reader recovers the original description
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(`Dinner, "steak" night`, records[1][3])
}

func (s *ExportServiceTestSuite) TestExportCSV_EmptyDescription() {
	expense := s.expense("5.00", "", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))

	data, err := s.service.ExportCSV([]models.Expense{expense})
	s.NoError(err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	s.Require().NoError(err)
	s.Equal("", records[1][3])
}

func (s *ExportServiceTestSuite) TestExportCSV_Deterministic() {
	expenses := []models.Expense{
		s.expense("1.00", "a", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		s.expense("2.00", "b", time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)),
	}

	first, err := s.service.ExportCSV(expenses)
	s.NoError(err)
	second, err := s.service.ExportCSV(expenses)
	s.NoError(err)
	s.Equal(first, second)
}

func (s *ExportServiceTestSuite) TestExportCSV_ArbitraryDescriptionsRoundTrip() {
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	expenses := make([]models.Expense, 0, 20)
	for i := 0; i < 20; i++ {
		expenses = append(expenses, s.expense(
			decimal.NewFromFloat(gofakeit.Price(1, 500)).StringFixed(2),
			gofakeit.ProductDescription(),
			date,
		))
	}

	data, err := s.service.ExportCSV(expenses)
	s.NoError(err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(records, 21)
	for i, expense := range expenses {
		s.Equal(expense.Description, records[i+1][3])
		s.Equal(expense.Amount.StringFixed(2), records[i+1][2])
	}
}

func (s *ExportServiceTestSuite) TestFilename_Format() {
	now := time.Date(2026, 8, 15, 14, 5, 9, 0, time.UTC)

	filename := s.service.Filename("jamie", now)
	s.Equal("expenses_jamie_20260815_140509.csv", filename)
}

func (s *ExportServiceTestSuite) TestFilename_SanitizesOwner() {
	now := time.Date(2026, 8, 15, 14, 5, 9, 0, time.UTC)

	filename := s.service.Filename("jamie@example.com", now)
	s.Equal("expenses_jamie_example.com_20260815_140509.csv", filename)
}

func (s *ExportServiceTestSuite) TestFilename_EmptyOwnerFallsBack() {
	now := time.Date(2026, 8, 15, 14, 5, 9, 0, time.UTC)

	filename := s.service.Filename("", now)
	s.Equal("expenses_user_20260815_140509.csv", filename)
}
