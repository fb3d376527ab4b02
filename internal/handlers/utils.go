package handlers

import (
	"fmt"
	"strings"
	"time"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// Helper function to extract user ID from context
// Returns ErrUnauthorized if user ID is missing or invalid
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

// getIsAdminFromContext extracts the is_admin boolean from context
// Returns false if the value is not set or not a boolean
func getIsAdminFromContext(c echo.Context) bool {
	isAdminValue := c.Get("is_admin")
	if isAdminValue == nil {
		return false
	}

	isAdmin, ok := isAdminValue.(bool)
	if !ok {
		return false
	}

	return isAdmin
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}

func getClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.Request().RemoteAddr
}

// buildFilters converts validated query parameters into typed filter criteria
// scoped to the given owner. The params must have passed struct validation.
func buildFilters(userID uuid.UUID, params *dto.ExpenseFilterParams) (models.ExpenseFilters, error) {
	filters := models.ExpenseFilters{
		UserID: userID,
		Search: strings.TrimSpace(params.Search),
		SortBy: models.SortKey(params.SortBy),
	}

	// A period shortcut expands to explicit bounds; explicit dates win
	if params.Period != "" && params.DateFrom == "" && params.DateTo == "" {
		dateFrom, dateTo := models.Period(params.Period).DateRange(time.Now())
		filters.DateFrom = &dateFrom
		filters.DateTo = &dateTo
	}

	if params.DateFrom != "" {
		dateFrom, err := time.Parse("2006-01-02", params.DateFrom)
		if err != nil {
			return filters, fmt.Errorf("invalid date_from: %w", err)
		}
		filters.DateFrom = &dateFrom
	}

	if params.DateTo != "" {
		dateTo, err := time.Parse("2006-01-02", params.DateTo)
		if err != nil {
			return filters, fmt.Errorf("invalid date_to: %w", err)
		}
		filters.DateTo = &dateTo
	}

	if params.CategoryID != "" {
		categoryID, err := uuid.Parse(params.CategoryID)
		if err != nil {
			return filters, fmt.Errorf("invalid category: %w", err)
		}
		filters.CategoryID = &categoryID
	}

	if params.AmountMin != "" {
		amountMin, err := decimal.NewFromString(params.AmountMin)
		if err != nil {
			return filters, fmt.Errorf("invalid amount_min: %w", err)
		}
		filters.AmountMin = &amountMin
	}

	if params.AmountMax != "" {
		amountMax, err := decimal.NewFromString(params.AmountMax)
		if err != nil {
			return filters, fmt.Errorf("invalid amount_max: %w", err)
		}
		filters.AmountMax = &amountMax
	}

	return filters, nil
}

// toExpenseResponse converts a model into its wire representation
func toExpenseResponse(expense *models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          expense.ID,
		CategoryID:  expense.CategoryID,
		Category:    expense.Category.Name,
		Amount:      expense.Amount.StringFixed(2),
		Description: expense.Description,
		Date:        expense.Date.Format("2006-01-02"),
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

func toExpenseResponses(expenses []models.Expense) []dto.ExpenseResponse {
	responses := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, toExpenseResponse(&expenses[i]))
	}
	return responses
}

// toCategoryResponse converts a model into its wire representation
func toCategoryResponse(category *models.ExpenseCategory) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func toCategoryResponses(categories []models.ExpenseCategory) []dto.CategoryResponse {
	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, toCategoryResponse(&categories[i]))
	}
	return responses
}
