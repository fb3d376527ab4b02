package handlers

import (
	"net/http"
	"time"

	"expense-tracker-api/internal/dto"
	apierrors "expense-tracker-api/internal/errors"
	"expense-tracker-api/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler assembles the aggregated dashboard view
type DashboardHandler struct {
	expenseService    services.ExpenseServiceInterface
	statisticsService services.StatisticsServiceInterface
	metrics           services.MetricsRecorderInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	expenseService services.ExpenseServiceInterface,
	statisticsService services.StatisticsServiceInterface,
	metrics services.MetricsRecorderInterface,
) *DashboardHandler {
	return &DashboardHandler{
		expenseService:    expenseService,
		statisticsService: statisticsService,
		metrics:           metrics,
	}
}

// GetDashboard returns the filtered expense selection together with summary
// figures, the month-over-month comparison, chart series and rankings
// @Summary Get the expense dashboard
// @Description Applies the same filters as the expense list, then aggregates
// @Description the selection into summary, comparison, chart and ranking data.
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param category query string false "Category ID"
// @Param amount_min query string false "Minimum amount"
// @Param amount_max query string false "Maximum amount"
// @Param search query string false "Description substring, case-insensitive"
// @Param sort_by query string false "Sort key" Enums(date, -date, amount, -amount, category, -category)
// @Param limit query int false "Top category limit" default(5)
// @Success 200 {object} dto.DashboardResponse "Dashboard"
// @Failure 400 {object} errors.ErrorResponse "Invalid filters - VALIDATION_005 or VALIDATION_006"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	start := time.Now()

	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var params dto.ExpenseFilterParams
	if err := c.Bind(&params); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(params); err != nil {
		return err
	}

	filters, err := buildFilters(userID, &params)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails(err.Error()))
	}

	topLimit := getIntParam(c, "limit", services.DefaultTopCategoryLimit)

	expenses, total, err := h.expenseService.GetExpenses(filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	recent, err := h.expenseService.GetRecentExpenses(userID, services.DefaultRecentExpenseLimit)
	if err != nil {
		return SendSystemError(c, err)
	}

	now := time.Now()
	response := dto.DashboardResponse{
		Expenses:          toExpenseResponses(expenses),
		Total:             total,
		Summary:           h.statisticsService.Summarize(expenses),
		MonthlyComparison: h.statisticsService.CompareMonths(expenses, now),
		ChartData:         h.statisticsService.BuildChartData(expenses, now),
		TopCategories:     h.statisticsService.TopCategories(expenses, topLimit),
		RecentExpenses:    toExpenseResponses(recent),
	}

	h.metrics.IncrementCounter("dashboard_request", nil)
	h.metrics.RecordProcessingTime("dashboard", time.Since(start))

	return c.JSON(http.StatusOK, response)
}
