package handlers

import (
	"net/http"
	"time"

	"expense-tracker-api/internal/dto"
	apierrors "expense-tracker-api/internal/errors"
	"expense-tracker-api/internal/services"

	"github.com/labstack/echo/v4"
)

// ExportHandler streams expense exports back to the caller
type ExportHandler struct {
	expenseService services.ExpenseServiceInterface
	exportService  services.ExportServiceInterface
	metrics        services.MetricsRecorderInterface
}

// NewExportHandler creates a new export handler
func NewExportHandler(
	expenseService services.ExpenseServiceInterface,
	exportService services.ExportServiceInterface,
	metrics services.MetricsRecorderInterface,
) *ExportHandler {
	return &ExportHandler{
		expenseService: expenseService,
		exportService:  exportService,
		metrics:        metrics,
	}
}

// ExportCSV downloads the caller's filtered expenses as a CSV attachment
// @Summary Export expenses as CSV
// @Description Applies the same filters as the expense list and returns the
// @Description selection as a CSV file download.
// @Tags Export
// @Security BearerAuth
// @Produce text/csv
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param category query string false "Category ID"
// @Param amount_min query string false "Minimum amount"
// @Param amount_max query string false "Maximum amount"
// @Param search query string false "Description substring, case-insensitive"
// @Param sort_by query string false "Sort key" Enums(date, -date, amount, -amount, category, -category)
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} errors.ErrorResponse "Invalid filters - VALIDATION_005 or VALIDATION_006"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Router /expenses/export [get]
func (h *ExportHandler) ExportCSV(c echo.Context) error {
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

	expenses, _, err := h.expenseService.GetExpenses(filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	payload, err := h.exportService.ExportCSV(expenses)
	if err != nil {
		return SendSystemError(c, err)
	}

	owner := getOwnerFromContext(c, userID.String())
	filename := h.exportService.Filename(owner, time.Now())

	h.metrics.IncrementCounter("expense_export", nil)
	h.metrics.RecordProcessingTime("expense_export", time.Since(start))

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", payload)
}

// getOwnerFromContext prefers the authenticated email for export filenames,
// falling back to the given default when the claim is absent
func getOwnerFromContext(c echo.Context, fallback string) string {
	email, ok := c.Get("email").(string)
	if !ok || email == "" {
		return fallback
	}
	return email
}
