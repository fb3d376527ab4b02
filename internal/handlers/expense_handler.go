package handlers

import (
	"errors"
	"net/http"

	"expense-tracker-api/internal/dto"
	apierrors "expense-tracker-api/internal/errors"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/repositories"
	"expense-tracker-api/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ExpenseHandler handles expense CRUD and the action dispatch endpoint
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService services.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// ListExpenses returns the caller's expenses, filtered and sorted
// @Summary List expenses
// @Description Returns the caller's expenses. Supports date range, category,
// @Description amount range and description search filters plus sorting.
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param category query string false "Category ID"
// @Param amount_min query string false "Minimum amount"
// @Param amount_max query string false "Maximum amount"
// @Param search query string false "Description substring, case-insensitive"
// @Param sort_by query string false "Sort key" Enums(date, -date, amount, -amount, category, -category)
// @Success 200 {object} dto.ListExpensesResponse "Expenses"
// @Failure 400 {object} errors.ErrorResponse "Invalid filters - VALIDATION_005 or VALIDATION_006"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
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

	expenses, total, err := h.expenseService.GetExpenses(filters)
	if err != nil {
		return h.mapExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListExpensesResponse{
		Expenses: toExpenseResponses(expenses),
		Total:    total,
	})
}

// GetExpense returns a single expense owned by the caller
// @Summary Get an expense
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse "Expense"
// @Failure 400 {object} errors.ErrorResponse "Invalid ID - EXPENSE_003"
// @Failure 404 {object} errors.ErrorResponse "Not found - EXPENSE_001"
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ExpenseInvalidID)
	}

	expense, err := h.expenseService.GetExpense(expenseID, userID)
	if err != nil {
		return h.mapExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// CreateExpense records a new expense for the caller
// @Summary Create an expense
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse "Created expense"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 404 {object} errors.ErrorResponse "Category not found - CATEGORY_001"
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.AddExpense(userID, &req)
	if err != nil {
		return h.mapExpenseError(c, err)
	}

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// UpdateExpense replaces the editable fields of an expense owned by the caller
// @Summary Update an expense
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.ExpenseRequest true "Expense details"
// @Success 200 {object} dto.ExpenseResponse "Updated expense"
// @Failure 400 {object} errors.ErrorResponse "Invalid ID - EXPENSE_003"
// @Failure 404 {object} errors.ErrorResponse "Not found - EXPENSE_001"
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ExpenseInvalidID)
	}

	var req dto.ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.EditExpense(expenseID, userID, &req)
	if err != nil {
		return h.mapExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense removes an expense owned by the caller
// @Summary Delete an expense
// @Tags Expenses
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 204 "Deleted"
// @Failure 400 {object} errors.ErrorResponse "Invalid ID - EXPENSE_003"
// @Failure 404 {object} errors.ErrorResponse "Not found - EXPENSE_001"
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ExpenseInvalidID)
	}

	if err := h.expenseService.DeleteExpense(expenseID, userID); err != nil {
		return h.mapExpenseError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// HandleAction dispatches a mutation named by the action discriminator
// @Summary Perform an expense action
// @Description Single mutation endpoint. The action field selects between
// @Description add_expense, edit_expense and delete_expense.
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ExpenseActionRequest true "Action envelope"
// @Success 200 {object} dto.ExpenseResponse "Result of edit_expense"
// @Success 201 {object} dto.ExpenseResponse "Result of add_expense"
// @Success 204 "Result of delete_expense"
// @Failure 400 {object} errors.ErrorResponse "Unknown action - EXPENSE_004"
// @Failure 404 {object} errors.ErrorResponse "Not found - EXPENSE_001"
// @Router /expenses/actions [post]
func (h *ExpenseHandler) HandleAction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.ExpenseActionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	switch req.Action {
	case dto.ActionAddExpense:
		expense, err := h.expenseService.AddExpense(userID, actionToExpenseRequest(&req))
		if err != nil {
			return h.mapExpenseError(c, err)
		}
		return c.JSON(http.StatusCreated, toExpenseResponse(expense))

	case dto.ActionEditExpense:
		expenseID, err := uuid.Parse(req.ExpenseID)
		if err != nil {
			return SendError(c, apierrors.ExpenseInvalidID)
		}
		expense, err := h.expenseService.EditExpense(expenseID, userID, actionToExpenseRequest(&req))
		if err != nil {
			return h.mapExpenseError(c, err)
		}
		return c.JSON(http.StatusOK, toExpenseResponse(expense))

	case dto.ActionDeleteExpense:
		expenseID, err := uuid.Parse(req.ExpenseID)
		if err != nil {
			return SendError(c, apierrors.ExpenseInvalidID)
		}
		if err := h.expenseService.DeleteExpense(expenseID, userID); err != nil {
			return h.mapExpenseError(c, err)
		}
		return c.NoContent(http.StatusNoContent)

	default:
		return SendError(c, apierrors.ExpenseInvalidAction)
	}
}

func actionToExpenseRequest(req *dto.ExpenseActionRequest) *dto.ExpenseRequest {
	return &dto.ExpenseRequest{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	}
}

func (h *ExpenseHandler) mapExpenseError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		response := apierrors.NewValidationError(validationErr.Fields, getTraceID(c))
		return c.JSON(response.GetHTTPStatus(), response)
	}

	switch {
	case errors.Is(err, repositories.ErrExpenseNotFound):
		return SendError(c, apierrors.ExpenseNotFound)
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return SendError(c, apierrors.CategoryNotFound)
	case errors.Is(err, models.ErrInvalidDateRange),
		errors.Is(err, models.ErrInvalidAmountRange):
		return SendError(c, apierrors.ValidationInvalidRange, apierrors.WithDetails(err.Error()))
	case errors.Is(err, models.ErrInvalidSortKey):
		return SendError(c, apierrors.ValidationInvalidSort)
	default:
		return SendSystemError(c, err)
	}
}
