package dto

import (
	"time"

	"github.com/google/uuid"
)

// Expense action discriminator values
const (
	ActionAddExpense    = "add_expense"
	ActionEditExpense   = "edit_expense"
	ActionDeleteExpense = "delete_expense"
)

// ExpenseRequest contains the writable fields of an expense
type ExpenseRequest struct {
	CategoryID  string `json:"categoryId" validate:"required,uuid"`
	Amount      string `json:"amount" validate:"required,expense_amount"`
	Description string `json:"description" validate:"max=500"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ExpenseActionRequest is the single-endpoint mutation envelope.
// The action field selects the operation; the remaining fields are
// required or ignored depending on it.
type ExpenseActionRequest struct {
	Action      string `json:"action" validate:"required,oneof=add_expense edit_expense delete_expense"`
	ExpenseID   string `json:"expenseId,omitempty" validate:"omitempty,uuid"`
	CategoryID  string `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Amount      string `json:"amount,omitempty" validate:"omitempty,expense_amount"`
	Description string `json:"description,omitempty" validate:"max=500"`
	Date        string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ExpenseFilterParams contains the filter criteria accepted as query parameters
type ExpenseFilterParams struct {
	Period     string `query:"period" validate:"omitempty,oneof=week month quarter year"`
	DateFrom   string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
	CategoryID string `query:"category" validate:"omitempty,uuid"`
	AmountMin  string `query:"amount_min" validate:"omitempty,expense_amount"`
	AmountMax  string `query:"amount_max" validate:"omitempty,expense_amount"`
	Search     string `query:"search" validate:"max=100"`
	SortBy     string `query:"sort_by" validate:"omitempty,sort_key"`
}

// ExpenseResponse represents a single expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListExpensesResponse represents the response for listing expenses
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int64             `json:"total"`
}
