package expense

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerline/ledgerline/internal/platform/middleware"
	requestutil "github.com/ledgerline/ledgerline/internal/platform/request"
	"github.com/ledgerline/ledgerline/internal/platform/respond"
	"github.com/ledgerline/ledgerline/internal/platform/validate"
)

const (
	fieldAmount      = "amount"
	fieldCategoryID  = "category_id"
	fieldDescription = "description"
	fieldExpenseDate = "expense_date"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Post("/", handler.addExpense)
	router.Get("/monthly", handler.monthlyExpenses)

	return router
}

type addExpenseRequest struct {
	Amount      float64 `json:"amount"`
	CategoryID  int64   `json:"category_id"`
	Description *string `json:"description"`
	ExpenseDate string  `json:"expense_date"`
}

func (handler *Handler) addExpense(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addExpenseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.PositiveAmount(fieldAmount, input.Amount).
		PositiveID(fieldCategoryID, input.CategoryID).
		Required(fieldExpenseDate, input.ExpenseDate).
		Date(fieldExpenseDate, input.ExpenseDate)
	if input.Description != nil {
		validator.MaxLen(fieldDescription, *input.Description, 500)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	expenseDate, err := ParseDateOnly(input.ExpenseDate)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(fieldExpenseDate, "Must be a valid date (YYYY-MM-DD)"))
		return
	}

	_, err = handler.service.AddExpense(request.Context(), userID, AddExpenseInput{
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Description: input.Description,
		ExpenseDate: expenseDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Expense added"})
}

func (handler *Handler) monthlyExpenses(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	expenses, err := handler.service.Monthly(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, expenses)
}
