package http

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"gastos/internal/budget"
	"gastos/internal/core"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return core.Category(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		_, err := core.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// validateStruct runs the tag rules and flattens failures into one message.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var msgs []string
	for _, fe := range err.(validator.ValidationErrors) {
		msgs = append(msgs, fieldErrorMessage(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "category":
		return field + " must be a known category"
	case "dateformat":
		return field + " must be a YYYY-MM-DD date"
	case "gte":
		return field + " must be at least " + fe.Param()
	case "lte":
		return field + " must be at most " + fe.Param()
	case "max":
		return field + " is too long"
	case "oneof":
		return field + " must be one of " + fe.Param()
	default:
		return field + " is invalid"
	}
}

type createExpenseRequest struct {
	Title    string  `json:"title" validate:"required,notblank,max=200"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Category string  `json:"category" validate:"required,category"`
	Date     string  `json:"date" validate:"required,dateformat"`
	UserID   string  `json:"userId" validate:"omitempty,max=128"`
}

func (r createExpenseRequest) toDraft() core.ExpenseDraft {
	date, _ := core.ParseDate(r.Date)
	return core.ExpenseDraft{
		Title:    strings.TrimSpace(r.Title),
		Amount:   core.Money{Cents: toCents(r.Amount)},
		Category: core.Category(r.Category),
		Date:     date,
		UserID:   r.UserID,
	}
}

type updateExpenseRequest struct {
	Title    *string  `json:"title" validate:"omitempty,notblank,max=200"`
	Amount   *float64 `json:"amount" validate:"omitempty,gte=0"`
	Category *string  `json:"category" validate:"omitempty,category"`
	Date     *string  `json:"date" validate:"omitempty,dateformat"`
}

func (r updateExpenseRequest) toUpdate() core.ExpenseUpdate {
	var update core.ExpenseUpdate
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		update.Title = &title
	}
	if r.Amount != nil {
		amount := core.Money{Cents: toCents(*r.Amount)}
		update.Amount = &amount
	}
	if r.Category != nil {
		category := core.Category(*r.Category)
		update.Category = &category
	}
	if r.Date != nil {
		date, _ := core.ParseDate(*r.Date)
		update.Date = &date
	}
	return update
}

type updateBudgetRequest struct {
	BudgetAmount   *float64 `json:"budgetAmount" validate:"omitempty,gte=0"`
	BudgetPeriod   *string  `json:"budgetPeriod" validate:"omitempty,oneof=daily weekly monthly"`
	AlertThreshold *int     `json:"alertThreshold" validate:"omitempty,gte=0,lte=100"`
	EnableAlerts   *bool    `json:"enableAlerts"`
}

func (r updateBudgetRequest) toUpdate() budget.SettingsUpdate {
	var update budget.SettingsUpdate
	if r.BudgetAmount != nil {
		amount := core.Money{Cents: toCents(*r.BudgetAmount)}
		update.BudgetAmount = &amount
	}
	if r.BudgetPeriod != nil {
		period := core.BudgetPeriod(*r.BudgetPeriod)
		update.BudgetPeriod = &period
	}
	update.AlertThreshold = r.AlertThreshold
	update.EnableAlerts = r.EnableAlerts
	return update
}

type updateProfileRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=200"`
	Email string `json:"email" validate:"omitempty,email,max=254"`
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

type listExpensesResponse struct {
	Expenses   []core.Expense  `json:"expenses"`
	Categories []core.Category `json:"categories"`
	Total      core.Money      `json:"total"`
}

type categoryBreakdown struct {
	Category   core.Category `json:"category"`
	Amount     core.Money    `json:"amount"`
	Percentage float64       `json:"percentage"`
}

type analyticsResponse struct {
	Stats      core.Stats          `json:"stats"`
	ByCategory []categoryBreakdown `json:"byCategory"`
	ByMonth    []core.MonthSum     `json:"byMonth"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}
