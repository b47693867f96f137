package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryUtilities      Category = "Utilities"
	CategoryEntertainment  Category = "Entertainment"
	CategoryShopping       Category = "Shopping"
	CategoryHealthcare     Category = "Healthcare"
	CategoryOther          Category = "Other"
)

type (
	Category string

	Date struct {
		time.Time
	}

	Expense struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Amount    Money     `json:"amount"`
		Category  Category  `json:"category"`
		Date      Date      `json:"date"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
		UserID    string    `json:"userId,omitempty"`
	}

	// ExpenseDraft carries the caller-supplied fields of a new expense.
	// ID, CreatedAt and UpdatedAt are assigned by the repository.
	ExpenseDraft struct {
		Title    string   `json:"title"`
		Amount   Money    `json:"amount"`
		Category Category `json:"category"`
		Date     Date     `json:"date"`
		UserID   string   `json:"userId,omitempty"`
	}

	// ExpenseUpdate is a partial update; nil fields are left unchanged.
	ExpenseUpdate struct {
		Title    *string   `json:"title,omitempty"`
		Amount   *Money    `json:"amount,omitempty"`
		Category *Category `json:"category,omitempty"`
		Date     *Date     `json:"date,omitempty"`
	}
)

var (
	ErrEmptyTitle      = errors.New("empty title")
	ErrTitleTooLong    = errors.New("title too long (max 200 characters)")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidPeriod   = errors.New("invalid budget period")
)

// CategoryNames returns the canonical category list in its fixed order.
// Every persisted collection carries exactly these seven names.
func CategoryNames() []Category {
	return []Category{
		CategoryFood,
		CategoryTransportation,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryShopping,
		CategoryHealthcare,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	for _, known := range CategoryNames() {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

const dateLayout = "2006-01-02"

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the YYYY-MM grouping key for the date.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) Equal(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month() && d.Day() == other.Day()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (e ExpenseDraft) Validate() error {
	if len(strings.TrimSpace(e.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(e.Title) > 200 {
		return ErrTitleTooLong
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrUnknownCategory
	}
	return e.Date.Validate()
}

func (u ExpenseUpdate) Validate() error {
	if u.Title != nil {
		if len(strings.TrimSpace(*u.Title)) == 0 {
			return ErrEmptyTitle
		}
		if len(*u.Title) > 200 {
			return ErrTitleTooLong
		}
	}
	if u.Amount != nil {
		if err := u.Amount.Validate(); err != nil {
			return err
		}
	}
	if u.Category != nil && !u.Category.Valid() {
		return ErrUnknownCategory
	}
	if u.Date != nil {
		if err := u.Date.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTo merges the update into an existing record. ID and CreatedAt are
// never touched; the repository stamps UpdatedAt.
func (u ExpenseUpdate) ApplyTo(e *Expense) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
}
