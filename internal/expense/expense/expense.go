package expense

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/ledgerline/ledgerline/internal/expense/category"
)

// Expense is a single spending entry owned by a user.
type Expense struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"user_id"`
	CategoryID  int64              `json:"category_id"`
	Category    *category.Category `json:"category"`
	Amount      float64            `json:"amount"`
	Description *string            `json:"description"`
	ExpenseDate DateOnly           `json:"expense_date"`
	CreatedAt   time.Time          `json:"created_at"`
}

// DateOnly is a calendar date without a time component. It marshals as
// "YYYY-MM-DD" and maps to a SQL DATE column.
type DateOnly struct {
	time.Time
}

// ParseDateOnly parses a "YYYY-MM-DD" string.
func ParseDateOnly(value string) (DateOnly, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{Time: t}, nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date %q", data)
	}
	t, err := time.Parse(time.DateOnly, string(data[1:len(data)-1]))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Scan implements sql.Scanner so DATE columns scan into DateOnly.
func (d *DateOnly) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", src)
	}
}

// Value implements driver.Valuer.
func (d DateOnly) Value() (driver.Value, error) {
	return d.Time, nil
}
