package expense

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/expense/category"
	"github.com/ledgerline/ledgerline/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Insert(context context.Context, expense *Expense) error {
	const query = `
		INSERT INTO expenses (user_id, category_id, amount, description, expense_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := repository.db.QueryRow(context, query,
		expense.UserID, expense.CategoryID, expense.Amount, expense.Description, expense.ExpenseDate,
	).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		// FK violation on category_id maps to Unprocessable.
		return dberr.Wrap(err, "insert_expense")
	}

	return nil
}

func (repository *PostgresRepository) ListForMonth(context context.Context, userID int64, year int, month time.Month) ([]*Expense, error) {
	const query = `
		SELECT e.id, e.user_id, e.category_id, e.amount, e.description, e.expense_date, e.created_at,
		       c.id, c.name
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.user_id = $1
		  AND EXTRACT(YEAR FROM e.expense_date) = $2
		  AND EXTRACT(MONTH FROM e.expense_date) = $3
		ORDER BY e.expense_date DESC, e.id DESC
	`

	rows, err := repository.db.Query(context, query, userID, year, int(month))
	if err != nil {
		return nil, dberr.Wrap(err, "list_monthly_expenses")
	}
	defer rows.Close()

	expenses := make([]*Expense, 0)
	for rows.Next() {
		e := &Expense{}
		c := &category.Category{}
		err := rows.Scan(
			&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Description, &e.ExpenseDate, &e.CreatedAt,
			&c.ID, &c.Name,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_expense")
		}
		e.Category = c
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}
