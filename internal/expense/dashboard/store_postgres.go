package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) TopCategories(context context.Context, userID int64, year int, month time.Month, limit int) ([]CategoryTotal, error) {
	const query = `
		SELECT c.name, SUM(e.amount) AS total
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.user_id = $1
		  AND EXTRACT(YEAR FROM e.expense_date) = $2
		  AND EXTRACT(MONTH FROM e.expense_date) = $3
		GROUP BY c.name
		ORDER BY total DESC
		LIMIT $4
	`

	rows, err := repository.db.Query(context, query, userID, year, int(month), limit)
	if err != nil {
		return nil, dberr.Wrap(err, "top_categories")
	}
	defer rows.Close()

	totals := make([]CategoryTotal, 0, limit)
	for rows.Next() {
		var t CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, dberr.Wrap(err, "scan_category_total")
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}
