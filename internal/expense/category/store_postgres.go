package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	const query = `SELECT id, name FROM categories ORDER BY name ASC`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (repository *PostgresRepository) Create(context context.Context, name string) (*Category, error) {
	const query = `INSERT INTO categories (name) VALUES ($1) RETURNING id, name`

	c := &Category{}
	if err := repository.db.QueryRow(context, query, name).Scan(&c.ID, &c.Name); err != nil {
		// Unique violation on name maps to Conflict.
		return nil, dberr.Wrap(err, "create_category")
	}

	return c, nil
}
