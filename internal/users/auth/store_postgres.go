// Copyright (c) 2026 Ledgerline. All rights reserved.

// PostgreSQL implementation of the identity storage contracts.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/platform/apperr"
	"github.com/ledgerline/ledgerline/internal/platform/dberr"
	"github.com/ledgerline/ledgerline/internal/platform/sec"
)

// liveFilter is the single definition of the soft-delete predicate. Every
// query that must only see live accounts composes it, so no call site can
// forget the filter and accidentally resolve a deleted user.
const liveFilter = "is_deleted = FALSE"

// userColumns is the canonical projection for hydrating a [User].
const userColumns = "id, email, password_hash, role, is_deleted, created_at"

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record.

Description: Inserts the account and hydrates the generated ID and
CreatedAt back onto the entity.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict on a duplicate live email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users (email, password_hash, role, is_deleted)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(context, query,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "user_create")
	}

	return nil
}

/*
FindLiveByEmail retrieves a non-deleted user record by email.

Description: Performs a case-sensitive lookup, filtering out soft-deleted
accounts via the centralized live predicate.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindLiveByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 AND %s`, userColumns, liveFilter)

	user := &User{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsDeleted,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindLiveByID retrieves a non-deleted user record by primary key.

Description: The identity resolver's single storage read per request.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindLiveByID(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND %s`, userColumns, liveFilter)

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsDeleted,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
ListLive returns all non-deleted accounts, oldest first.

Parameters:
  - context: context.Context

Returns:
  - []*User: Hydrated entities
  - error: Retrieval failures
*/
func (repository *PostgresUserRepository) ListLive(context context.Context) ([]*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY id ASC`, userColumns, liveFilter)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.IsDeleted,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_user_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

/*
UpdateRole replaces the role of a live account.

Description: The WHERE clause includes the live predicate, so a promotion
can never resurrect a soft-deleted account.

Parameters:
  - context: context.Context
  - id: int64
  - role: sec.UserRole

Returns:
  - error: apperr.NotFound if no live row matched, or execution errors
*/
func (repository *PostgresUserRepository) UpdateRole(context context.Context, id int64, role sec.UserRole) error {
	query := fmt.Sprintf(`UPDATE users SET role = $2 WHERE id = $1 AND %s`, liveFilter)

	tag, err := repository.pool.Exec(context, query, id, role)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_role_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
SoftDelete marks a live account as deleted.

Description: Retention-friendly deletion; the row stays in place and the
live predicate hides it from every subsequent lookup.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: apperr.NotFound if no live row matched, or execution errors
*/
func (repository *PostgresUserRepository) SoftDelete(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE users SET is_deleted = TRUE WHERE id = $1 AND %s`, liveFilter)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_soft_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
