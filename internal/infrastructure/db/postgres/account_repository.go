package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

// Ensure AccountRepository satisfies the ports interface at compile time.
var _ ports.AccountRepository = (*AccountRepository)(nil)

// AccountRepository provides Postgres-backed persistence for accounts.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, username, email, password_hash, security_answer_hash, role, created_at`

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const query = `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + accountColumns
	row := r.pool.QueryRow(ctx, query, a.ID, a.Username, a.Email, a.PasswordHash, a.SecurityAnswerHash, string(a.Role), a.CreatedAt.UTC())
	created, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return created, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *AccountRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.Account, error) {
	return r.findOne(ctx, `WHERE username = $1 OR email = $1 LIMIT 1`, identifier)
}

func (r *AccountRepository) findOne(ctx context.Context, where string, arg any) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts `+where, arg)
	return scanAccount(row)
}

func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE role = $1`, string(role)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `UPDATE accounts SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var role string
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.SecurityAnswerHash, &role, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	a.Role = domain.Role(role)
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
