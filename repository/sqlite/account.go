package sqlite

import (
	"context"
	"database/sql"

	"tubescribe/errors"
	"tubescribe/models"
	"tubescribe/repository"
)

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	const op = "sqlite.AccountRepository.Create"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, display_name, photo_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		account.ID,
		account.Email,
		account.DisplayName,
		account.PhotoURL,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return errors.Internal(op, err, "failed to create account")
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	const op = "sqlite.AccountRepository.GetByID"

	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, display_name, photo_url, created_at, updated_at
		 FROM accounts WHERE id = ?`, id)
	return scanAccount(op, row)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "sqlite.AccountRepository.GetByEmail"

	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, display_name, photo_url, created_at, updated_at
		 FROM accounts WHERE email = ? LIMIT 1`, email)
	return scanAccount(op, row)
}

func scanAccount(op string, row *sql.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.DisplayName,
		&account.PhotoURL,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, err, "Account not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "failed to read account")
	}
	return &account, nil
}
