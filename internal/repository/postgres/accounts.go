package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
	"github.com/arklim/social-platform-accounts/internal/core/port"
	"github.com/arklim/social-platform-accounts/internal/repository"
)

const accountsTable = "accounts.accounts"

// pgExecutor abstracts the pgx pool so repositories can run against a pool,
// a transaction, or a mock.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var accountColumns = []string{
	"id",
	"full_name",
	"username",
	"email",
	"phone",
	"country",
	"profile_picture",
	"password_hash",
	"email_verified",
	"online",
	"deleted_at",
	"created_at",
	"updated_at",
}

// AccountRepository implements port.AccountRepository using PostgreSQL.
type AccountRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAccountRepository constructs a repository backed by any executor that
// satisfies pgExecutor.
func NewAccountRepository(exec pgExecutor) *AccountRepository {
	return &AccountRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new account row and returns the stored representation.
func (r *AccountRepository) Create(ctx context.Context, draft domain.AccountDraft) (*domain.Account, error) {
	stmt, args, err := r.builder.Insert(accountsTable).
		Columns(
			"full_name",
			"username",
			"email",
			"phone",
			"country",
			"profile_picture",
			"password_hash",
		).
		Values(
			draft.FullName,
			draft.Username,
			draft.Email,
			draft.Phone,
			draft.Country,
			draft.ProfilePicture,
			draft.PasswordHash,
		).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert account sql: %w", err)
	}

	account, err := scanAccount(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	return account, nil
}

// GetByID retrieves a live account by identifier.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	stmt, args, err := r.builder.Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account sql: %w", err)
	}

	account, err := scanAccount(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	return account, nil
}

// GetByIDAny retrieves an account by identifier whether or not it has been
// tombstoned.
func (r *AccountRepository) GetByIDAny(ctx context.Context, id int64) (*domain.Account, error) {
	stmt, args, err := r.builder.Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account sql: %w", err)
	}

	account, err := scanAccount(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	return account, nil
}

// GetByEmail retrieves a live account by email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	stmt, args, err := r.builder.Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"email": email, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account by email sql: %w", err)
	}

	account, err := scanAccount(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account by email: %w", err)
	}

	return account, nil
}

// ListByAnyIdentifier returns every live account holding any of the provided
// unique identifiers. The three identifiers may resolve to up to three
// distinct rows.
func (r *AccountRepository) ListByAnyIdentifier(ctx context.Context, username, email, phone string) ([]domain.Account, error) {
	stmt, args, err := r.builder.Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.And{
			squirrel.Or{
				squirrel.Eq{"username": username},
				squirrel.Eq{"email": email},
				squirrel.Eq{"phone": phone},
			},
			squirrel.Eq{"deleted_at": nil},
		}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select accounts by identifier sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query accounts by identifier: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account by identifier: %w", err)
		}
		accounts = append(accounts, *account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts by identifier: %w", err)
	}

	return accounts, nil
}

// Update persists the mutable account fields and bumps updated_at.
func (r *AccountRepository) Update(ctx context.Context, account domain.Account) (*domain.Account, error) {
	stmt, args, err := r.builder.Update(accountsTable).
		Set("full_name", account.FullName).
		Set("phone", account.Phone).
		Set("country", account.Country).
		Set("profile_picture", account.ProfilePicture).
		Set("online", account.Online).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": account.ID, "deleted_at": nil}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update account sql: %w", err)
	}

	updated, err := scanAccount(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		if dup := duplicateError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("update account: %w", err)
	}

	return updated, nil
}

// UpdatePassword rewrites the password hash for the live account with the
// given email, bypassing a full-record save.
func (r *AccountRepository) UpdatePassword(ctx context.Context, email, passwordHash string) (int64, error) {
	stmt, args, err := r.builder.Update(accountsTable).
		Set("password_hash", passwordHash).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"email": email, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update password sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("update password: %w", err)
	}

	return ct.RowsAffected(), nil
}

// Tombstone marks the live account as deleted. The WHERE guard makes the
// operation idempotence-safe: a second call finds no live row and reports
// ErrNotFound instead of rewriting deleted_at.
func (r *AccountRepository) Tombstone(ctx context.Context, id int64) (*domain.Account, error) {
	stmt, args, err := r.builder.Update(accountsTable).
		Set("deleted_at", squirrel.Expr("now()")).
		Set("online", false).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tombstone account sql: %w", err)
	}

	account, err := scanAccount(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("tombstone account: %w", err)
	}

	return account, nil
}

func columnList() string {
	list := accountColumns[0]
	for _, col := range accountColumns[1:] {
		list += ", " + col
	}
	return list
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account        domain.Account
		country        sql.NullString
		profilePicture sql.NullString
	)

	if err := row.Scan(
		&account.ID,
		&account.FullName,
		&account.Username,
		&account.Email,
		&account.Phone,
		&country,
		&profilePicture,
		&account.PasswordHash,
		&account.EmailVerified,
		&account.Online,
		&account.DeletedAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if country.Valid {
		val := country.String
		account.Country = &val
	}
	if profilePicture.Valid {
		val := profilePicture.String
		account.ProfilePicture = &val
	}

	return &account, nil
}

// duplicateError maps a unique-constraint violation onto the field guarded by
// the violated partial index. These index names are part of the schema
// contract (see migrations).
func duplicateError(err error) *repository.DuplicateError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}

	switch pgErr.ConstraintName {
	case "accounts_username_live_key":
		return &repository.DuplicateError{Field: "username"}
	case "accounts_email_live_key":
		return &repository.DuplicateError{Field: "email"}
	case "accounts_phone_live_key":
		return &repository.DuplicateError{Field: "phone"}
	default:
		return &repository.DuplicateError{}
	}
}

var _ port.AccountRepository = (*AccountRepository)(nil)
