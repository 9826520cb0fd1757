package port

import (
	"context"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
)

// AccountRepository exposes persistence behavior for accounts. Lookups only
// consider live rows unless noted otherwise: a tombstoned account is invisible
// to them, which is what allows its identifiers to be reused by a later
// registration.
type AccountRepository interface {
	// Create inserts a new account and returns the stored row with its
	// generated identifier and timestamps. A uniqueness violation (a lost
	// check-then-insert race) surfaces as repository.DuplicateError.
	Create(ctx context.Context, draft domain.AccountDraft) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	// GetByIDAny retrieves an account regardless of tombstone state, so a
	// caller can tell "never existed" apart from "already deleted".
	GetByIDAny(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// ListByAnyIdentifier returns every live account holding any of the
	// provided identifiers, ordered by id. Distinct identifiers may belong
	// to distinct rows, so more than one match is possible.
	ListByAnyIdentifier(ctx context.Context, username, email, phone string) ([]domain.Account, error)
	// Update persists the mutable fields and bumps updated_at.
	Update(ctx context.Context, account domain.Account) (*domain.Account, error)
	// UpdatePassword rewrites the password hash for the account with the
	// given email and reports the number of rows touched.
	UpdatePassword(ctx context.Context, email, passwordHash string) (int64, error)
	// Tombstone marks the live account as deleted and returns the updated
	// row. repository.ErrNotFound means no live row existed, which covers
	// both "never existed" and "already tombstoned".
	Tombstone(ctx context.Context, id int64) (*domain.Account, error)
}
