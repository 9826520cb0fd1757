package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-accounts/internal/core/port"
	"github.com/arklim/social-platform-accounts/internal/repository"
)

var (
	// ErrAccountNotFound indicates no live account matched the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCredentials indicates the email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordMismatch indicates the supplied current password is wrong.
	ErrPasswordMismatch = errors.New("current password does not match")
	// ErrPasswordUnchanged indicates the new password equals the current one.
	ErrPasswordUnchanged = errors.New("new password must differ from current password")
	// ErrAlreadyDeleted indicates the account was tombstoned before this call.
	ErrAlreadyDeleted = errors.New("account already deleted")
	// ErrDuplicateIdentifier indicates one or more identifiers are taken.
	ErrDuplicateIdentifier = errors.New("identifier already in use")
	// ErrUnavailable indicates a dependency failed and the caller may retry.
	ErrUnavailable = errors.New("service temporarily unavailable")
)

// DuplicateIdentifierError lists every conflicting identifier found during
// registration, in the fixed order username, email, phone.
type DuplicateIdentifierError struct {
	Fields []string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("identifiers already in use: %s", strings.Join(e.Fields, ", "))
}

func (e *DuplicateIdentifierError) Is(target error) bool {
	return target == ErrDuplicateIdentifier
}

// AccountService carries the account lifecycle operations. All collaborators
// are injected; the service holds no mutable state of its own.
type AccountService struct {
	accounts port.AccountRepository
	hasher   port.PasswordHasher
	events   port.EventPublisher
	logger   *zap.Logger
}

// NewAccountService wires the account use cases. A nil events publisher
// disables event emission.
func NewAccountService(accounts port.AccountRepository, hasher port.PasswordHasher, events port.EventPublisher, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accounts: accounts,
		hasher:   hasher,
		events:   events,
		logger:   logger,
	}
}

// wrapInfra classifies an infrastructure failure. Context expiry and
// cancellation become ErrUnavailable so the transport layer can answer with a
// retryable status instead of a generic failure.
func wrapInfra(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func duplicateFields(err error) []string {
	var dup *repository.DuplicateError
	if !errors.As(err, &dup) {
		return nil
	}
	if dup.Field == "" {
		return []string{"identifier"}
	}
	return []string{dup.Field}
}
