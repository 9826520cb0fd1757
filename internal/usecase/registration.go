package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
	"github.com/arklim/social-platform-accounts/internal/infra/logger"
	"github.com/arklim/social-platform-accounts/internal/repository"
)

// RegisterInput carries the structurally validated registration payload. The
// transport layer owns shape validation; nothing here re-checks formats.
type RegisterInput struct {
	FullName       string
	Username       string
	Email          string
	Phone          string
	Country        *string
	ProfilePicture *string
	Password       string
}

// Register creates a new account. Every identifier conflict is collected
// before failing, so a caller colliding on username, email, and phone learns
// about all three at once rather than one per attempt.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	matches, err := s.accounts.ListByAnyIdentifier(ctx, input.Username, input.Email, input.Phone)
	if err != nil {
		return nil, wrapInfra("list accounts by identifier", err)
	}

	if conflicts := collectConflicts(input, matches); len(conflicts) > 0 {
		return nil, &DuplicateIdentifierError{Fields: conflicts}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, wrapInfra("hash password", err)
	}

	account, err := s.accounts.Create(ctx, domain.AccountDraft{
		FullName:       input.FullName,
		Username:       input.Username,
		Email:          input.Email,
		Phone:          input.Phone,
		Country:        input.Country,
		ProfilePicture: input.ProfilePicture,
		PasswordHash:   hash,
	})
	if err != nil {
		// The pre-insert check races with concurrent registrations; the
		// unique indexes are the authority, so a violation here still
		// reports a conflict, not an internal failure.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &DuplicateIdentifierError{Fields: duplicateFields(err)}
		}
		return nil, wrapInfra("create account", err)
	}

	s.publishRegistered(ctx, account)

	s.logger.Info("account registered",
		zap.Int64("account_id", account.ID),
		zap.String("username", account.Username),
		zap.String("email", logger.MaskEmail(account.Email)),
	)

	return account, nil
}

// collectConflicts reports which of the requested identifiers are already
// held by a live account, in the fixed order username, email, phone.
func collectConflicts(input RegisterInput, matches []domain.Account) []string {
	var conflicts []string
	seen := make(map[string]bool, 3)

	for _, match := range matches {
		if match.Username == input.Username && !seen["username"] {
			seen["username"] = true
		}
		if match.Email == input.Email && !seen["email"] {
			seen["email"] = true
		}
		if match.Phone == input.Phone && !seen["phone"] {
			seen["phone"] = true
		}
	}

	for _, field := range []string{"username", "email", "phone"} {
		if seen[field] {
			conflicts = append(conflicts, field)
		}
	}

	return conflicts
}

func (s *AccountService) publishRegistered(ctx context.Context, account *domain.Account) {
	if s.events == nil {
		return
	}

	event := domain.AccountRegisteredEvent{
		EventID:      uuid.NewString(),
		AccountID:    account.ID,
		Username:     account.Username,
		Email:        account.Email,
		Phone:        account.Phone,
		RegisteredAt: time.Now().UTC(),
	}

	if err := s.events.PublishAccountRegistered(ctx, event); err != nil {
		s.logger.Warn("publish account registered event failed",
			zap.Int64("account_id", account.ID),
			zap.Error(err),
		)
	}
}
