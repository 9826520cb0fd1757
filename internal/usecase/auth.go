package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
	"github.com/arklim/social-platform-accounts/internal/infra/logger"
	"github.com/arklim/social-platform-accounts/internal/repository"
)

// Authenticate verifies an email/password pair and marks the account online.
// Tombstoned accounts are already invisible to the email lookup, so no
// separate deletion check happens here.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, wrapInfra("get account by email", err)
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, wrapInfra("verify password", err)
	}
	if !ok {
		s.logger.Info("sign-in rejected",
			zap.String("email", logger.MaskEmail(email)),
		)
		return nil, ErrInvalidCredentials
	}

	account.Online = true
	updated, err := s.accounts.Update(ctx, *account)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, wrapInfra("mark account online", err)
	}

	s.logger.Info("account signed in",
		zap.Int64("account_id", updated.ID),
		zap.String("email", logger.MaskEmail(updated.Email)),
	)

	return updated, nil
}
