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

// ChangePassword rotates the password for the account with the given email.
// The current password must verify against the stored hash, and the new
// password must actually differ from it.
func (s *AccountService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return wrapInfra("get account by email", err)
	}

	ok, err := s.hasher.Verify(currentPassword, account.PasswordHash)
	if err != nil {
		return wrapInfra("verify current password", err)
	}
	if !ok {
		return ErrPasswordMismatch
	}

	same, err := s.hasher.Verify(newPassword, account.PasswordHash)
	if err != nil {
		return wrapInfra("verify new password", err)
	}
	if same {
		return ErrPasswordUnchanged
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return wrapInfra("hash new password", err)
	}

	affected, err := s.accounts.UpdatePassword(ctx, email, hash)
	if err != nil {
		return wrapInfra("update password", err)
	}
	if affected == 0 {
		// The account was tombstoned between the lookup and the write.
		return ErrAccountNotFound
	}

	s.publishPasswordChanged(ctx, account)

	s.logger.Info("password changed",
		zap.Int64("account_id", account.ID),
		zap.String("email", logger.MaskEmail(email)),
	)

	return nil
}

func (s *AccountService) publishPasswordChanged(ctx context.Context, account *domain.Account) {
	if s.events == nil {
		return
	}

	event := domain.PasswordChangedEvent{
		EventID:   uuid.NewString(),
		AccountID: account.ID,
		Email:     account.Email,
		ChangedAt: time.Now().UTC(),
	}

	if err := s.events.PublishPasswordChanged(ctx, event); err != nil {
		s.logger.Warn("publish password changed event failed",
			zap.Int64("account_id", account.ID),
			zap.Error(err),
		)
	}
}
