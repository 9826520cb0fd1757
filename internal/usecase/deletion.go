package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
	"github.com/arklim/social-platform-accounts/internal/repository"
)

// Delete tombstones the account with the given identifier. An id that never
// existed reports ErrAccountNotFound; an id that is already tombstoned, or
// that loses the race to a concurrent delete between lookup and tombstone,
// reports ErrAlreadyDeleted. A tombstone is written exactly once and never
// rewritten.
func (s *AccountService) Delete(ctx context.Context, id int64) (*domain.Account, error) {
	existing, err := s.accounts.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, wrapInfra("get account by id", err)
	}
	if existing.Deleted() {
		return nil, ErrAlreadyDeleted
	}

	account, err := s.accounts.Tombstone(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAlreadyDeleted
		}
		return nil, wrapInfra("tombstone account", err)
	}

	s.publishDeleted(ctx, account)

	s.logger.Info("account deleted",
		zap.Int64("account_id", account.ID),
		zap.String("username", account.Username),
	)

	return account, nil
}

func (s *AccountService) publishDeleted(ctx context.Context, account *domain.Account) {
	if s.events == nil {
		return
	}

	deletedAt := time.Now().UTC()
	if account.DeletedAt != nil {
		deletedAt = *account.DeletedAt
	}

	event := domain.AccountDeletedEvent{
		EventID:   uuid.NewString(),
		AccountID: account.ID,
		Username:  account.Username,
		DeletedAt: deletedAt,
	}

	if err := s.events.PublishAccountDeleted(ctx, event); err != nil {
		s.logger.Warn("publish account deleted event failed",
			zap.Int64("account_id", account.ID),
			zap.Error(err),
		)
	}
}
