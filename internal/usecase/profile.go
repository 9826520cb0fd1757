package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
	"github.com/arklim/social-platform-accounts/internal/repository"
)

// ProfileEditInput carries a partial profile update for the account with the
// given id. A nil field means "leave unchanged"; the username, email, and
// password cannot be edited through this operation.
type ProfileEditInput struct {
	AccountID      int64
	FullName       *string
	Phone          *string
	Country        *string
	ProfilePicture *string
}

// EditProfile applies the provided fields to the account and returns the
// updated record. Changing the phone to one held by another live account
// fails with a duplicate-identifier conflict.
func (s *AccountService) EditProfile(ctx context.Context, input ProfileEditInput) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, wrapInfra("get account by id", err)
	}

	if input.FullName != nil {
		account.FullName = *input.FullName
	}
	if input.Phone != nil {
		account.Phone = *input.Phone
	}
	if input.Country != nil {
		account.Country = input.Country
	}
	if input.ProfilePicture != nil {
		account.ProfilePicture = input.ProfilePicture
	}

	updated, err := s.accounts.Update(ctx, *account)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &DuplicateIdentifierError{Fields: duplicateFields(err)}
		}
		return nil, wrapInfra("update account profile", err)
	}

	s.logger.Info("profile updated", zap.Int64("account_id", updated.ID))

	return updated, nil
}
