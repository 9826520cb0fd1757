package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
	"github.com/arklim/social-platform-accounts/internal/repository"
)

func TestChangePassword_Success(t *testing.T) {
	var storedHash string
	repo := &mockAccountRepo{
		getByEmailFn: func(_ context.Context, _ string) (*domain.Account, error) {
			return liveAccount(1), nil
		},
		updatePasswordFn: func(_ context.Context, email, hash string) (int64, error) {
			if email != "jordan@example.com" {
				t.Fatalf("unexpected email: %q", email)
			}
			storedHash = hash
			return 1, nil
		},
	}
	publisher := &recordingPublisher{}

	svc := NewAccountService(repo, fakeHasher{}, publisher, nil)

	err := svc.ChangePassword(context.Background(), "jordan@example.com", "Abc123!@#", "Xyz789!@#")
	if err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if storedHash != "hashed:Xyz789!@#" {
		t.Fatalf("expected new hash persisted, got %q", storedHash)
	}
	if len(publisher.changed) != 1 {
		t.Fatalf("expected 1 password changed event, got %d", len(publisher.changed))
	}
}

func TestChangePassword_UnknownEmail(t *testing.T) {
	repo := &mockAccountRepo{
		getByEmailFn: func(_ context.Context, _ string) (*domain.Account, error) {
			return nil, repository.ErrNotFound
		},
	}

	svc := NewAccountService(repo, fakeHasher{}, nil, nil)

	err := svc.ChangePassword(context.Background(), "missing@example.com", "a", "b")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestChangePassword_CurrentMismatch(t *testing.T) {
	repo := &mockAccountRepo{
		getByEmailFn: func(_ context.Context, _ string) (*domain.Account, error) {
			return liveAccount(1), nil
		},
	}

	svc := NewAccountService(repo, fakeHasher{}, nil, nil)

	err := svc.ChangePassword(context.Background(), "jordan@example.com", "not-the-password", "Xyz789!@#")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestChangePassword_SameAsCurrent(t *testing.T) {
	repo := &mockAccountRepo{
		getByEmailFn: func(_ context.Context, _ string) (*domain.Account, error) {
			return liveAccount(1), nil
		},
		updatePasswordFn: func(_ context.Context, _, _ string) (int64, error) {
			t.Fatal("update must not run for an unchanged password")
			return 0, nil
		},
	}

	svc := NewAccountService(repo, fakeHasher{}, nil, nil)

	err := svc.ChangePassword(context.Background(), "jordan@example.com", "Abc123!@#", "Abc123!@#")
	if !errors.Is(err, ErrPasswordUnchanged) {
		t.Fatalf("expected ErrPasswordUnchanged, got %v", err)
	}
}

func TestChangePassword_CaseSensitiveComparison(t *testing.T) {
	repo := &mockAccountRepo{
		getByEmailFn: func(_ context.Context, _ string) (*domain.Account, error) {
			return liveAccount(1), nil
		},
		updatePasswordFn: func(_ context.Context, _, _ string) (int64, error) {
			return 1, nil
		},
	}

	svc := NewAccountService(repo, fakeHasher{}, nil, nil)

	// Differs from the current password only by case, which is a real change.
	err := svc.ChangePassword(context.Background(), "jordan@example.com", "Abc123!@#", "abc123!@#")
	if err != nil {
		t.Fatalf("case-variant password must be accepted, got %v", err)
	}
}

func TestChangePassword_AccountVanishedBeforeWrite(t *testing.T) {
	repo := &mockAccountRepo{
		getByEmailFn: func(_ context.Context, _ string) (*domain.Account, error) {
			return liveAccount(1), nil
		},
		updatePasswordFn: func(_ context.Context, _, _ string) (int64, error) {
			return 0, nil
		},
	}

	svc := NewAccountService(repo, fakeHasher{}, nil, nil)

	err := svc.ChangePassword(context.Background(), "jordan@example.com", "Abc123!@#", "Xyz789!@#")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound when no row updated, got %v", err)
	}
}
