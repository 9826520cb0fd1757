package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
	"github.com/arklim/social-platform-accounts/internal/repository"
)

func TestDelete_Success(t *testing.T) {
	deletedAt := time.Now().UTC()
	repo := &mockAccountRepo{
		getByIDAnyFn: func(_ context.Context, id int64) (*domain.Account, error) {
			return liveAccount(id), nil
		},
		tombstoneFn: func(_ context.Context, id int64) (*domain.Account, error) {
			account := liveAccount(id)
			account.DeletedAt = &deletedAt
			account.Online = false
			return account, nil
		},
	}
	publisher := &recordingPublisher{}

	svc := NewAccountService(repo, fakeHasher{}, publisher, nil)

	account, err := svc.Delete(context.Background(), 5)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !account.Deleted() {
		t.Fatal("expected tombstoned account")
	}
	if account.Online {
		t.Fatal("deleted account must not stay online")
	}
	if len(publisher.deleted) != 1 {
		t.Fatalf("expected 1 deleted event, got %d", len(publisher.deleted))
	}
	if !publisher.deleted[0].DeletedAt.Equal(deletedAt) {
		t.Fatalf("event carries wrong deletion time: %v", publisher.deleted[0].DeletedAt)
	}
}

func TestDelete_UnknownAccount(t *testing.T) {
	repo := &mockAccountRepo{
		getByIDAnyFn: func(_ context.Context, _ int64) (*domain.Account, error) {
			return nil, repository.ErrNotFound
		},
	}

	svc := NewAccountService(repo, fakeHasher{}, nil, nil)

	_, err := svc.Delete(context.Background(), 404)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestDelete_AlreadyDeleted(t *testing.T) {
	// A repeat delete finds the tombstoned row via the any-state lookup and
	// reports already-deleted without rewriting deleted_at.
	deletedAt := time.Now().UTC().Add(-time.Hour)
	repo := &mockAccountRepo{
		getByIDAnyFn: func(_ context.Context, id int64) (*domain.Account, error) {
			account := liveAccount(id)
			account.DeletedAt = &deletedAt
			account.Online = false
			return account, nil
		},
		tombstoneFn: func(_ context.Context, _ int64) (*domain.Account, error) {
			t.Fatal("tombstone must not run against an already-deleted account")
			return nil, nil
		},
	}

	svc := NewAccountService(repo, fakeHasher{}, nil, nil)

	_, err := svc.Delete(context.Background(), 7)
	if !errors.Is(err, ErrAlreadyDeleted) {
		t.Fatalf("expected ErrAlreadyDeleted, got %v", err)
	}
}

func TestDelete_RacedTombstone(t *testing.T) {
	repo := &mockAccountRepo{
		getByIDAnyFn: func(_ context.Context, id int64) (*domain.Account, error) {
			return liveAccount(id), nil
		},
		tombstoneFn: func(_ context.Context, _ int64) (*domain.Account, error) {
			// Another request tombstoned the row between lookup and write.
			return nil, repository.ErrNotFound
		},
	}

	svc := NewAccountService(repo, fakeHasher{}, nil, nil)

	_, err := svc.Delete(context.Background(), 5)
	if !errors.Is(err, ErrAlreadyDeleted) {
		t.Fatalf("expected ErrAlreadyDeleted, got %v", err)
	}
}
