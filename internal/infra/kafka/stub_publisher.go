package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
	"github.com/arklim/social-platform-accounts/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for
// development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, accountID int64, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.Int64("account_id", accountID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishAccountRegistered logs account.registered events.
func (p *StubPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	payload := map[string]any{
		"account_id":    event.AccountID,
		"username":      event.Username,
		"email":         event.Email,
		"phone":         event.Phone,
		"registered_at": event.RegisteredAt,
	}
	p.logEvent("account.registered", event.AccountID, event.RegisteredAt, payload)
	return nil
}

// PublishPasswordChanged logs account.password_changed events.
func (p *StubPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	payload := map[string]any{
		"account_id": event.AccountID,
		"email":      event.Email,
		"changed_at": event.ChangedAt,
	}
	p.logEvent("account.password_changed", event.AccountID, event.ChangedAt, payload)
	return nil
}

// PublishAccountDeleted logs account.deleted events.
func (p *StubPublisher) PublishAccountDeleted(_ context.Context, event domain.AccountDeletedEvent) error {
	payload := map[string]any{
		"account_id": event.AccountID,
		"username":   event.Username,
		"deleted_at": event.DeletedAt,
	}
	p.logEvent("account.deleted", event.AccountID, event.DeletedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
