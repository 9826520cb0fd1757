package port

import (
	"context"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
)

// EventPublisher publishes account lifecycle events to the message bus.
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error
	PublishPasswordChanged(ctx context.Context, event domain.PasswordChangedEvent) error
	PublishAccountDeleted(ctx context.Context, event domain.AccountDeletedEvent) error
}
