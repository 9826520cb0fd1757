package domain

import "time"

// AccountRegisteredEvent is emitted after a registration is persisted.
type AccountRegisteredEvent struct {
	EventID      string
	AccountID    int64
	Username     string
	Email        string
	Phone        string
	RegisteredAt time.Time
}

// PasswordChangedEvent is emitted after a successful password rotation.
type PasswordChangedEvent struct {
	EventID   string
	AccountID int64
	Email     string
	ChangedAt time.Time
}

// AccountDeletedEvent is emitted after an account is tombstoned.
type AccountDeletedEvent struct {
	EventID   string
	AccountID int64
	Username  string
	DeletedAt time.Time
}
