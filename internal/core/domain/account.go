package domain

import "time"

// Account mirrors the persisted representation in the accounts table.
type Account struct {
	ID             int64
	FullName       string
	Username       string
	Email          string
	Phone          string
	Country        *string
	ProfilePicture *string
	PasswordHash   string
	EmailVerified  bool
	Online         bool
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Deleted reports whether the account has been tombstoned. Deletion is
// carried by the timestamp alone, so a deleted account without a deletion
// time cannot be represented.
func (a Account) Deleted() bool {
	return a.DeletedAt != nil
}

// AccountDraft captures the fields supplied at registration time. The
// identifier and timestamps are assigned by the persistence layer.
type AccountDraft struct {
	FullName       string
	Username       string
	Email          string
	Phone          string
	Country        *string
	ProfilePicture *string
	PasswordHash   string
}
