package identity

import (
	"context"
	"errors"
)

var (
	ErrEmailTaken       = errors.New("identity: email already taken")
	ErrIdentityNotFound = errors.New("identity: record not found")
)

// User is the provider-side identity record as this system sees it.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Banned    bool
}

// Provider manages external identity records (auth accounts) for people.
// CreateUser registers the account with a random unusable placeholder
// credential; the person completes a reset/verification flow outside this
// system. All methods are remote calls and honor ctx cancellation.
type Provider interface {
	CreateUser(ctx context.Context, email, firstName, lastName string) (string, error)
	UpdateName(ctx context.Context, identityID, firstName, lastName string) error
	BanUser(ctx context.Context, identityID string) error
	UnbanUser(ctx context.Context, identityID string) error
	DeleteUser(ctx context.Context, identityID string) error
}
