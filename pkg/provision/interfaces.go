package provision

import (
	"context"
)

// IdentityStore is the engine's view of the external identity management
// system. Implementations are thin pass-throughs: they translate backend
// errors into the package's error categories and carry no retry logic of
// their own.
type IdentityStore interface {
	// CreateUser creates a named user. A user that already exists is not
	// an error; it is reported through the outcome so the caller can
	// branch explicitly.
	CreateUser(ctx context.Context, name string) (CreateOutcome, error)

	// SetLoginPassword assigns a login password to the user. When
	// resetRequired is set the user must change the password on first
	// use.
	SetLoginPassword(ctx context.Context, name, password string, resetRequired bool) error

	// AddToGroup adds the user to a named access group.
	AddToGroup(ctx context.Context, group, name string) error

	// RemoveFromGroup removes the user from a named access group.
	RemoveFromGroup(ctx context.Context, group, name string) error

	// DeleteLoginPassword removes the user's login password.
	DeleteLoginPassword(ctx context.Context, name string) error

	// DeleteUser deletes the named user.
	DeleteUser(ctx context.Context, name string) error
}

// SecretStore is the engine's view of the external secret storage system.
type SecretStore interface {
	// PutSecret creates a secret under the given identifier holding the
	// payload.
	PutSecret(ctx context.Context, id string, payload SecretPayload) error

	// DeleteSecret removes the secret without a recovery window, so that
	// recreating a stack with the same user names cannot collide with a
	// soft-deleted entry.
	DeleteSecret(ctx context.Context, id string) error
}

// Reporter delivers the single outcome callback for an invocation back to
// the orchestrator.
type Reporter interface {
	Report(ctx context.Context, event Event, result Result) error
}
