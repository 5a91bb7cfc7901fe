// Package identity resolves the vendor identity attached to a request.
package identity

import (
	"context"
	"errors"
)

// ErrNoIdentity signals an operation that requires a caller identity when the
// request carried no valid credentials.
var ErrNoIdentity = errors.New("no identity in context")

// Identity is the validated claim set of the calling vendor.
type Identity struct {
	ID      string
	Email   string
	Name    string
	Surname string
}

type contextKey struct{}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the caller identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// CurrentUser returns the caller identity or ErrNoIdentity.
func CurrentUser(ctx context.Context) (Identity, error) {
	id, ok := FromContext(ctx)
	if !ok || id.ID == "" {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}
