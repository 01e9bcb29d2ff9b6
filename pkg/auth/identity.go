package auth

import "context"

// RoleAdmin is the role allowed through the admin gate.
const RoleAdmin = "admin"

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

type ctxKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
