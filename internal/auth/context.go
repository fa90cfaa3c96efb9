package auth

import "context"

// Identity is the request-scoped caller identity. It is injected by the
// JWT middleware and passed through context; handlers never read session
// state from anywhere else.
type Identity struct {
	Sub  string
	Name string
	Role string
}

type ctxKey struct{}

var ctxKeyIdentity = ctxKey{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

func IdentityFromContext(ctx context.Context) Identity {
	if v := ctx.Value(ctxKeyIdentity); v != nil {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{}
}
