package ports

import "context"

type tokenCtxKey struct{}

// WithToken returns a context carrying the session's bearer token. The API
// client gateway attaches it to every outbound request; without it the
// request goes out unauthenticated and the server decides authorization.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// TokenFromContext extracts the bearer token, if any.
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenCtxKey{}).(string)
	return tok
}
