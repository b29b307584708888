// Package identity carries the caller's member id and locale through a
// request context. Middleware sets it once per request; services read it
// through the accessors below instead of looking at headers.
package identity

import "context"

type Identity struct {
	MemberID string
	Locale   string
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// MemberID returns the authenticated member id, or "" for anonymous requests.
func MemberID(ctx context.Context) string {
	id, _ := FromContext(ctx)
	return id.MemberID
}

// Locale returns the resolved request locale, or "" when none was resolved.
func Locale(ctx context.Context) string {
	id, _ := FromContext(ctx)
	return id.Locale
}

// WithLocale returns ctx with the locale replaced and the member id kept.
func WithLocale(ctx context.Context, locale string) context.Context {
	id, _ := FromContext(ctx)
	id.Locale = locale
	return WithIdentity(ctx, id)
}

// WithMemberID returns ctx with the member id replaced and the locale kept.
func WithMemberID(ctx context.Context, memberID string) context.Context {
	id, _ := FromContext(ctx)
	id.MemberID = memberID
	return WithIdentity(ctx, id)
}
