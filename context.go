package catalogkit

import (
	"context"
)

// Context keys for catalogkit values.
type contextKey string

const (
	contextKeyCaller    contextKey = "catalogkit:caller"
	contextKeyActor     contextKey = "catalogkit:actor"
	contextKeyIPAddress contextKey = "catalogkit:ip_address"
	contextKeyUserAgent contextKey = "catalogkit:user_agent"
	contextKeyRequestID contextKey = "catalogkit:request_id"
	contextKeyChecker   contextKey = "catalogkit:checker"
)

// WithCaller adds the pre-verified caller identity to the context.
// Every operation reads the caller from here; the host is responsible for
// verifying that the identity authorized the request before setting it.
func WithCaller(ctx context.Context, caller Identity) context.Context {
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// GetCaller retrieves the caller identity from context.
// Returns the zero identity if not set.
func GetCaller(ctx context.Context) Identity {
	if v := ctx.Value(contextKeyCaller); v != nil {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return ZeroIdentity
}

// MustGetCaller retrieves the caller identity from context.
// Panics if not set.
func MustGetCaller(ctx context.Context) Identity {
	caller := GetCaller(ctx)
	if caller.IsZero() {
		panic("catalogkit: caller identity not in context")
	}
	return caller
}

// WithActor adds an actor identity to the context.
// This is the identity recorded in the audit log. Often the same as the
// caller, but can differ when one identity acts on behalf of another.
func WithActor(ctx context.Context, actor Identity) context.Context {
	return context.WithValue(ctx, contextKeyActor, actor)
}

// GetActor retrieves the actor identity from context.
// Falls back to the caller if the actor is not explicitly set.
func GetActor(ctx context.Context) Identity {
	if v := ctx.Value(contextKeyActor); v != nil {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	// Fallback to caller
	return GetCaller(ctx)
}

// WithIPAddress adds the client IP address to the context (for audit).
func WithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKeyIPAddress, ip)
}

// GetIPAddress retrieves the IP address from context.
func GetIPAddress(ctx context.Context) string {
	if v := ctx.Value(contextKeyIPAddress); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithUserAgent adds the user agent to the context (for audit).
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, contextKeyUserAgent, ua)
}

// GetUserAgent retrieves the user agent from context.
func GetUserAgent(ctx context.Context) string {
	if v := ctx.Value(contextKeyUserAgent); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context (for audit and correlation).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(contextKeyRequestID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithChecker adds a Checker to the context.
// This is set by middleware and can be retrieved in handlers.
func WithChecker(ctx context.Context, checker *Checker) context.Context {
	return context.WithValue(ctx, contextKeyChecker, checker)
}

// GetChecker retrieves the Checker from context.
// Returns nil if not set.
func GetChecker(ctx context.Context) *Checker {
	if v := ctx.Value(contextKeyChecker); v != nil {
		if c, ok := v.(*Checker); ok {
			return c
		}
	}
	return nil
}

// FromContext retrieves the Checker from context.
// Alias for GetChecker for convenience.
func FromContext(ctx context.Context) *Checker {
	return GetChecker(ctx)
}

// AuditContext holds all audit-related information from context.
type AuditContext struct {
	Actor     Identity
	IPAddress string
	UserAgent string
	RequestID string
}

// GetAuditContext extracts all audit information from context.
func GetAuditContext(ctx context.Context) AuditContext {
	return AuditContext{
		Actor:     GetActor(ctx),
		IPAddress: GetIPAddress(ctx),
		UserAgent: GetUserAgent(ctx),
		RequestID: GetRequestID(ctx),
	}
}

// WithAuditContext adds all audit information to context at once.
func WithAuditContext(ctx context.Context, ac AuditContext) context.Context {
	if !ac.Actor.IsZero() {
		ctx = WithActor(ctx, ac.Actor)
	}
	if ac.IPAddress != "" {
		ctx = WithIPAddress(ctx, ac.IPAddress)
	}
	if ac.UserAgent != "" {
		ctx = WithUserAgent(ctx, ac.UserAgent)
	}
	if ac.RequestID != "" {
		ctx = WithRequestID(ctx, ac.RequestID)
	}
	return ctx
}
