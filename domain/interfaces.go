package domain

import "context"

// Gateway defines the single chokepoint for remote calls. Implementations
// unwrap the response envelope: on success the data field is unmarshalled
// into out (out may be nil when the caller discards the payload); on failure
// the returned error is an *APIError already surfaced to the user.
type Gateway interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// TokenSource yields the current bearer credential. It is consulted on every
// request; an empty string means the call goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// Notifier receives user-facing messages. The toast store implements it; the
// gateway depends only on this narrow surface.
type Notifier interface {
	Success(message string) int64
	Error(message string) int64
	Warning(message string) int64
	Info(message string) int64
}

// Storage is the durable key-value mirror for session state. Get returns
// ErrKeyNotFound for absent keys.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// TokenInspector peeks inside a bearer token without verifying it. Clients
// hold no signing key; inspection is for expiry display only.
type TokenInspector interface {
	ExpiresAt(token string) (int64, error)
}

// SessionState is the authentication capability surface read by routing.
type SessionState interface {
	IsAuthenticated() bool
	IsPrivileged() bool
	CurrentUser() *User
	Token() string
}
