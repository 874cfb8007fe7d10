package ports

import "context"

// TokenStore persists the single bearer token across restarts.
type TokenStore interface {
	// Load returns "" and a nil error when no token is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
	Ping(ctx context.Context) error
}
