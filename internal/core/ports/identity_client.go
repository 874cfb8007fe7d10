package ports

import (
	"context"
	"encoding/json"

	"github.com/kivusafe/portal/internal/core/domain"
)

// IdentityClient talks to the remote identity endpoints.
type IdentityClient interface {
	// Login exchanges credentials for a bearer token. An empty token with a
	// nil error means the remote accepted the request but issued no token.
	Login(ctx context.Context, email, password string) (string, error)
	// CurrentUser returns the user record the token belongs to.
	CurrentUser(ctx context.Context, token string) (json.RawMessage, error)
}

// RegistrationClient forwards new accounts to the remote API.
type RegistrationClient interface {
	Register(ctx context.Context, reg domain.Registration) error
}
