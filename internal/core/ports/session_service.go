package ports

import (
	"context"
	"encoding/json"

	"github.com/kivusafe/portal/internal/core/domain"
)

// SessionService is the portal-wide authority on who is logged in.
type SessionService interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error

	Session() domain.Session
	User() (json.RawMessage, bool)
	Token() string
	Authenticated() bool
	Loading() bool
	Ready() <-chan struct{}
}
