package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kivusafe/portal/internal/core/domain"
	"github.com/kivusafe/portal/internal/core/ports"
)

type RegistrationService struct {
	client ports.RegistrationClient
	log    zerolog.Logger
}

func NewRegistrationService(client ports.RegistrationClient, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{client: client, log: log}
}

// Register forwards a new account to the remote API.
func (s *RegistrationService) Register(ctx context.Context, reg domain.Registration) error {
	if err := s.client.Register(ctx, reg); err != nil {
		s.log.Warn().Err(err).Str("email", reg.Email).Msg("registration failed")
		return fmt.Errorf("register: %w", err)
	}
	s.log.Info().Str("email", reg.Email).Str("city", reg.City).Msg("account registered")
	return nil
}
