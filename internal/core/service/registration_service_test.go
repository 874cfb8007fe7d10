package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kivusafe/portal/internal/core/domain"
)

type stubRegistrationClient struct {
	got domain.Registration
	err error
}

func (c *stubRegistrationClient) Register(_ context.Context, reg domain.Registration) error {
	c.got = reg
	return c.err
}

func TestRegistrationService_Register(t *testing.T) {
	client := &stubRegistrationClient{}
	svc := NewRegistrationService(client, zerolog.Nop())

	reg := domain.Registration{FirstName: "Neema", Email: "neema@example.com", Password: "secret1"}
	if err := svc.Register(context.Background(), reg); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if client.got != reg {
		t.Fatalf("registration not forwarded verbatim: %+v", client.got)
	}
}

func TestRegistrationService_Register_Failure(t *testing.T) {
	client := &stubRegistrationClient{err: domain.ErrSubmissionFailed}
	svc := NewRegistrationService(client, zerolog.Nop())

	if err := svc.Register(context.Background(), domain.Registration{}); !errors.Is(err, domain.ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}
}
