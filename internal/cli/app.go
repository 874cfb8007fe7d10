package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kivusafe/portal/internal/api/handler"
	"github.com/kivusafe/portal/internal/core/domain"
	"github.com/kivusafe/portal/internal/core/ports"
	"github.com/kivusafe/portal/internal/core/service"
	"github.com/kivusafe/portal/internal/infrastructure/db/file"
	"github.com/kivusafe/portal/internal/infrastructure/db/mongo"
	"github.com/kivusafe/portal/internal/infrastructure/db/redis"
	"github.com/kivusafe/portal/internal/infrastructure/export"
	"github.com/kivusafe/portal/internal/infrastructure/remote"
	"github.com/kivusafe/portal/internal/pkg/config"
	"github.com/kivusafe/portal/pkg/logger"
)

// app is the wired object graph shared by every command.
type app struct {
	cfg          *config.Config
	log          zerolog.Logger
	client       *remote.Client
	store        ports.TokenStore
	session      *service.SessionManager
	reports      *service.ReportService
	registration *service.RegistrationService

	closers []func(context.Context) error
}

func newApp(ctx context.Context, e *env) (*app, error) {
	a := &app{cfg: e.cfg, log: e.log}

	client, err := remote.New(remote.Config{
		BaseURL: e.cfg.API.BaseURL,
		Timeout: e.cfg.API.Timeout,
	}, logger.Component("remote"))
	if err != nil {
		return nil, err
	}
	a.client = client

	if err := a.openTokenStore(ctx); err != nil {
		return nil, err
	}

	a.session = service.NewSessionManager(client, a.store, logger.Component("session"))
	a.reports = service.NewReportService(
		client,
		a.session,
		service.NewPalette(),
		service.MapSettings{
			Center: domain.Coordinates{Lat: e.cfg.Map.CenterLat, Lng: e.cfg.Map.CenterLng},
			Zoom:   e.cfg.Map.Zoom,
		},
		logger.Component("reports"),
		export.All()...,
	)
	a.registration = service.NewRegistrationService(client, logger.Component("registration"))
	return a, nil
}

func (a *app) openTokenStore(ctx context.Context) error {
	cfg := a.cfg
	switch cfg.Tokens.Store {
	case config.StoreRedis:
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		a.store = redis.NewTokenStore(client, cfg.Redis.KeyPrefix, cfg.Tokens.Key)

	case config.StoreMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client.Disconnect)
		a.store = mongo.NewTokenStore(db, cfg.Tokens.Key)

	case config.StoreFile:
		a.store = file.NewTokenStore(cfg.Tokens.File, cfg.Tokens.Key)

	default:
		return fmt.Errorf("unknown token store %q", cfg.Tokens.Store)
	}

	a.log.Debug().Str("store", cfg.Tokens.Store).Msg("token store ready")
	return nil
}

// healthDeps names what /health/ready checks.
func (a *app) healthDeps() map[string]handler.Pinger {
	return map[string]handler.Pinger{
		"token_store": a.store,
		"remote_api":  a.client,
	}
}

// restore runs the startup session restore and waits for it. Commands that
// read the session call it first.
func (a *app) restore(ctx context.Context) {
	a.session.Initialize(ctx)
}

func (a *app) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.Warn().Err(err).Msg("close")
		}
	}
}
