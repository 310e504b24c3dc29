// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/noambuilds/site/internal/config"
	"codeberg.org/noambuilds/site/internal/database"
	"codeberg.org/noambuilds/site/internal/handlers"
	"codeberg.org/noambuilds/site/internal/i18n"
	"codeberg.org/noambuilds/site/internal/repository"
	"codeberg.org/noambuilds/site/internal/services/email"
	"codeberg.org/noambuilds/site/internal/services/waitlist"
	"codeberg.org/noambuilds/site/internal/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	SetupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database (pending migrations are applied on open)
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	// Services
	mailer, err := email.NewService(&cfg.SMTP, cfg.SiteURL())
	if err != nil {
		return fmt.Errorf("failed to configure email: %w", err)
	}
	repo := repository.New(db)
	h := handlers.New(repo, waitlist.NewService(repo, mailer), mailer, cfg)

	return startWithGracefulShutdown(ctx, New(cfg, h), cfg)
}

// New builds the echo instance with middleware and routes.
func New(cfg *config.Config, h *handlers.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = handlers.ErrorHandler
	e.Pre(middleware.RemoveTrailingSlash())

	setupMiddleware(e, cfg, findAssets())
	setupRoutes(e, cfg, h)

	return e
}

// listener is one server the process runs until shutdown.
type listener struct {
	name     string
	serve    func() error
	shutdown func(context.Context) error
}

// listeners returns the servers to run for the resolved TLS mode. ACME serves
// HTTPS on :443 plus the challenge/redirect handler on :80.
func listeners(e *echo.Echo, cfg *config.Config, res *TLSResult) []listener {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	site := listener{name: "site", shutdown: e.Shutdown}

	switch res.Mode {
	case TLSModeOff:
		site.serve = func() error { return e.Start(addr) }
		return []listener{site}
	case TLSModeACME:
		site.serve = func() error { return startTLSServer(e, ":443", res.TLSConfig) }
		redirect := &http.Server{
			Addr:              ":80",
			Handler:           res.HTTPHandler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return []listener{site, {name: "acme-http", serve: redirect.ListenAndServe, shutdown: redirect.Shutdown}}
	default:
		site.serve = func() error { return startTLSServer(e, addr, res.TLSConfig) }
		return []listener{site}
	}
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	tlsResult, err := SetupTLS(cfg)
	if err != nil {
		return fmt.Errorf("TLS setup failed: %w", err)
	}

	servers := listeners(e, cfg, tlsResult)
	errChan := make(chan error, len(servers))
	for _, l := range servers {
		go func() {
			slog.Info("listener started", "name", l.name, "url", cfg.Server.BaseURL)
			if err := l.serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("%s: %w", l.name, err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, l := range servers {
		if err := l.shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "name", l.name, "error", err)
		}
	}

	slog.Info("server stopped")
	return nil
}

// startTLSServer serves e over TLS with the given configuration.
func startTLSServer(e *echo.Echo, addr string, tlsConfig *tls.Config) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}
	e.TLSListener = tls.NewListener(ln, tlsConfig)
	e.TLSServer.TLSConfig = tlsConfig
	return e.Server.Serve(e.TLSListener)
}
