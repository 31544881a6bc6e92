package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ferdiebergado/goexpress"
	"golang.org/x/sync/errgroup"

	"github.com/ferdiebergado/devconnector/internal/middleware"
	"github.com/ferdiebergado/devconnector/internal/pkg/web"
	"github.com/ferdiebergado/devconnector/internal/provider"
)

type App struct {
	provider        *provider.Provider
	server          *http.Server
	handler         http.Handler
	shutdownTimeout time.Duration
}

// New builds the API: global middlewares, routes, then CORS around the router
// so preflight requests are answered before route matching.
func New(p *provider.Provider) *App {
	a := &App{
		provider:        p,
		shutdownTimeout: p.Cfg.Server.ShutdownTimeout,
	}

	a.registerMiddlewares()
	a.setupRoutes()

	cfg := p.Cfg
	a.handler = middleware.CORS(cfg.Server.AllowedOrigins, cfg.JWT.Header, web.HeaderRequestID)(p.Router)

	serverCfg := cfg.Server
	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", serverCfg.Port),
		Handler:           a.handler,
		ReadTimeout:       serverCfg.ReadTimeout,
		ReadHeaderTimeout: serverCfg.ReadTimeout,
		WriteTimeout:      serverCfg.WriteTimeout,
		IdleTimeout:       serverCfg.IdleTimeout,
	}

	return a
}

func (a *App) registerMiddlewares() {
	middlewares := []func(http.Handler) http.Handler{
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.CheckContentType,
	}

	for _, mw := range middlewares {
		a.provider.Router.Use(mw)
	}
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves until ctx is canceled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		slog.Info("Server has stopped.")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

func (a *App) shutdown() error {
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
