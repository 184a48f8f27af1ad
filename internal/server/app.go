// Package server wires the application together: configuration, logging, the
// document store, the LLM provider and the HTTP endpoint, plus graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/degreedialog/advisor/internal/logging"
	"github.com/degreedialog/advisor/internal/server/chats"
	"github.com/degreedialog/advisor/internal/server/config"
	"github.com/degreedialog/advisor/internal/server/httpapi"
	"github.com/degreedialog/advisor/internal/server/llm"
	"github.com/degreedialog/advisor/internal/server/shared/db"
	"github.com/degreedialog/advisor/internal/server/users"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	manager    db.Manager
	httpServer *httpapi.Server
}

// NewApp constructs every long-lived dependency once. In fail-fast mode an
// unreachable store aborts startup; in degrade mode the server starts anyway
// and authenticated endpoints answer 503 until the store comes back.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	manager, err := db.NewMongoManager(ctx, cfg.StoreURI, cfg.StoreName)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	if err := manager.Ping(ctx); err != nil {
		if cfg.StartupMode == config.StartupModeFailFast {
			return nil, fmt.Errorf("store ping error: %w", err)
		}
		logger.Warn(ctx, "store unreachable at startup, continuing in degraded mode", "error", err.Error())
	}

	provider, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("llm provider init error: %w", err)
	}

	us := users.NewService(manager.Users(), cfg)
	cs := chats.NewService(manager.Chats(), provider, logger)

	httpServer := httpapi.NewServer(cfg.EndpointAddr, logger, us, cs, cfg.CORSAllowedOrigins)

	return &App{config: cfg, logger: logger, manager: manager, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "store close error", "error", err.Error())
	}
}
