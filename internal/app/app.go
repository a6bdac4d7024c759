package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/hackathons/internal/config"
	"github.com/klokku/hackathons/internal/event_bus"
	"github.com/klokku/hackathons/internal/storage"
	"github.com/klokku/hackathons/internal/utils"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg     config.Application
	storage storage.Storage
	deps    *Dependencies
	router  *mux.Router
	srv     *http.Server
}

// NewRouter builds the router with middlewares and all API routes.
func NewRouter(deps *Dependencies) *mux.Router {
	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps)
	return r
}

// NewApplication opens the configured storage and constructs the HTTP application, ready to Run().
func NewApplication(ctx context.Context, cfg config.Application) (*Application, error) {
	s, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	deps := BuildDependencies(s, cfg, event_bus.NewEventBus(), utils.SystemClock{})
	r := NewRouter(deps)

	srv := &http.Server{
		Handler: r,
		Addr:    cfg.Addr,
		// countdown streams clear their own write deadline
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, storage: s, deps: deps, router: r, srv: srv}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
// Open countdown streams end together with ctx.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		if err := a.storage.Close(); err != nil {
			log.Errorf("failed to close storage: %v", err)
		}
	}()

	a.srv.BaseContext = func(net.Listener) context.Context { return ctx }

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
