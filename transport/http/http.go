package http

import (
	"agenda/config"
	"agenda/shared/constant"
	"agenda/transport/http/middleware"
	"agenda/transport/http/response"
	"agenda/transport/http/router"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const readHeaderTimeout = 10 * time.Second

// Store is a mirrored collection the server keeps subscribed while it runs.
type Store interface {
	Subscribe(ctx context.Context) error
	Unsubscribe()
	Live() bool
}

// Stores are subscribed in declaration order and released in reverse.
type Stores struct {
	Businesses   Store
	Appointments Store
}

func (s Stores) named() []namedStore {
	return []namedStore{
		{name: "businesses", store: s.Businesses},
		{name: "appointments", store: s.Appointments},
	}
}

type namedStore struct {
	name  string
	store Store
}

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	Stores     Stores

	state   atomic.Int32
	once    sync.Once
	handler http.Handler
}

func New(cfg *config.Config, r router.Router, mw middleware.AppMiddleware, stores Stores) *HTTP {
	h := &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: mw,
		Stores:     stores,
	}
	h.state.Store(int32(ServerStateReady))

	return h
}

// Serve subscribes the stores, listens until SIGTERM and then drains.
func (h *HTTP) Serve() {
	h.subscribe(context.Background())

	server := &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting up HTTP server.")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-stop

	h.shutdown(server)
}

// Handler builds the routing tree once.
func (h *HTTP) Handler() http.Handler {
	h.once.Do(func() {
		mux := chi.NewRouter()

		mux.Use(chiMiddleware.RequestID)
		mux.Use(chiMiddleware.RealIP)
		mux.Use(chiMiddleware.Recoverer)
		mux.Use(h.Middleware.Tracing)
		mux.Use(h.Middleware.AccessLog)
		mux.Use(h.Middleware.CORS())
		mux.Use(h.Middleware.RateLimit())

		mux.Get("/health", h.health)

		h.Router.SetupRoutes(mux)

		h.handler = mux
	})

	return h.handler
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	if h.State() != ServerStateReady {
		response.WithPreparingShutdown(w)

		return
	}

	stores := map[string]bool{}
	for _, s := range h.Stores.named() {
		stores[s.name] = s.store.Live()
	}

	response.WithHealth(w, stores)
}

func (h *HTTP) subscribe(ctx context.Context) {
	for _, s := range h.Stores.named() {
		if err := s.store.Subscribe(ctx); err != nil {
			log.Error().Err(err).Str("store", s.name).Msg("failed to subscribe, serving unhealthy")

			continue
		}

		log.Info().Str("store", s.name).Msg("Store subscribed.")
	}
}

func (h *HTTP) unsubscribe() {
	stores := h.Stores.named()

	for i := len(stores) - 1; i >= 0; i-- {
		stores[i].store.Unsubscribe()
	}
}

func (h *HTTP) shutdown(server *http.Server) {
	defer h.unsubscribe()

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		_ = server.Close()

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.state.Store(int32(ServerStateInGracePeriod))

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Cleanup period ended with open connections.")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
