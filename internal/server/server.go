package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/brk3/cadence/internal/config"
	"github.com/brk3/cadence/internal/logger"
	"github.com/brk3/cadence/internal/storage"
	"github.com/brk3/cadence/pkg/habit"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

type Server struct {
	cfg   *config.Config
	store storage.Store
	loc   *time.Location
	now   func() time.Time
}

type Option func(*Server)

// WithClock replaces the wall clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(cfg *config.Config, store storage.Store, opts ...Option) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, store: store, loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Server) today() habit.Day {
	return habit.LocalDay(s.now(), s.loc)
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)
	r.Use(metricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.userMiddleware)

		r.Get("/stats", s.getAllStats)
		r.Get("/dashboard", s.getDashboard)
		r.Route("/habits", func(r chi.Router) {
			r.Post("/", s.createHabit)
			r.Get("/", s.listHabits)
			r.Route("/{habit_id}", func(r chi.Router) {
				r.Get("/", s.getHabit)
				r.Patch("/", s.updateHabit)
				r.Delete("/", s.deleteHabit)
				r.Post("/archive", s.archiveHabit)
				r.Post("/toggle", s.toggleHabit)
				r.Get("/logs", s.listLogs)
				r.Get("/stats", s.getHabitStats)
				r.Get("/days", s.getHabitDays)
			})
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", srv.Addr, "storage", s.cfg.Storage.Driver, "timezone", s.loc.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
