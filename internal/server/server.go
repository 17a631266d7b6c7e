// Package server is the composition root: it opens the store, builds the
// services and handlers, mounts the routes and runs the HTTP server.
//
//	main.go → config.Load → server.New:
//	  sqlite.DB → Venue/Artist/Show/AuthService → handlers → chi routes
//
// Every dependency is wired here, so handlers and services only ever see
// the interfaces they are given.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/gigboard/internal/auth"
	"github.com/sakif/gigboard/internal/clock"
	"github.com/sakif/gigboard/internal/config"
	"github.com/sakif/gigboard/internal/events"
	"github.com/sakif/gigboard/internal/handler"
	"github.com/sakif/gigboard/internal/metrics"
	"github.com/sakif/gigboard/internal/middleware"
	sqliteRepo "github.com/sakif/gigboard/internal/repository/sqlite"
	"github.com/sakif/gigboard/internal/service"
)

// Server owns the router and the database; the database is closed when the
// server stops.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	clock  clock.Clock
}

// Option adjusts a Server before its routes are built.
type Option func(*Server)

// WithClock replaces the wall clock used to split past from upcoming shows.
func WithClock(c clock.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// New opens the database at cfg.DBPath and wires every route.
func New(cfg config.Config, logger *slog.Logger, opts ...Option) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
		clock:  clock.NewSystem(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start does this itself on shutdown.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes mounts:
//
//	GET    /healthz
//	GET    /metrics                     (METRICS_ENABLED)
//	GET    /api/venues                  GET|POST /api/venues/search
//	GET    /api/venues/{id}
//	POST   /api/venues                  PUT|DELETE /api/venues/{id}   (editor)
//	GET    /api/artists                 GET|POST /api/artists/search
//	GET    /api/artists/{id}
//	POST   /api/artists                 PUT /api/artists/{id}         (editor)
//	GET    /api/shows                   POST /api/shows               (editor)
//	POST   /auth/login, /auth/logout    GET /api/me                   (JWT_SECRET)
//	GET    /auth/github/login, /auth/github/callback                  (GitHub app)
//
// Without JWT_SECRET the editor routes are open.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	var publisher events.Publisher = events.NopPublisher{}
	if s.config.AMQPURL != "" {
		publisher = events.NewAMQPPublisher(s.config.AMQPURL)
	}

	if s.config.MetricsEnabled {
		m := metrics.New()
		s.router.Use(m.Middleware)
		s.router.Handle(metrics.Path, m.Handler())
		publisher = &countingPublisher{next: publisher, metrics: m}
	}

	var tokens *auth.TokenService
	if s.config.AuthEnabled() {
		var err error
		tokens, err = auth.NewTokenService(s.config.JWTSecret)
		if err != nil {
			return fmt.Errorf("creating token service: %w", err)
		}
	} else {
		s.logger.Warn("JWT_SECRET not set: editor routes are open to everyone")
	}

	venueService := service.NewVenueService(s.db, s.db, s.db, s.clock, s.config.Boundary, s.logger)
	artistService := service.NewArtistService(s.db, s.db, s.db, s.clock, s.config.Boundary, s.logger)
	showService := service.NewShowService(s.db, s.db, s.db, publisher, s.clock, s.config.Boundary, s.logger)

	venues := handler.NewVenueHandler(venueService, s.logger)
	artists := handler.NewArtistHandler(artistService, s.logger)
	shows := handler.NewShowHandler(showService, s.logger)

	s.router.Get("/healthz", handler.HandleHealth(s.db, s.logger))

	var authHandler *handler.AuthHandler
	if tokens != nil {
		authService := service.NewAuthService(s.db, tokens, auth.NewPasswordService(), service.AuthConfig{
			AdminPasswordHash:   s.config.AdminPasswordHash,
			AllowedGitHubLogins: s.config.GitHubAllowedLogins,
		}, s.logger)

		var github handler.GitHubAuthenticator
		if s.config.GitHubEnabled() {
			github = auth.NewGitHubProvider(s.config.GitHubClientID, s.config.GitHubClientSecret, s.config.GitHubCallbackURL)
		}
		authHandler = handler.NewAuthHandler(authService, github, tokens.TTL(), s.logger)

		s.router.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/logout", authHandler.HandleLogout)
			if github != nil {
				r.Get("/github/login", authHandler.HandleGitHubLogin)
				r.Get("/github/callback", authHandler.HandleGitHubCallback)
			}
		})
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/venues", venues.HandleAreas)
		r.Get("/venues/search", venues.HandleSearch)
		r.Post("/venues/search", venues.HandleSearch)
		r.Get("/venues/{id}", venues.HandleDetail)

		r.Get("/artists", artists.HandleList)
		r.Get("/artists/search", artists.HandleSearch)
		r.Post("/artists/search", artists.HandleSearch)
		r.Get("/artists/{id}", artists.HandleDetail)

		r.Get("/shows", shows.HandleUpcoming)

		r.Group(func(r chi.Router) {
			if tokens != nil {
				r.Use(auth.RequireEditor(tokens))
				r.Get("/me", authHandler.HandleMe)
			}

			r.Post("/venues", venues.HandleCreate)
			r.Put("/venues/{id}", venues.HandleUpdate)
			r.Delete("/venues/{id}", venues.HandleDelete)

			r.Post("/artists", artists.HandleCreate)
			r.Put("/artists/{id}", artists.HandleUpdate)

			r.Post("/shows", shows.HandleCreate)
		})
	})

	return nil
}

// countingPublisher bumps the shows-listed counter before handing the event
// on. It is only called once a show is stored.
type countingPublisher struct {
	next    events.Publisher
	metrics *metrics.Metrics
}

func (p *countingPublisher) PublishShowListed(ctx context.Context, ev events.ShowListed) error {
	p.metrics.ShowListed()
	return p.next.PublishShowListed(ctx, ev)
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for
// up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
			slog.String("showBoundary", s.config.Boundary.String()),
			slog.Bool("auth", s.config.AuthEnabled()),
			slog.Bool("events", s.config.AMQPURL != ""),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
