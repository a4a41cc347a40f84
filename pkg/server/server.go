package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	handlers "github.com/kothscore/helios/pkg/handlers/submission"
	heliosmiddleware "github.com/kothscore/helios/pkg/server/middleware"
	"github.com/kothscore/helios/pkg/services/scoreboard"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Scoreboard scoreboard.Service
	Logger     zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	logger := config.Dependencies.Logger
	subHandler := handlers.NewHandler(config.Dependencies.Scoreboard)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(heliosmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	// Scored hosts post their reports to the root path.
	router.Post("/", subHandler.Submit)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/submissions", subHandler.Submit)
		r.Get("/teams/{team}/submissions", subHandler.ListTeamSubmissions)
		r.Get("/scoreboard", subHandler.Scoreboard)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	logger := config.Dependencies.Logger
	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           ConfigureRouter(config),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until ctx is cancelled, then drains outstanding requests
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	return nil
}
