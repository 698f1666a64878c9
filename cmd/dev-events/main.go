package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"devEvents/internal/config"
	"devEvents/internal/http-server/handlers/event/createBooking"
	"devEvents/internal/http-server/handlers/event/createEvent"
	"devEvents/internal/http-server/handlers/event/getAllEvents"
	"devEvents/internal/http-server/handlers/event/getEventInfo"
	"devEvents/internal/http-server/handlers/event/getSimilarEvents"
	"devEvents/internal/http-server/middleware/mwlogger"
	"devEvents/internal/lib/logger/handlers/slogpretty"
	"devEvents/internal/lib/logger/sl"
	"devEvents/internal/mailer"
	"devEvents/internal/services"
	"devEvents/internal/storage/postgres"
	"devEvents/internal/uploader"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting dev events", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	// connects on first use, a missing DATABASE_URI surfaces per request
	conn := postgres.NewManager(cfg.Database)
	storage := postgres.New(conn)

	imageUploader, err := uploader.New(cfg.Uploader)
	if err != nil {
		log.Error("failed to init uploader", sl.Err(err))
		os.Exit(1)
	}

	sender, err := mailer.New(log, cfg.Mailer)
	if err != nil {
		log.Error("failed to init mailer", sl.Err(err))
		os.Exit(1)
	}

	events := services.NewEvents(log, storage, imageUploader, cfg.Events.SimilarLimit)
	bookings := services.NewBookings(log, storage, mailer.NewNotifier(log, sender))

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(middleware.Timeout(cfg.HTTPServer.RequestTimeout))

	fs := http.FileServer(http.Dir("./static/"))
	router.Handle("/static/*", http.StripPrefix("/static/", fs))

	router.Route("/events", func(r chi.Router) {
		r.Get("/", getAllEvents.New(log, events))
		r.Post("/", createEvent.New(log, events, cfg.HTTPServer.MaxUploadSize))
		r.Get("/{slug}", getEventInfo.New(log, events))
		r.Get("/{slug}/similar", getSimilarEvents.New(log, events))
		r.Post("/{id}/book", createBooking.New(log, bookings))
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.RequestTimeout + cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.Timeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = conn.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
