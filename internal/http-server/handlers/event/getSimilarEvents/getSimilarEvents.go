package getSimilarEvents

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"devEvents/internal/lib/api/response"
	"devEvents/internal/lib/logger/sl"
	"devEvents/internal/models"
	"devEvents/internal/services"
	"devEvents/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type SimilarEventsResponse struct {
	response.Response
	Events []models.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SimilarEventsGetter
type SimilarEventsGetter interface {
	SimilarEvents(ctx context.Context, slug string) ([]models.Event, error)
}

func New(log *slog.Logger, getter SimilarEventsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getSimilarEvents.New"

		slug := chi.URLParam(r, "slug")

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("slug", slug),
		)

		events, err := getter.SimilarEvents(r.Context(), slug)
		if err != nil {
			var validationErr *services.ValidationError

			switch {
			case errors.As(err, &validationErr):
				log.Info("invalid slug", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid or missing slug parameter"))
			case errors.Is(err, storage.ErrNoConnectionURI):
				log.Error("database is not configured", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("database is not configured"))
			default:
				log.Error("failed to get similar events", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to get similar events"))
			}

			return
		}

		log.Debug("similar events retrieved", slog.Int("count", len(events)))

		responseOK(w, r, events)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, events []models.Event) {
	if events == nil {
		events = []models.Event{}
	}

	render.JSON(w, r, SimilarEventsResponse{
		Response: response.OK(),
		Events:   events,
	})
}
