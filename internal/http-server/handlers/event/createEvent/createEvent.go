package createEvent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"devEvents/internal/lib/api/response"
	"devEvents/internal/lib/logger/sl"
	"devEvents/internal/models"
	"devEvents/internal/services"
	"devEvents/internal/storage"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const (
	defaultMaxUploadSize = 10 << 20
	// room for the text fields and multipart boundaries around the image
	formOverhead = 1 << 20
)

var errImageTooLarge = errors.New("image too large")

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, in services.EventInput) (*models.Event, error)
}

// New handles a multipart create request. agenda and tags are JSON arrays,
// image is the uploaded file. maxUploadSize limits the image itself; the
// whole body may exceed it by formOverhead.
func New(log *slog.Logger, creator EventCreator, maxUploadSize int64) http.HandlerFunc {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		maxBody := maxUploadSize + formOverhead

		if r.ContentLength > maxBody {
			log.Error("request body too large", slog.Int64("content_length", r.ContentLength))
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, response.Error("request body too large"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBody)

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			log.Error("failed to parse form", sl.Err(err))

			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				render.Status(r, http.StatusRequestEntityTooLarge)
				render.JSON(w, r, response.Error("request body too large"))
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to parse multipart form"))
			return
		}

		defer func() { _ = r.MultipartForm.RemoveAll() }()

		in := services.EventInput{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Overview:    r.FormValue("overview"),
			Venue:       r.FormValue("venue"),
			Location:    r.FormValue("location"),
			Date:        r.FormValue("date"),
			Time:        r.FormValue("time"),
			Mode:        r.FormValue("mode"),
			Audience:    r.FormValue("audience"),
			Organizer:   r.FormValue("organizer"),
			Agenda:      r.FormValue("agenda"),
			Tags:        r.FormValue("tags"),
		}

		image, err := readImage(r, maxUploadSize)
		if errors.Is(err, errImageTooLarge) {
			log.Error("image too large", sl.Err(err))
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, response.Error("image too large"))
			return
		}
		if err != nil {
			log.Error("failed to read image", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to read image"))
			return
		}
		in.Image = image

		log.Info("form decoded", slog.String("title", in.Title), slog.Bool("has_image", image != nil))

		event, err := creator.CreateEvent(r.Context(), in)
		if err != nil {
			var (
				validationErr *services.ValidationError
				upstreamErr   *services.UpstreamError
			)

			switch {
			case errors.As(err, &validationErr):
				log.Info("invalid event", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(validationErr.Error()))
			case errors.Is(err, storage.ErrSlugExists):
				log.Info("event already exists", sl.Err(err))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event with this title already exists"))
			case errors.Is(err, storage.ErrNoConnectionURI):
				log.Error("database is not configured", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("database is not configured"))
			case errors.As(err, &upstreamErr):
				log.Error("failed to upload image", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to upload image"))
			default:
				log.Error("failed to create event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to create event"))
			}

			return
		}

		log.Info("event created", slog.Int64("id", event.ID), slog.String("slug", event.Slug))

		responseCreated(w, r, event)
	}
}

// readImage returns nil when no file was sent.
func readImage(r *http.Request, maxSize int64) (*services.Image, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	if header.Size > maxSize {
		return nil, fmt.Errorf("%w: %d bytes", errImageTooLarge, header.Size)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &services.Image{Name: header.Filename, Data: data}, nil
}

func responseCreated(w http.ResponseWriter, r *http.Request, event *models.Event) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Event:    event,
	})
}
