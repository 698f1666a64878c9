package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"devEvents/internal/lib/logger/sl"
	"devEvents/internal/lib/normalize"
	"devEvents/internal/models"
	"devEvents/internal/storage"
	"devEvents/internal/uploader"
)

const defaultSimilarLimit = 3

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventStorage
type EventStorage interface {
	SaveEvent(ctx context.Context, event models.Event) (*models.Event, error)
	EventBySlug(ctx context.Context, slug string) (*models.Event, error)
	EventByID(ctx context.Context, id int64) (*models.Event, error)
	Events(ctx context.Context) ([]models.Event, error)
	SimilarEvents(ctx context.Context, slug string, tags []string, limit int) ([]models.Event, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ImageUploader
type ImageUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type Image struct {
	Name string
	Data []byte
}

// EventInput is a create request as received from the transport. Agenda and
// Tags hold JSON encoded string arrays.
type EventInput struct {
	Title       string
	Description string
	Overview    string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Organizer   string
	Agenda      string
	Tags        string
	Image       *Image
}

type eventFields struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Overview    string   `json:"overview" validate:"required"`
	Venue       string   `json:"venue" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	Mode        string   `json:"mode" validate:"required,oneof=online offline hybrid"`
	Audience    string   `json:"audience" validate:"required"`
	Organizer   string   `json:"organizer" validate:"required"`
	Agenda      []string `json:"agenda" validate:"required,min=1,dive,required"`
	Tags        []string `json:"tags" validate:"required,min=1,dive,required"`
}

type Events struct {
	log          *slog.Logger
	storage      EventStorage
	uploader     ImageUploader
	similarLimit int
}

func NewEvents(log *slog.Logger, storage EventStorage, uploader ImageUploader, similarLimit int) *Events {
	if similarLimit <= 0 {
		similarLimit = defaultSimilarLimit
	}

	return &Events{
		log:          log,
		storage:      storage,
		uploader:     uploader,
		similarLimit: similarLimit,
	}
}

// CreateEvent validates and normalizes in, uploads the image and stores the
// event. The upload happens only after every field check has passed and the
// write only after the upload succeeded.
func (s *Events) CreateEvent(ctx context.Context, in EventInput) (*models.Event, error) {
	const op = "services.Events.CreateEvent"

	log := s.log.With(slog.String("op", op))

	agenda, err := decodeStringList("agenda", in.Agenda)
	if err != nil {
		return nil, err
	}

	tags, err := decodeStringList("tags", in.Tags)
	if err != nil {
		return nil, err
	}

	if in.Image == nil || len(in.Image.Data) == 0 {
		return nil, ErrMissingImage
	}

	fields := eventFields{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Overview:    strings.TrimSpace(in.Overview),
		Venue:       strings.TrimSpace(in.Venue),
		Location:    strings.TrimSpace(in.Location),
		Date:        strings.TrimSpace(in.Date),
		Time:        strings.TrimSpace(in.Time),
		Mode:        strings.ToLower(strings.TrimSpace(in.Mode)),
		Audience:    strings.TrimSpace(in.Audience),
		Organizer:   strings.TrimSpace(in.Organizer),
		Agenda:      agenda,
		Tags:        tags,
	}

	if err = validateStruct(fields); err != nil {
		return nil, err
	}

	event, err := PrepareEvent(models.Event{
		Title:       fields.Title,
		Description: fields.Description,
		Overview:    fields.Overview,
		Venue:       fields.Venue,
		Location:    fields.Location,
		Date:        fields.Date,
		Time:        fields.Time,
		Mode:        models.Mode(fields.Mode),
		Audience:    fields.Audience,
		Organizer:   fields.Organizer,
		Agenda:      fields.Agenda,
		Tags:        fields.Tags,
	})
	if err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, in.Image.Name, in.Image.Data)
	if err != nil {
		if errors.Is(err, uploader.ErrInvalidImage) {
			return nil, &ValidationError{Field: "image", Reason: "must be a valid image"}
		}

		log.Error("failed to upload image", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, &UpstreamError{Err: err})
	}

	event.Image = url

	saved, err := s.storage.SaveEvent(ctx, event)
	if err != nil {
		// the uploaded object is left behind; no cleanup API exists for it
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event created", slog.Int64("id", saved.ID), slog.String("slug", saved.Slug))

	return saved, nil
}

// PrepareEvent derives the slug from the title and normalizes date and time.
// It is applied to every event before it is written.
func PrepareEvent(event models.Event) (models.Event, error) {
	slug := normalize.Slug(event.Title)
	if slug == "" {
		return models.Event{}, &ValidationError{Field: "title", Reason: "must contain letters or digits"}
	}

	date, err := normalize.Date(event.Date)
	if err != nil {
		return models.Event{}, &ValidationError{Field: "date", Reason: "must be a valid date"}
	}

	clock, err := normalize.Time(event.Time)
	if err != nil {
		return models.Event{}, &ValidationError{Field: "time", Reason: "must be in HH:MM format"}
	}

	event.Slug = slug
	event.Date = date
	event.Time = clock

	return event, nil
}

func decodeStringList(field, raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &ValidationError{Field: field, Reason: "is a required field"}
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, &ValidationError{Field: field, Reason: "must be a JSON array of strings"}
	}

	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}

	return items, nil
}

func (s *Events) EventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	const op = "services.Events.EventBySlug"

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	event, err := s.storage.EventBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (s *Events) Events(ctx context.Context) ([]models.Event, error) {
	const op = "services.Events.Events"

	events, err := s.storage.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// SimilarEvents returns events sharing tags with the event at slug. An
// unknown slug yields an empty list.
func (s *Events) SimilarEvents(ctx context.Context, slug string) ([]models.Event, error) {
	const op = "services.Events.SimilarEvents"

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	origin, err := s.storage.EventBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return []models.Event{}, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events, err := s.storage.SimilarEvents(ctx, origin.Slug, origin.Tags, s.similarLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}
