package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"devEvents/internal/lib/logger/sl"
	"devEvents/internal/lib/normalize"
	"devEvents/internal/mailer"
	"devEvents/internal/models"
	"devEvents/internal/storage"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingStorage
type BookingStorage interface {
	EventByID(ctx context.Context, id int64) (*models.Event, error)
	SaveBooking(ctx context.Context, eventID int64, email string) (*models.Booking, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingNotifier
type BookingNotifier interface {
	BookingConfirmed(ctx context.Context, data mailer.BookingData) error
}

type Bookings struct {
	log      *slog.Logger
	storage  BookingStorage
	notifier BookingNotifier
}

func NewBookings(log *slog.Logger, storage BookingStorage, notifier BookingNotifier) *Bookings {
	return &Bookings{
		log:      log,
		storage:  storage,
		notifier: notifier,
	}
}

// CreateBooking checks the email, then that the event exists, then stores the
// booking. The existence check and the insert are not atomic; see
// postgres.Storage.SaveBooking.
func (s *Bookings) CreateBooking(ctx context.Context, eventID int64, email string) (*models.Booking, error) {
	const op = "services.Bookings.CreateBooking"

	log := s.log.With(slog.String("op", op), slog.Int64("event_id", eventID))

	email, err := normalize.Email(email)
	if err != nil {
		return nil, &ValidationError{Field: "email", Reason: "is not a valid email"}
	}

	if eventID <= 0 {
		return nil, &ValidationError{Field: "event_id", Reason: "must be a positive integer"}
	}

	event, err := s.storage.EventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return nil, &ReferentialError{EventID: eventID}
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booking, err := s.storage.SaveBooking(ctx, eventID, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("booking created", slog.Int64("id", booking.ID))

	err = s.notifier.BookingConfirmed(ctx, mailer.BookingData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventSlug:  event.Slug,
		Date:       event.Date,
		Time:       event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
	})
	if err != nil {
		log.Warn("booking confirmation not sent", sl.Err(err))
	}

	return booking, nil
}
