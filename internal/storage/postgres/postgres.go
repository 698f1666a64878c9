package postgres

import (
	"context"
	"database/sql"
	"devEvents/internal/models"
	"devEvents/internal/storage"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Connector interface {
	DB(ctx context.Context) (*sql.DB, error)
}

type Storage struct {
	conn Connector
}

func New(conn Connector) *Storage {
	return &Storage{conn: conn}
}

const eventColumns = `id, title, slug, description, overview, image, venue, location,
		date, time, mode, audience, agenda, organizer, tags, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		event models.Event
		slug  sql.NullString
	)

	err := row.Scan(
		&event.ID,
		&event.Title,
		&slug,
		&event.Description,
		&event.Overview,
		&event.Image,
		&event.Venue,
		&event.Location,
		&event.Date,
		&event.Time,
		&event.Mode,
		&event.Audience,
		pq.Array(&event.Agenda),
		&event.Organizer,
		pq.Array(&event.Tags),
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return models.Event{}, err
	}

	event.Slug = slug.String

	return event, nil
}

func (s *Storage) SaveEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	const op = "storage.postgres.SaveEvent"

	db, err := s.conn.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO events (title, slug, description, overview, image, venue, location,
			date, time, mode, audience, agenda, organizer, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`

	err = db.QueryRowContext(ctx, query,
		event.Title,
		event.Slug,
		event.Description,
		event.Overview,
		event.Image,
		event.Venue,
		event.Location,
		event.Date,
		event.Time,
		event.Mode,
		event.Audience,
		pq.Array(event.Agenda),
		event.Organizer,
		pq.Array(event.Tags),
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}

		return nil, fmt.Errorf("%s: failed to create event: %w", op, err)
	}

	return &event, nil
}

func (s *Storage) EventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	const op = "storage.postgres.EventBySlug"

	db, err := s.conn.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE slug = $1`

	event, err := scanEvent(db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get event: %w", op, err)
	}

	return &event, nil
}

func (s *Storage) EventByID(ctx context.Context, id int64) (*models.Event, error) {
	const op = "storage.postgres.EventByID"

	db, err := s.conn.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1`

	event, err := scanEvent(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get event: %w", op, err)
	}

	return &event, nil
}

func (s *Storage) Events(ctx context.Context) ([]models.Event, error) {
	const op = "storage.postgres.Events"

	db, err := s.conn.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + eventColumns + `
		FROM events
		ORDER BY id ASC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get events: %w", op, err)
	}
	defer rows.Close()

	return collectEvents(op, rows)
}

// SimilarEvents returns up to limit events other than slug that share at
// least one tag, most shared tags first, newest first on ties.
func (s *Storage) SimilarEvents(ctx context.Context, slug string, tags []string, limit int) ([]models.Event, error) {
	const op = "storage.postgres.SimilarEvents"

	db, err := s.conn.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE slug IS DISTINCT FROM $1 AND tags && $2::text[]
		ORDER BY cardinality(ARRAY(
				SELECT unnest(tags) INTERSECT SELECT unnest($2::text[])
			)) DESC,
			created_at DESC,
			id DESC
		LIMIT $3`

	rows, err := db.QueryContext(ctx, query, slug, pq.Array(tags), limit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get similar events: %w", op, err)
	}
	defer rows.Close()

	return collectEvents(op, rows)
}

func collectEvents(op string, rows *sql.Rows) ([]models.Event, error) {
	events := make([]models.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan event: %w", op, err)
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating events: %w", op, err)
	}

	return events, nil
}

// SaveBooking does not check the event: callers resolve it first. There is
// no foreign key, so an event removed between that check and this insert
// would leave an orphan booking. Events are never deleted today.
func (s *Storage) SaveBooking(ctx context.Context, eventID int64, email string) (*models.Booking, error) {
	const op = "storage.postgres.SaveBooking"

	db, err := s.conn.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO bookings (event_id, email)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	booking := models.Booking{
		EventID: eventID,
		Email:   email,
	}

	err = db.QueryRowContext(ctx, query, eventID, email).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create booking: %w", op, err)
	}

	return &booking, nil
}
