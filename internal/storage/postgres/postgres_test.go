package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"devEvents/internal/models"
	"devEvents/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticConn struct {
	db  *sql.DB
	err error
}

func (c staticConn) DB(_ context.Context) (*sql.DB, error) {
	return c.db, c.err
}

var eventRowColumns = []string{
	"id", "title", "slug", "description", "overview", "image", "venue", "location",
	"date", "time", "mode", "audience", "agenda", "organizer", "tags", "created_at", "updated_at",
}

var testTime = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func testEvent() models.Event {
	return models.Event{
		Title:       "React Conf 2026",
		Slug:        "react-conf-2026",
		Description: "All things React",
		Overview:    "Two days of talks",
		Image:       "https://cdn.example.com/DevEvents/react.jpg",
		Venue:       "Convention Center",
		Location:    "Las Vegas, Nevada",
		Date:        "2026-05-15",
		Time:        "09:00",
		Mode:        models.ModeHybrid,
		Audience:    "Frontend developers",
		Agenda:      []string{"Keynote", "Workshops"},
		Organizer:   "React Team",
		Tags:        []string{"react", "frontend"},
	}
}

func addEventRow(rows *sqlmock.Rows, id int64, title, slug string, tags string) *sqlmock.Rows {
	return rows.AddRow(
		id, title, slug, "desc", "overview", "https://cdn.example.com/x.jpg", "venue", "location",
		"2026-05-15", "09:00", "online", "devs", `{"Keynote","Q&A"}`, "org", tags, testTime, testTime,
	)
}

func newStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(staticConn{db: db}), mock
}

func TestStorage_SaveEvent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, slug, description`).
					WithArgs("React Conf 2026", "react-conf-2026", "All things React", "Two days of talks",
						"https://cdn.example.com/DevEvents/react.jpg", "Convention Center", "Las Vegas, Nevada",
						"2026-05-15", "09:00", "hybrid", "Frontend developers", sqlmock.AnyArg(), "React Team", sqlmock.AnyArg()).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, testTime, testTime))
			},
		},
		{
			name: "slug already exists",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "events_slug_key"})
			},
			wantErr: storage.ErrSlugExists,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStorage(t)
			tt.mock(mock)

			got, err := s.SaveEvent(ctx, testEvent())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(7), got.ID)
			assert.Equal(t, testTime, got.CreatedAt)
			assert.Equal(t, testTime, got.UpdatedAt)
			assert.Equal(t, "react-conf-2026", got.Slug)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStorage_EventBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		s, mock := newStorage(t)

		mock.ExpectQuery(`SELECT id, title, slug`).
			WithArgs("react-conf-2026").
			WillReturnRows(addEventRow(sqlmock.NewRows(eventRowColumns), 1, "React Conf 2026", "react-conf-2026", `{react,frontend}`))

		got, err := s.EventBySlug(ctx, "react-conf-2026")
		require.NoError(t, err)

		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "React Conf 2026", got.Title)
		assert.Equal(t, models.ModeOnline, got.Mode)
		assert.Equal(t, []string{"Keynote", "Q&A"}, got.Agenda)
		assert.Equal(t, []string{"react", "frontend"}, got.Tags)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newStorage(t)

		mock.ExpectQuery(`SELECT id, title, slug`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := s.EventBySlug(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrEventNotFound)
	})

	t.Run("connection error", func(t *testing.T) {
		s := New(staticConn{err: storage.ErrNoConnectionURI})

		_, err := s.EventBySlug(ctx, "react-conf-2026")
		assert.ErrorIs(t, err, storage.ErrNoConnectionURI)
	})
}

func TestStorage_EventByID(t *testing.T) {
	ctx := context.Background()
	s, mock := newStorage(t)

	mock.ExpectQuery(`SELECT id, title, slug`).
		WithArgs(int64(3)).
		WillReturnRows(addEventRow(sqlmock.NewRows(eventRowColumns), 3, "Node.js Interactive", "nodejs-interactive", `{node}`))

	got, err := s.EventByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "nodejs-interactive", got.Slug)

	mock.ExpectQuery(`SELECT id, title, slug`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err = s.EventByID(ctx, 404)
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_Events(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		s, mock := newStorage(t)

		rows := sqlmock.NewRows(eventRowColumns)
		addEventRow(rows, 1, "React Conf 2026", "react-conf-2026", `{react}`)
		addEventRow(rows, 2, "Web3 Developer Summit", "web3-developer-summit", `{web3}`)

		mock.ExpectQuery(`SELECT id, title, slug`).WillReturnRows(rows)

		got, err := s.Events(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "react-conf-2026", got[0].Slug)
		assert.Equal(t, "web3-developer-summit", got[1].Slug)
	})

	t.Run("empty", func(t *testing.T) {
		s, mock := newStorage(t)

		mock.ExpectQuery(`SELECT id, title, slug`).WillReturnRows(sqlmock.NewRows(eventRowColumns))

		got, err := s.Events(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		s, mock := newStorage(t)

		mock.ExpectQuery(`SELECT id, title, slug`).WillReturnError(errors.New("boom"))

		_, err := s.Events(ctx)
		require.Error(t, err)
	})
}

func TestStorage_SimilarEvents(t *testing.T) {
	ctx := context.Background()
	s, mock := newStorage(t)

	rows := sqlmock.NewRows(eventRowColumns)
	addEventRow(rows, 5, "JavaScript Global Conf", "javascript-global-conf", `{frontend,js}`)

	mock.ExpectQuery(`WHERE slug IS DISTINCT FROM \$1 AND tags && \$2::text\[\]`).
		WithArgs("react-conf-2026", sqlmock.AnyArg(), 3).
		WillReturnRows(rows)

	got, err := s.SimilarEvents(ctx, "react-conf-2026", []string{"react", "frontend"}, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "javascript-global-conf", got[0].Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_SaveBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		s, mock := newStorage(t)

		mock.ExpectQuery(`INSERT INTO bookings \(event_id, email\)`).
			WithArgs(int64(1), "jane@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, testTime, testTime))

		got, err := s.SaveBooking(ctx, 1, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, &models.Booking{
			ID:        11,
			EventID:   1,
			Email:     "jane@example.com",
			CreatedAt: testTime,
			UpdatedAt: testTime,
		}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		s, mock := newStorage(t)

		mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(sql.ErrConnDone)

		_, err := s.SaveBooking(ctx, 1, "jane@example.com")
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}
