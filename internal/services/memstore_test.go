package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"devEvents/internal/models"
	"devEvents/internal/storage"
)

// memStore is an EventStorage and BookingStorage that keeps everything in
// memory and enforces slug uniqueness like the events table does.
type memStore struct {
	mu       sync.Mutex
	events   []models.Event
	bookings []models.Booking
	calls    int
}

func (m *memStore) SaveEvent(_ context.Context, event models.Event) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	for _, e := range m.events {
		if e.Slug == event.Slug {
			return nil, fmt.Errorf("memStore.SaveEvent: %w", storage.ErrSlugExists)
		}
	}

	event.ID = int64(len(m.events) + 1)
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	m.events = append(m.events, event)

	return &event, nil
}

func (m *memStore) EventBySlug(_ context.Context, slug string) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	for _, e := range m.events {
		if e.Slug == slug {
			e := e
			return &e, nil
		}
	}

	return nil, fmt.Errorf("memStore.EventBySlug: %w", storage.ErrEventNotFound)
}

func (m *memStore) EventByID(_ context.Context, id int64) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	for _, e := range m.events {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}

	return nil, fmt.Errorf("memStore.EventByID: %w", storage.ErrEventNotFound)
}

func (m *memStore) Events(_ context.Context) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	return append([]models.Event{}, m.events...), nil
}

func (m *memStore) SimilarEvents(_ context.Context, slug string, tags []string, limit int) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	res := make([]models.Event, 0)
	for _, e := range m.events {
		if e.Slug == slug || len(res) == limit {
			continue
		}
		for _, t := range e.Tags {
			if contains(tags, t) {
				res = append(res, e)
				break
			}
		}
	}

	return res, nil
}

func (m *memStore) SaveBooking(_ context.Context, eventID int64, email string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	b := models.Booking{ID: int64(len(m.bookings) + 1), EventID: eventID, Email: email}
	m.bookings = append(m.bookings, b)

	return &b, nil
}

func (m *memStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
