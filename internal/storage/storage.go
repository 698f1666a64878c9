package storage

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrSlugExists      = errors.New("event with this slug already exists")
	ErrNoConnectionURI = errors.New("database connection uri is not configured")
)
