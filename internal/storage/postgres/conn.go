package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"devEvents/internal/config"
	"devEvents/internal/storage"

	_ "github.com/lib/pq"
	"golang.org/x/sync/singleflight"
)

const defaultConnectTimeout = 10 * time.Second

// ErrClosedDuringConnect is returned to callers whose connection attempt
// finished after Close. The pool it produced is closed, not cached.
var ErrClosedDuringConnect = errors.New("connection manager closed while connecting")

// OpenFunc opens and verifies a connection pool for uri.
type OpenFunc func(ctx context.Context, uri string) (*sql.DB, error)

// Manager lazily opens one connection pool per process and hands the same
// pool to every caller. Concurrent first callers share a single attempt; a
// failed attempt is not cached so the next call retries.
//
// Construct it once at startup and pass it to everything that needs the
// database. Close it on shutdown.
type Manager struct {
	cfg  config.Database
	open OpenFunc

	mu sync.RWMutex
	db *sql.DB
	// gen changes on every Close so an attempt started before it can tell
	gen uint64

	group singleflight.Group
}

func NewManager(cfg config.Database) *Manager {
	return NewManagerWithOpener(cfg, openPostgres(cfg))
}

func NewManagerWithOpener(cfg config.Database, open OpenFunc) *Manager {
	return &Manager{
		cfg:  cfg,
		open: open,
	}
}

// DB returns the cached pool, joins an in-flight connection attempt or
// starts a new one. An empty URI fails with storage.ErrNoConnectionURI.
func (m *Manager) DB(ctx context.Context) (*sql.DB, error) {
	const op = "storage.postgres.Manager.DB"

	if db := m.cached(); db != nil {
		return db, nil
	}

	if m.cfg.URI == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNoConnectionURI)
	}

	ch := m.group.DoChan("connect", func() (interface{}, error) {
		m.mu.RLock()
		db, gen := m.db, m.gen
		m.mu.RUnlock()

		if db != nil {
			return db, nil
		}

		timeout := m.cfg.ConnectTimeout
		if timeout <= 0 {
			timeout = defaultConnectTimeout
		}

		// the attempt is shared, so it must not die with the first caller
		connectCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		db, err := m.open(connectCtx, m.cfg.URI)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		if m.gen != gen {
			m.mu.Unlock()
			_ = db.Close()

			return nil, ErrClosedDuringConnect
		}
		m.db = db
		m.mu.Unlock()

		return db, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, res.Err)
		}

		return res.Val.(*sql.DB), nil
	}
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++

	if m.db == nil {
		return nil
	}

	err := m.db.Close()
	m.db = nil

	return err
}

func (m *Manager) cached() *sql.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.db
}

func openPostgres(cfg config.Database) OpenFunc {
	return func(ctx context.Context, uri string) (*sql.DB, error) {
		db, err := sql.Open("postgres", uri)
		if err != nil {
			return nil, err
		}

		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}

		if err = db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}

		return db, nil
	}
}
