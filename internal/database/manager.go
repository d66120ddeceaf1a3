package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrScopeClosed is returned when acquiring from a scope that was already closed.
var ErrScopeClosed = errors.New("scope closed")

// Manager hands out one pinned connection per logical request.
type Manager struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

// NewManager creates a connection manager over an open database.
func NewManager(d *Database) (*Manager, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return &Manager{db: d.DB, sqlDB: sqlDB}, nil
}

// Handle is a live connection to the catalog. Every query issued through DB()
// runs on the same pinned connection until Release is called.
type Handle struct {
	db   *gorm.DB
	conn *sql.Conn
	once sync.Once
	err  error
}

// Acquire pins a connection from the pool. The caller must Release it.
func (m *Manager) Acquire(ctx context.Context) (*Handle, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := m.sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire connection: %w", ErrStorageUnavailable, err)
	}

	session := m.db.Session(&gorm.Session{NewDB: true, Context: ctx})
	session.Statement.ConnPool = conn

	return &Handle{db: session, conn: conn}, nil
}

// WithHandle runs fn with a freshly acquired handle and releases it on every exit path.
func (m *Manager) WithHandle(ctx context.Context, fn func(h *Handle) error) (err error) {
	h, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := h.Release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()
	return fn(h)
}

// DB returns the gorm session bound to this handle's connection.
func (h *Handle) DB() *gorm.DB {
	return h.db
}

// Release returns the connection to the pool. Calling it more than once is a no-op.
func (h *Handle) Release() error {
	h.once.Do(func() {
		if err := h.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			h.err = fmt.Errorf("%w: release connection: %w", ErrStorageUnavailable, err)
		}
	})
	return h.err
}

// Scope is one logical request. Acquire returns the same handle on every call
// until Close releases it.
type Scope struct {
	ID string

	manager *Manager
	mu      sync.Mutex
	handle  *Handle
	closed  bool
}

// NewScope starts a request scope. No connection is opened until Acquire.
func (m *Manager) NewScope() *Scope {
	return &Scope{ID: uuid.NewString(), manager: m}
}

// Acquire returns the scope's handle, opening it on first use.
func (s *Scope) Acquire(ctx context.Context) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("%w: scope %s: %w", ErrStorageUnavailable, s.ID, ErrScopeClosed)
	}
	if s.handle != nil {
		return s.handle, nil
	}

	h, err := s.manager.Acquire(ctx)
	if err != nil {
		log.Printf("Scope %s: %v", s.ID, err)
		return nil, err
	}
	s.handle = h
	return h, nil
}

// Acquired reports whether the scope currently holds a handle.
func (s *Scope) Acquired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// Close releases the handle if one was acquired. Further Acquire calls fail.
func (s *Scope) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.handle == nil {
		return nil
	}
	err := s.handle.Release()
	s.handle = nil
	if err != nil {
		log.Printf("Scope %s: %v", s.ID, err)
	}
	return err
}
