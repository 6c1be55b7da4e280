package database

import (
	"context"
	"database/sql"

	"cardzen/internal/worker"
)

// Querier is the subset of *sql.DB used by the store functions.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB is the database handle injected into handlers. Write runs fn on the
// single writer; every mutating sequence must go through it.
type DB interface {
	Querier
	PingContext(ctx context.Context) error
	Write(ctx context.Context, fn func(ctx context.Context) error) error
	Close() error
}

// Handle pairs a *sql.DB with a one-worker queue that serializes writes.
type Handle struct {
	*sql.DB
	queue worker.Pool
}

// NewHandle wraps db. The queue must have exactly one worker.
func NewHandle(db *sql.DB, queue worker.Pool) *Handle {
	return &Handle{DB: db, queue: queue}
}

func (h *Handle) Write(ctx context.Context, fn func(ctx context.Context) error) error {
	return h.queue.Do(ctx, func() error { return fn(ctx) })
}

// Close drains the writer queue before closing the connection pool.
func (h *Handle) Close() error {
	h.queue.Stop()
	if h.DB == nil {
		return nil
	}
	return h.DB.Close()
}

type FakeDB struct {
	ExecFn     func(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryFn    func(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowFn func(ctx context.Context, query string, args ...any) *sql.Row
	PingFn     func(ctx context.Context) error
	WriteFn    func(ctx context.Context, fn func(ctx context.Context) error) error
	CloseFn    func() error
}

func (f *FakeDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.ExecFn != nil {
		return f.ExecFn(ctx, query, args...)
	}
	panic("unexpected ExecContext")
}

func (f *FakeDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if f.QueryFn != nil {
		return f.QueryFn(ctx, query, args...)
	}
	panic("unexpected QueryContext")
}

func (f *FakeDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if f.QueryRowFn != nil {
		return f.QueryRowFn(ctx, query, args...)
	}
	panic("unexpected QueryRowContext")
}

func (f *FakeDB) PingContext(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected PingContext")
}

// Write runs fn inline unless WriteFn is set.
func (f *FakeDB) Write(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.WriteFn != nil {
		return f.WriteFn(ctx, fn)
	}
	return fn(ctx)
}

func (f *FakeDB) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
