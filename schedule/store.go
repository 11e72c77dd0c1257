/*
store.go - Persistence interface for schedule records

PURPOSE:
  One interface between the domain service and storage. The backends are
  interchangeable black boxes: a map-backed store for tests and dev, a
  SQLite file for single-machine use, Postgres for a shared backend.

CONTRACT:
  - Save* is an upsert keyed by ID. The caller assigns IDs.
  - Lookups return ErrNotFound for missing IDs, wrapped with the record
    kind by the implementations.
  - Delete* of a missing ID returns ErrNotFound; cascade deletes of
    dependent rows are the service's job, not the store's.
  - List results are ordered by creation time where the backend can, but
    callers must not depend on order.

IMPLEMENTATIONS:
  - schedule/store (memory): map-based, for tests and development
  - store/sqlite: mattn/go-sqlite3, WAL mode, ":memory:" supported
  - store/postgres: pgx connection pool, same schema in Postgres dialect
*/
package schedule

import (
	"context"
	"errors"
)

// ErrNotFound is returned by stores for lookups and deletes of missing IDs.
var ErrNotFound = errors.New("not found")

// Store persists the schedule records. All implementations must be safe for
// concurrent use.
type Store interface {
	SaveClient(ctx context.Context, c Client) error
	Client(ctx context.Context, id string) (Client, error)
	ListClients(ctx context.Context) ([]Client, error)
	DeleteClient(ctx context.Context, id string) error

	SaveWorker(ctx context.Context, w Worker) error
	Worker(ctx context.Context, id string) (Worker, error)
	ListWorkers(ctx context.Context) ([]Worker, error)
	DeleteWorker(ctx context.Context, id string) error

	SaveSchedule(ctx context.Context, s Schedule) error
	Schedule(ctx context.Context, id string) (Schedule, error)
	ListSchedules(ctx context.Context) ([]Schedule, error)
	ListSchedulesByClient(ctx context.Context, clientID string) ([]Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error

	SaveScheduleWorker(ctx context.Context, sw ScheduleWorker) error
	ScheduleWorker(ctx context.Context, id string) (ScheduleWorker, error)
	ListScheduleWorkers(ctx context.Context, scheduleID string) ([]ScheduleWorker, error)
	DeleteScheduleWorker(ctx context.Context, id string) error

	SavePeriod(ctx context.Context, p Period) error
	Period(ctx context.Context, id string) (Period, error)
	ListPeriods(ctx context.Context, scheduleWorkerID string) ([]Period, error)
	DeletePeriod(ctx context.Context, id string) error
	DeletePeriods(ctx context.Context, scheduleWorkerID string) error
}
