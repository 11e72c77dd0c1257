/*
Package schedule manages clients, workers, schedules and the schedule-worker
relationships that feed the payroll engine.

PURPOSE:
  The payroll package is pure calculation; this package owns the records
  around it. A Schedule belongs to a Client, a Worker is attached to a
  Schedule through a ScheduleWorker carrying the financial terms, and each
  ScheduleWorker owns the WorkPeriod rows for its work days.

KEY RELATIONSHIPS:
  Client 1--* Schedule 1--* ScheduleWorker *--1 Worker
  ScheduleWorker 1--* Period

DERIVED DATA:
  Pay breakdowns are never stored. The service recomputes them from the
  current periods and terms on every request, so an edited day is always
  reflected immediately.

SEE ALSO:
  - service.go: Operations over these records
  - store.go: Persistence interface (memory, SQLite, Postgres)
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gonami-gennnmja/remit-planner-sub000/payroll"
)

// Client is a customer the schedules are worked for.
type Client struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Memo      string
	CreatedAt time.Time
}

// Worker is a person who can be attached to schedules.
type Worker struct {
	ID        string
	Name      string
	Phone     string
	Memo      string
	CreatedAt time.Time
}

// Schedule is an engagement for one client over a date range.
type Schedule struct {
	ID        string
	ClientID  string
	Title     string
	StartDate payroll.Date
	EndDate   payroll.Date
	Memo      string
	CreatedAt time.Time
}

// ScheduleWorker is the relationship between one worker and one schedule.
// It carries the financial terms for that engagement plus the settlement
// flag, which is set by the caller after payment and never computed.
type ScheduleWorker struct {
	ID         string
	ScheduleID string
	WorkerID   string
	Terms      payroll.PayTerms
	WagePaid   bool
	CreatedAt  time.Time
}

// Period is one stored work period belonging to a schedule-worker
// relationship.
type Period struct {
	ID               string
	ScheduleWorkerID string
	payroll.WorkPeriod
}

// Statement is the recomputed pay view for one schedule-worker: the hour
// breakdown next to the pay breakdown.
type Statement struct {
	ScheduleWorker ScheduleWorker
	Hours          payroll.HourBuckets
	Pay            payroll.PayrollResult
}

// ScheduleStatement is the per-worker breakdown for a whole schedule with
// totals across workers.
type ScheduleStatement struct {
	ScheduleID string
	Workers    []Statement
	TotalGross decimal.Decimal
	TotalNet   decimal.Decimal
}
