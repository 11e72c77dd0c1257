/*
Package postgres provides a Postgres-backed implementation of schedule.Store.

PURPOSE:
  The shared/remote backend. Same records and semantics as store/sqlite,
  Postgres dialect, pgx connection pool. Database-level concurrency control
  replaces the in-process locking the other backends need.

ENCODING:
  Money columns are NUMERIC and scan straight into decimal.Decimal. Dates
  and clock times are the same "2006-01-02" / "HH:MM" text encodings the
  SQLite store uses, so a dump of one backend loads into the other.

SEE ALSO:
  - schedule/store.go: The interface implemented here
  - store/sqlite: Single-machine sibling
*/
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gonami-gennnmja/remit-planner-sub000/payroll"
	"github.com/gonami-gennnmja/remit-planner-sub000/schedule"
)

// Store implements schedule.Store using a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database at dsn, verifies the connection and migrates
// the schema.
func New(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dsn: %w", err)
	}
	cfg.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		memo TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		memo TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		title TEXT NOT NULL,
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		memo TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_schedules_client ON schedules(client_id);

	CREATE TABLE IF NOT EXISTS schedule_workers (
		id TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL,
		worker_id TEXT NOT NULL,
		hourly_wage NUMERIC NOT NULL,
		fuel_allowance NUMERIC NOT NULL,
		other_allowance NUMERIC NOT NULL,
		overtime_enabled BOOLEAN NOT NULL,
		night_shift_enabled BOOLEAN NOT NULL,
		tax_withheld BOOLEAN NOT NULL,
		wage_paid BOOLEAN NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_schedule_workers_schedule ON schedule_workers(schedule_id);

	CREATE TABLE IF NOT EXISTS work_periods (
		id TEXT PRIMARY KEY,
		schedule_worker_id TEXT NOT NULL,
		work_date TEXT NOT NULL,
		start_time TEXT NOT NULL DEFAULT '',
		end_time TEXT NOT NULL DEFAULT '',
		break_minutes INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_work_periods_worker ON work_periods(schedule_worker_id);
	`
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return schedule.ErrNotFound
	}
	return err
}

// =============================================================================
// CLIENTS
// =============================================================================

func (s *Store) SaveClient(ctx context.Context, c schedule.Client) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO clients (id, name, phone, address, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, phone = EXCLUDED.phone,
			address = EXCLUDED.address, memo = EXCLUDED.memo`,
		c.ID, c.Name, c.Phone, c.Address, c.Memo, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("save client: %w", err)
	}
	return nil
}

func (s *Store) Client(ctx context.Context, id string) (schedule.Client, error) {
	var c schedule.Client
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, phone, address, memo, created_at
		FROM clients WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Memo, &c.CreatedAt)
	if err != nil {
		return schedule.Client{}, notFound(err)
	}
	return c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]schedule.Client, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, phone, address, memo, created_at
		FROM clients ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []schedule.Client
	for rows.Next() {
		var c schedule.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Memo, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "clients", id)
}

// =============================================================================
// WORKERS
// =============================================================================

func (s *Store) SaveWorker(ctx context.Context, w schedule.Worker) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO workers (id, name, phone, memo, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, phone = EXCLUDED.phone, memo = EXCLUDED.memo`,
		w.ID, w.Name, w.Phone, w.Memo, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("save worker: %w", err)
	}
	return nil
}

func (s *Store) Worker(ctx context.Context, id string) (schedule.Worker, error) {
	var w schedule.Worker
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, phone, memo, created_at FROM workers WHERE id = $1`, id).
		Scan(&w.ID, &w.Name, &w.Phone, &w.Memo, &w.CreatedAt)
	if err != nil {
		return schedule.Worker{}, notFound(err)
	}
	return w, nil
}

func (s *Store) ListWorkers(ctx context.Context) ([]schedule.Worker, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, phone, memo, created_at FROM workers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	var out []schedule.Worker
	for rows.Next() {
		var w schedule.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Phone, &w.Memo, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) DeleteWorker(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "workers", id)
}

// =============================================================================
// SCHEDULES
// =============================================================================

func (s *Store) SaveSchedule(ctx context.Context, sch schedule.Schedule) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO schedules (id, client_id, title, start_date, end_date, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			client_id = EXCLUDED.client_id, title = EXCLUDED.title,
			start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date,
			memo = EXCLUDED.memo`,
		sch.ID, sch.ClientID, sch.Title,
		sch.StartDate.String(), sch.EndDate.String(), sch.Memo, sch.CreatedAt)
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

func (s *Store) Schedule(ctx context.Context, id string) (schedule.Schedule, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, client_id, title, start_date, end_date, memo, created_at
		FROM schedules WHERE id = $1`, id)
	sch, err := scanSchedule(row)
	if err != nil {
		return schedule.Schedule{}, notFound(err)
	}
	return sch, nil
}

func (s *Store) ListSchedules(ctx context.Context) ([]schedule.Schedule, error) {
	return s.querySchedules(ctx, `
		SELECT id, client_id, title, start_date, end_date, memo, created_at
		FROM schedules ORDER BY created_at, id`)
}

func (s *Store) ListSchedulesByClient(ctx context.Context, clientID string) ([]schedule.Schedule, error) {
	return s.querySchedules(ctx, `
		SELECT id, client_id, title, start_date, end_date, memo, created_at
		FROM schedules WHERE client_id = $1 ORDER BY created_at, id`, clientID)
}

func (s *Store) querySchedules(ctx context.Context, query string, args ...any) ([]schedule.Schedule, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var out []schedule.Schedule
	for rows.Next() {
		sch, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sch)
	}
	return out, rows.Err()
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "schedules", id)
}

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var sch schedule.Schedule
	var start, end string
	if err := row.Scan(&sch.ID, &sch.ClientID, &sch.Title, &start, &end, &sch.Memo, &sch.CreatedAt); err != nil {
		return schedule.Schedule{}, err
	}
	var err error
	if start != "" {
		if sch.StartDate, err = payroll.ParseDate(start); err != nil {
			return schedule.Schedule{}, fmt.Errorf("scan schedule: %w", err)
		}
	}
	if end != "" {
		if sch.EndDate, err = payroll.ParseDate(end); err != nil {
			return schedule.Schedule{}, fmt.Errorf("scan schedule: %w", err)
		}
	}
	return sch, nil
}

// =============================================================================
// SCHEDULE WORKERS
// =============================================================================

func (s *Store) SaveScheduleWorker(ctx context.Context, sw schedule.ScheduleWorker) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO schedule_workers (
			id, schedule_id, worker_id,
			hourly_wage, fuel_allowance, other_allowance,
			overtime_enabled, night_shift_enabled, tax_withheld,
			wage_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			schedule_id = EXCLUDED.schedule_id, worker_id = EXCLUDED.worker_id,
			hourly_wage = EXCLUDED.hourly_wage,
			fuel_allowance = EXCLUDED.fuel_allowance,
			other_allowance = EXCLUDED.other_allowance,
			overtime_enabled = EXCLUDED.overtime_enabled,
			night_shift_enabled = EXCLUDED.night_shift_enabled,
			tax_withheld = EXCLUDED.tax_withheld,
			wage_paid = EXCLUDED.wage_paid`,
		sw.ID, sw.ScheduleID, sw.WorkerID,
		sw.Terms.HourlyWage, sw.Terms.FuelAllowance, sw.Terms.OtherAllowance,
		sw.Terms.OvertimeEnabled, sw.Terms.NightShiftEnabled, sw.Terms.TaxWithheld,
		sw.WagePaid, sw.CreatedAt)
	if err != nil {
		return fmt.Errorf("save schedule worker: %w", err)
	}
	return nil
}

func (s *Store) ScheduleWorker(ctx context.Context, id string) (schedule.ScheduleWorker, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, schedule_id, worker_id,
			hourly_wage, fuel_allowance, other_allowance,
			overtime_enabled, night_shift_enabled, tax_withheld,
			wage_paid, created_at
		FROM schedule_workers WHERE id = $1`, id)
	sw, err := scanScheduleWorker(row)
	if err != nil {
		return schedule.ScheduleWorker{}, notFound(err)
	}
	return sw, nil
}

func (s *Store) ListScheduleWorkers(ctx context.Context, scheduleID string) ([]schedule.ScheduleWorker, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, schedule_id, worker_id,
			hourly_wage, fuel_allowance, other_allowance,
			overtime_enabled, night_shift_enabled, tax_withheld,
			wage_paid, created_at
		FROM schedule_workers WHERE schedule_id = $1 ORDER BY created_at, id`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("list schedule workers: %w", err)
	}
	defer rows.Close()

	var out []schedule.ScheduleWorker
	for rows.Next() {
		sw, err := scanScheduleWorker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sw)
	}
	return out, rows.Err()
}

func (s *Store) DeleteScheduleWorker(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "schedule_workers", id)
}

func scanScheduleWorker(row pgx.Row) (schedule.ScheduleWorker, error) {
	var sw schedule.ScheduleWorker
	var wage, fuel, other decimal.Decimal
	err := row.Scan(&sw.ID, &sw.ScheduleID, &sw.WorkerID,
		&wage, &fuel, &other,
		&sw.Terms.OvertimeEnabled, &sw.Terms.NightShiftEnabled, &sw.Terms.TaxWithheld,
		&sw.WagePaid, &sw.CreatedAt)
	if err != nil {
		return schedule.ScheduleWorker{}, err
	}
	sw.Terms.HourlyWage = wage
	sw.Terms.FuelAllowance = fuel
	sw.Terms.OtherAllowance = other
	return sw, nil
}

// =============================================================================
// WORK PERIODS
// =============================================================================

func (s *Store) SavePeriod(ctx context.Context, p schedule.Period) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO work_periods (id, schedule_worker_id, work_date, start_time, end_time, break_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			schedule_worker_id = EXCLUDED.schedule_worker_id,
			work_date = EXCLUDED.work_date,
			start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time,
			break_minutes = EXCLUDED.break_minutes`,
		p.ID, p.ScheduleWorkerID, p.Date.String(),
		p.Start.String(), p.End.String(), p.BreakMinutes)
	if err != nil {
		return fmt.Errorf("save period: %w", err)
	}
	return nil
}

func (s *Store) Period(ctx context.Context, id string) (schedule.Period, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, schedule_worker_id, work_date, start_time, end_time, break_minutes
		FROM work_periods WHERE id = $1`, id)
	p, err := scanPeriod(row)
	if err != nil {
		return schedule.Period{}, notFound(err)
	}
	return p, nil
}

func (s *Store) ListPeriods(ctx context.Context, scheduleWorkerID string) ([]schedule.Period, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, schedule_worker_id, work_date, start_time, end_time, break_minutes
		FROM work_periods WHERE schedule_worker_id = $1 ORDER BY work_date, id`, scheduleWorkerID)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()

	var out []schedule.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) DeletePeriod(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "work_periods", id)
}

func (s *Store) DeletePeriods(ctx context.Context, scheduleWorkerID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM work_periods WHERE schedule_worker_id = $1`, scheduleWorkerID)
	if err != nil {
		return fmt.Errorf("delete periods: %w", err)
	}
	return nil
}

func scanPeriod(row pgx.Row) (schedule.Period, error) {
	var p schedule.Period
	var date, start, end string
	if err := row.Scan(&p.ID, &p.ScheduleWorkerID, &date, &start, &end, &p.BreakMinutes); err != nil {
		return schedule.Period{}, err
	}
	var err error
	if p.Date, err = payroll.ParseDate(date); err != nil {
		return schedule.Period{}, fmt.Errorf("scan period: %w", err)
	}
	if start != "" {
		if p.Start, err = payroll.ParseClock(start); err != nil {
			return schedule.Period{}, fmt.Errorf("scan period: %w", err)
		}
	}
	if end != "" {
		if p.End, err = payroll.ParseClock(end); err != nil {
			return schedule.Period{}, fmt.Errorf("scan period: %w", err)
		}
	}
	return p, nil
}

// =============================================================================
// SHARED
// =============================================================================

// deleteByID deletes one row and maps zero rows affected to ErrNotFound.
// The table name is always a compile-time constant here.
func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrNotFound
	}
	return nil
}
