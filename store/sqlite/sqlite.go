/*
Package sqlite provides a SQLite-backed implementation of schedule.Store.

PURPOSE:
  Single-machine persistence for the scheduling records. The same schema in
  Postgres dialect lives in store/postgres for a shared remote backend.

KEY TABLES:
  clients           Customer records
  workers           Worker records
  schedules         Engagements per client
  schedule_workers  Worker-on-schedule terms (wage, allowances, flags)
  work_periods      One row per contiguous work block

ENCODING:
  Dates are "2006-01-02" strings, clock times "HH:MM" strings (empty means
  unset), money columns TEXT holding decimal strings. Nothing derived is
  stored: pay breakdowns are recomputed from these rows on every request.

WAL MODE:
  SQLite is opened with WAL so readers don't block each other. Use
  ":memory:" for tests.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool with versioned migrations.

SEE ALSO:
  - schedule/store.go: The interface implemented here
  - store/postgres: Postgres dialect of the same schema
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/gonami-gennnmja/remit-planner-sub000/payroll"
	"github.com/gonami-gennnmja/remit-planner-sub000/schedule"
)

// Store implements schedule.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		address TEXT,
		memo TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		memo TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		title TEXT NOT NULL,
		start_date TEXT,
		end_date TEXT,
		memo TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_schedules_client ON schedules(client_id);

	CREATE TABLE IF NOT EXISTS schedule_workers (
		id TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL,
		worker_id TEXT NOT NULL,
		hourly_wage TEXT NOT NULL,
		fuel_allowance TEXT NOT NULL,
		other_allowance TEXT NOT NULL,
		overtime_enabled INTEGER NOT NULL,
		night_shift_enabled INTEGER NOT NULL,
		tax_withheld INTEGER NOT NULL,
		wage_paid INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_schedule_workers_schedule ON schedule_workers(schedule_id);

	CREATE TABLE IF NOT EXISTS work_periods (
		id TEXT PRIMARY KEY,
		schedule_worker_id TEXT NOT NULL,
		work_date TEXT NOT NULL,
		start_time TEXT,
		end_time TEXT,
		break_minutes INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_work_periods_worker ON work_periods(schedule_worker_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ENCODING HELPERS
// =============================================================================

func encodeDate(d payroll.Date) string {
	return d.String()
}

func decodeDate(s string) (payroll.Date, error) {
	if s == "" {
		return payroll.Date{}, nil
	}
	return payroll.ParseDate(s)
}

func encodeClock(c payroll.ClockTime) string {
	return c.String()
}

func decodeClock(s string) (payroll.ClockTime, error) {
	if s == "" {
		return payroll.ClockTime{}, nil
	}
	return payroll.ParseClock(s)
}

func decodeAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// =============================================================================
// CLIENTS
// =============================================================================

func (s *Store) SaveClient(ctx context.Context, c schedule.Client) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, phone, address, memo, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, phone = excluded.phone,
			address = excluded.address, memo = excluded.memo`,
		c.ID, c.Name, c.Phone, c.Address, c.Memo, encodeTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("save client: %w", err)
	}
	return nil
}

func (s *Store) Client(ctx context.Context, id string) (schedule.Client, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone, address, memo, created_at
		FROM clients WHERE id = ?`, id)
	return scanClient(row)
}

func (s *Store) ListClients(ctx context.Context) ([]schedule.Client, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, address, memo, created_at
		FROM clients ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []schedule.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "clients", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (schedule.Client, error) {
	var c schedule.Client
	var createdAt string
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Memo, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.Client{}, schedule.ErrNotFound
	}
	if err != nil {
		return schedule.Client{}, fmt.Errorf("scan client: %w", err)
	}
	if c.CreatedAt, err = decodeTime(createdAt); err != nil {
		return schedule.Client{}, fmt.Errorf("scan client: %w", err)
	}
	return c, nil
}

// =============================================================================
// WORKERS
// =============================================================================

func (s *Store) SaveWorker(ctx context.Context, w schedule.Worker) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workers (id, name, phone, memo, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, phone = excluded.phone, memo = excluded.memo`,
		w.ID, w.Name, w.Phone, w.Memo, encodeTime(w.CreatedAt))
	if err != nil {
		return fmt.Errorf("save worker: %w", err)
	}
	return nil
}

func (s *Store) Worker(ctx context.Context, id string) (schedule.Worker, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone, memo, created_at FROM workers WHERE id = ?`, id)
	return scanWorker(row)
}

func (s *Store) ListWorkers(ctx context.Context) ([]schedule.Worker, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, memo, created_at FROM workers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	var out []schedule.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) DeleteWorker(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "workers", id)
}

func scanWorker(row scanner) (schedule.Worker, error) {
	var w schedule.Worker
	var createdAt string
	err := row.Scan(&w.ID, &w.Name, &w.Phone, &w.Memo, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.Worker{}, schedule.ErrNotFound
	}
	if err != nil {
		return schedule.Worker{}, fmt.Errorf("scan worker: %w", err)
	}
	if w.CreatedAt, err = decodeTime(createdAt); err != nil {
		return schedule.Worker{}, fmt.Errorf("scan worker: %w", err)
	}
	return w, nil
}

// =============================================================================
// SCHEDULES
// =============================================================================

func (s *Store) SaveSchedule(ctx context.Context, sch schedule.Schedule) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedules (id, client_id, title, start_date, end_date, memo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_id = excluded.client_id, title = excluded.title,
			start_date = excluded.start_date, end_date = excluded.end_date,
			memo = excluded.memo`,
		sch.ID, sch.ClientID, sch.Title,
		encodeDate(sch.StartDate), encodeDate(sch.EndDate), sch.Memo,
		encodeTime(sch.CreatedAt))
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

func (s *Store) Schedule(ctx context.Context, id string) (schedule.Schedule, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_id, title, start_date, end_date, memo, created_at
		FROM schedules WHERE id = ?`, id)
	return scanSchedule(row)
}

func (s *Store) ListSchedules(ctx context.Context) ([]schedule.Schedule, error) {
	return s.querySchedules(ctx, `
		SELECT id, client_id, title, start_date, end_date, memo, created_at
		FROM schedules ORDER BY created_at, id`)
}

func (s *Store) ListSchedulesByClient(ctx context.Context, clientID string) ([]schedule.Schedule, error) {
	return s.querySchedules(ctx, `
		SELECT id, client_id, title, start_date, end_date, memo, created_at
		FROM schedules WHERE client_id = ? ORDER BY created_at, id`, clientID)
}

func (s *Store) querySchedules(ctx context.Context, query string, args ...any) ([]schedule.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
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

func scanSchedule(row scanner) (schedule.Schedule, error) {
	var sch schedule.Schedule
	var start, end, createdAt string
	err := row.Scan(&sch.ID, &sch.ClientID, &sch.Title, &start, &end, &sch.Memo, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.Schedule{}, schedule.ErrNotFound
	}
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("scan schedule: %w", err)
	}
	if sch.StartDate, err = decodeDate(start); err != nil {
		return schedule.Schedule{}, fmt.Errorf("scan schedule: %w", err)
	}
	if sch.EndDate, err = decodeDate(end); err != nil {
		return schedule.Schedule{}, fmt.Errorf("scan schedule: %w", err)
	}
	if sch.CreatedAt, err = decodeTime(createdAt); err != nil {
		return schedule.Schedule{}, fmt.Errorf("scan schedule: %w", err)
	}
	return sch, nil
}

// =============================================================================
// SCHEDULE WORKERS
// =============================================================================

func (s *Store) SaveScheduleWorker(ctx context.Context, sw schedule.ScheduleWorker) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_workers (
			id, schedule_id, worker_id,
			hourly_wage, fuel_allowance, other_allowance,
			overtime_enabled, night_shift_enabled, tax_withheld,
			wage_paid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schedule_id = excluded.schedule_id, worker_id = excluded.worker_id,
			hourly_wage = excluded.hourly_wage,
			fuel_allowance = excluded.fuel_allowance,
			other_allowance = excluded.other_allowance,
			overtime_enabled = excluded.overtime_enabled,
			night_shift_enabled = excluded.night_shift_enabled,
			tax_withheld = excluded.tax_withheld,
			wage_paid = excluded.wage_paid`,
		sw.ID, sw.ScheduleID, sw.WorkerID,
		sw.Terms.HourlyWage.String(), sw.Terms.FuelAllowance.String(), sw.Terms.OtherAllowance.String(),
		sw.Terms.OvertimeEnabled, sw.Terms.NightShiftEnabled, sw.Terms.TaxWithheld,
		sw.WagePaid, encodeTime(sw.CreatedAt))
	if err != nil {
		return fmt.Errorf("save schedule worker: %w", err)
	}
	return nil
}

func (s *Store) ScheduleWorker(ctx context.Context, id string) (schedule.ScheduleWorker, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, schedule_id, worker_id,
			hourly_wage, fuel_allowance, other_allowance,
			overtime_enabled, night_shift_enabled, tax_withheld,
			wage_paid, created_at
		FROM schedule_workers WHERE id = ?`, id)
	return scanScheduleWorker(row)
}

func (s *Store) ListScheduleWorkers(ctx context.Context, scheduleID string) ([]schedule.ScheduleWorker, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, schedule_id, worker_id,
			hourly_wage, fuel_allowance, other_allowance,
			overtime_enabled, night_shift_enabled, tax_withheld,
			wage_paid, created_at
		FROM schedule_workers WHERE schedule_id = ? ORDER BY created_at, id`, scheduleID)
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

func scanScheduleWorker(row scanner) (schedule.ScheduleWorker, error) {
	var sw schedule.ScheduleWorker
	var wage, fuel, other, createdAt string
	err := row.Scan(&sw.ID, &sw.ScheduleID, &sw.WorkerID,
		&wage, &fuel, &other,
		&sw.Terms.OvertimeEnabled, &sw.Terms.NightShiftEnabled, &sw.Terms.TaxWithheld,
		&sw.WagePaid, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.ScheduleWorker{}, schedule.ErrNotFound
	}
	if err != nil {
		return schedule.ScheduleWorker{}, fmt.Errorf("scan schedule worker: %w", err)
	}
	if sw.Terms.HourlyWage, err = decodeAmount(wage); err != nil {
		return schedule.ScheduleWorker{}, fmt.Errorf("scan schedule worker: %w", err)
	}
	if sw.Terms.FuelAllowance, err = decodeAmount(fuel); err != nil {
		return schedule.ScheduleWorker{}, fmt.Errorf("scan schedule worker: %w", err)
	}
	if sw.Terms.OtherAllowance, err = decodeAmount(other); err != nil {
		return schedule.ScheduleWorker{}, fmt.Errorf("scan schedule worker: %w", err)
	}
	if sw.CreatedAt, err = decodeTime(createdAt); err != nil {
		return schedule.ScheduleWorker{}, fmt.Errorf("scan schedule worker: %w", err)
	}
	return sw, nil
}

// =============================================================================
// WORK PERIODS
// =============================================================================

func (s *Store) SavePeriod(ctx context.Context, p schedule.Period) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO work_periods (id, schedule_worker_id, work_date, start_time, end_time, break_minutes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schedule_worker_id = excluded.schedule_worker_id,
			work_date = excluded.work_date,
			start_time = excluded.start_time, end_time = excluded.end_time,
			break_minutes = excluded.break_minutes`,
		p.ID, p.ScheduleWorkerID, encodeDate(p.Date),
		encodeClock(p.Start), encodeClock(p.End), p.BreakMinutes)
	if err != nil {
		return fmt.Errorf("save period: %w", err)
	}
	return nil
}

func (s *Store) Period(ctx context.Context, id string) (schedule.Period, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, schedule_worker_id, work_date, start_time, end_time, break_minutes
		FROM work_periods WHERE id = ?`, id)
	return scanPeriod(row)
}

func (s *Store) ListPeriods(ctx context.Context, scheduleWorkerID string) ([]schedule.Period, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, schedule_worker_id, work_date, start_time, end_time, break_minutes
		FROM work_periods WHERE schedule_worker_id = ? ORDER BY work_date, id`, scheduleWorkerID)
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
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM work_periods WHERE schedule_worker_id = ?`, scheduleWorkerID)
	if err != nil {
		return fmt.Errorf("delete periods: %w", err)
	}
	return nil
}

func scanPeriod(row scanner) (schedule.Period, error) {
	var p schedule.Period
	var date, start, end string
	err := row.Scan(&p.ID, &p.ScheduleWorkerID, &date, &start, &end, &p.BreakMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.Period{}, schedule.ErrNotFound
	}
	if err != nil {
		return schedule.Period{}, fmt.Errorf("scan period: %w", err)
	}
	if p.Date, err = decodeDate(date); err != nil {
		return schedule.Period{}, fmt.Errorf("scan period: %w", err)
	}
	if p.Start, err = decodeClock(start); err != nil {
		return schedule.Period{}, fmt.Errorf("scan period: %w", err)
	}
	if p.End, err = decodeClock(end); err != nil {
		return schedule.Period{}, fmt.Errorf("scan period: %w", err)
	}
	return p, nil
}

// =============================================================================
// SHARED
// =============================================================================

// deleteByID deletes one row and maps zero rows affected to ErrNotFound.
// The table name is always a compile-time constant here.
func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n == 0 {
		return schedule.ErrNotFound
	}
	return nil
}
