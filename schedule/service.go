/*
service.go - Operations over clients, workers, schedules and periods

PURPOSE:
  The application-facing surface of the domain. Handlers (or any other
  caller) talk to Service; Service talks to a Store and to the payroll
  engine. All derived pay data is recomputed on demand, never cached.

OPERATIONS:
  Clients/Workers/Schedules:  CRUD
  AttachWorker:               Create the schedule-worker relationship plus
                              one default period per work day
  DetachWorker:               Remove the relationship and its periods
  Add/Update/RemovePeriod:    Edit a day's hours
  Payroll:                    Recompute the statement for one worker
  SchedulePayroll:            Per-worker statements plus schedule totals
  MarkPaid:                   Settlement flag, external to the calculation
*/
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gonami-gennnmja/remit-planner-sub000/payroll"
)

var (
	ErrNameRequired  = errors.New("name is required")
	ErrTitleRequired = errors.New("title is required")
	ErrDateRequired  = errors.New("work date is required")
	ErrScheduleRange = errors.New("schedule end date is before its start date")
)

// Service implements the domain operations on top of a Store.
type Service struct {
	store Store

	// Overridable for deterministic tests.
	newID func() string
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// =============================================================================
// CLIENTS
// =============================================================================

func (s *Service) CreateClient(ctx context.Context, c Client) (Client, error) {
	if c.Name == "" {
		return Client{}, fmt.Errorf("create client: %w", ErrNameRequired)
	}
	c.ID = s.newID()
	c.CreatedAt = s.now()
	if err := s.store.SaveClient(ctx, c); err != nil {
		return Client{}, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

func (s *Service) Client(ctx context.Context, id string) (Client, error) {
	return s.store.Client(ctx, id)
}

func (s *Service) ListClients(ctx context.Context) ([]Client, error) {
	return s.store.ListClients(ctx)
}

// DeleteClient removes a client and every schedule under it.
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	schedules, err := s.store.ListSchedulesByClient(ctx, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	for _, sch := range schedules {
		if err := s.DeleteSchedule(ctx, sch.ID); err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
	}
	return s.store.DeleteClient(ctx, id)
}

// =============================================================================
// WORKERS
// =============================================================================

func (s *Service) CreateWorker(ctx context.Context, w Worker) (Worker, error) {
	if w.Name == "" {
		return Worker{}, fmt.Errorf("create worker: %w", ErrNameRequired)
	}
	w.ID = s.newID()
	w.CreatedAt = s.now()
	if err := s.store.SaveWorker(ctx, w); err != nil {
		return Worker{}, fmt.Errorf("create worker: %w", err)
	}
	return w, nil
}

func (s *Service) Worker(ctx context.Context, id string) (Worker, error) {
	return s.store.Worker(ctx, id)
}

func (s *Service) ListWorkers(ctx context.Context) ([]Worker, error) {
	return s.store.ListWorkers(ctx)
}

func (s *Service) DeleteWorker(ctx context.Context, id string) error {
	return s.store.DeleteWorker(ctx, id)
}

// =============================================================================
// SCHEDULES
// =============================================================================

func (s *Service) CreateSchedule(ctx context.Context, sch Schedule) (Schedule, error) {
	if sch.Title == "" {
		return Schedule{}, fmt.Errorf("create schedule: %w", ErrTitleRequired)
	}
	if _, err := s.store.Client(ctx, sch.ClientID); err != nil {
		return Schedule{}, fmt.Errorf("create schedule: client %s: %w", sch.ClientID, err)
	}
	if !sch.StartDate.IsZero() && !sch.EndDate.IsZero() && sch.EndDate.Before(sch.StartDate) {
		return Schedule{}, fmt.Errorf("create schedule: %w", ErrScheduleRange)
	}
	sch.ID = s.newID()
	sch.CreatedAt = s.now()
	if err := s.store.SaveSchedule(ctx, sch); err != nil {
		return Schedule{}, fmt.Errorf("create schedule: %w", err)
	}
	return sch, nil
}

func (s *Service) Schedule(ctx context.Context, id string) (Schedule, error) {
	return s.store.Schedule(ctx, id)
}

func (s *Service) ListSchedules(ctx context.Context) ([]Schedule, error) {
	return s.store.ListSchedules(ctx)
}

// DeleteSchedule removes a schedule together with its worker attachments
// and their periods.
func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	workers, err := s.store.ListScheduleWorkers(ctx, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	for _, sw := range workers {
		if err := s.DetachWorker(ctx, sw.ID); err != nil {
			return fmt.Errorf("delete schedule: %w", err)
		}
	}
	return s.store.DeleteSchedule(ctx, id)
}

// =============================================================================
// SCHEDULE-WORKER RELATIONSHIP
// =============================================================================

// AttachInput describes a worker joining a schedule: the financial terms
// plus the work days, each of which becomes one period with the default
// start/end times. Days with unset times still get a period row; it simply
// counts zero hours until the times are filled in.
type AttachInput struct {
	ScheduleID string
	WorkerID   string
	Terms      payroll.PayTerms

	WorkDays     []payroll.Date
	Start        payroll.ClockTime
	End          payroll.ClockTime
	BreakMinutes int
}

func (s *Service) AttachWorker(ctx context.Context, in AttachInput) (ScheduleWorker, error) {
	if err := in.Terms.Validate(); err != nil {
		return ScheduleWorker{}, fmt.Errorf("attach worker: %w", err)
	}
	if _, err := s.store.Schedule(ctx, in.ScheduleID); err != nil {
		return ScheduleWorker{}, fmt.Errorf("attach worker: schedule %s: %w", in.ScheduleID, err)
	}
	if _, err := s.store.Worker(ctx, in.WorkerID); err != nil {
		return ScheduleWorker{}, fmt.Errorf("attach worker: worker %s: %w", in.WorkerID, err)
	}

	sw := ScheduleWorker{
		ID:         s.newID(),
		ScheduleID: in.ScheduleID,
		WorkerID:   in.WorkerID,
		Terms:      in.Terms,
		CreatedAt:  s.now(),
	}
	if err := s.store.SaveScheduleWorker(ctx, sw); err != nil {
		return ScheduleWorker{}, fmt.Errorf("attach worker: %w", err)
	}

	for _, d := range in.WorkDays {
		p := Period{
			ID:               s.newID(),
			ScheduleWorkerID: sw.ID,
			WorkPeriod: payroll.WorkPeriod{
				Date:         d,
				Start:        in.Start,
				End:          in.End,
				BreakMinutes: in.BreakMinutes,
			},
		}
		if err := s.store.SavePeriod(ctx, p); err != nil {
			return ScheduleWorker{}, fmt.Errorf("attach worker: period %s: %w", d, err)
		}
	}
	return sw, nil
}

func (s *Service) ScheduleWorker(ctx context.Context, id string) (ScheduleWorker, error) {
	return s.store.ScheduleWorker(ctx, id)
}

func (s *Service) ListScheduleWorkers(ctx context.Context, scheduleID string) ([]ScheduleWorker, error) {
	return s.store.ListScheduleWorkers(ctx, scheduleID)
}

// UpdateTerms replaces the financial terms of an existing relationship.
func (s *Service) UpdateTerms(ctx context.Context, id string, terms payroll.PayTerms) (ScheduleWorker, error) {
	if err := terms.Validate(); err != nil {
		return ScheduleWorker{}, fmt.Errorf("update terms: %w", err)
	}
	sw, err := s.store.ScheduleWorker(ctx, id)
	if err != nil {
		return ScheduleWorker{}, fmt.Errorf("update terms: %w", err)
	}
	sw.Terms = terms
	if err := s.store.SaveScheduleWorker(ctx, sw); err != nil {
		return ScheduleWorker{}, fmt.Errorf("update terms: %w", err)
	}
	return sw, nil
}

// MarkPaid sets the settlement flag. It is caller-owned state and has no
// effect on any calculation.
func (s *Service) MarkPaid(ctx context.Context, id string, paid bool) (ScheduleWorker, error) {
	sw, err := s.store.ScheduleWorker(ctx, id)
	if err != nil {
		return ScheduleWorker{}, fmt.Errorf("mark paid: %w", err)
	}
	sw.WagePaid = paid
	if err := s.store.SaveScheduleWorker(ctx, sw); err != nil {
		return ScheduleWorker{}, fmt.Errorf("mark paid: %w", err)
	}
	return sw, nil
}

// DetachWorker removes the relationship and every period under it.
func (s *Service) DetachWorker(ctx context.Context, id string) error {
	if err := s.store.DeletePeriods(ctx, id); err != nil {
		return fmt.Errorf("detach worker: %w", err)
	}
	return s.store.DeleteScheduleWorker(ctx, id)
}

// =============================================================================
// PERIODS
// =============================================================================

func (s *Service) AddPeriod(ctx context.Context, scheduleWorkerID string, wp payroll.WorkPeriod) (Period, error) {
	if wp.Date.IsZero() {
		return Period{}, fmt.Errorf("add period: %w", ErrDateRequired)
	}
	if _, err := s.store.ScheduleWorker(ctx, scheduleWorkerID); err != nil {
		return Period{}, fmt.Errorf("add period: %w", err)
	}
	p := Period{ID: s.newID(), ScheduleWorkerID: scheduleWorkerID, WorkPeriod: wp}
	if err := s.store.SavePeriod(ctx, p); err != nil {
		return Period{}, fmt.Errorf("add period: %w", err)
	}
	return p, nil
}

func (s *Service) UpdatePeriod(ctx context.Context, id string, wp payroll.WorkPeriod) (Period, error) {
	if wp.Date.IsZero() {
		return Period{}, fmt.Errorf("update period: %w", ErrDateRequired)
	}
	p, err := s.store.Period(ctx, id)
	if err != nil {
		return Period{}, fmt.Errorf("update period: %w", err)
	}
	p.WorkPeriod = wp
	if err := s.store.SavePeriod(ctx, p); err != nil {
		return Period{}, fmt.Errorf("update period: %w", err)
	}
	return p, nil
}

func (s *Service) ListPeriods(ctx context.Context, scheduleWorkerID string) ([]Period, error) {
	return s.store.ListPeriods(ctx, scheduleWorkerID)
}

func (s *Service) RemovePeriod(ctx context.Context, id string) error {
	return s.store.DeletePeriod(ctx, id)
}

// =============================================================================
// PAYROLL
// =============================================================================

// Payroll recomputes the statement for one schedule-worker from its current
// periods and terms. Nothing is persisted; calling it twice with unchanged
// data gives identical results.
func (s *Service) Payroll(ctx context.Context, scheduleWorkerID string) (Statement, error) {
	sw, err := s.store.ScheduleWorker(ctx, scheduleWorkerID)
	if err != nil {
		return Statement{}, fmt.Errorf("payroll: %w", err)
	}
	periods, err := s.store.ListPeriods(ctx, scheduleWorkerID)
	if err != nil {
		return Statement{}, fmt.Errorf("payroll: %w", err)
	}

	raw := make([]payroll.WorkPeriod, len(periods))
	for i, p := range periods {
		raw[i] = p.WorkPeriod
	}

	hours, pay, err := payroll.CalculatePeriods(sw.Terms, raw)
	if err != nil {
		return Statement{}, fmt.Errorf("payroll: %w", err)
	}
	return Statement{ScheduleWorker: sw, Hours: hours, Pay: pay}, nil
}

// SchedulePayroll recomputes statements for every worker on a schedule and
// sums the gross and net totals.
func (s *Service) SchedulePayroll(ctx context.Context, scheduleID string) (ScheduleStatement, error) {
	if _, err := s.store.Schedule(ctx, scheduleID); err != nil {
		return ScheduleStatement{}, fmt.Errorf("schedule payroll: %w", err)
	}
	workers, err := s.store.ListScheduleWorkers(ctx, scheduleID)
	if err != nil {
		return ScheduleStatement{}, fmt.Errorf("schedule payroll: %w", err)
	}

	out := ScheduleStatement{
		ScheduleID: scheduleID,
		TotalGross: decimal.Zero,
		TotalNet:   decimal.Zero,
	}
	for _, sw := range workers {
		st, err := s.Payroll(ctx, sw.ID)
		if err != nil {
			return ScheduleStatement{}, fmt.Errorf("schedule payroll: worker %s: %w", sw.WorkerID, err)
		}
		out.Workers = append(out.Workers, st)
		out.TotalGross = out.TotalGross.Add(st.Pay.TotalGross)
		out.TotalNet = out.TotalNet.Add(st.Pay.Net)
	}
	return out, nil
}
