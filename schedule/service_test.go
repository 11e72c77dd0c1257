package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonami-gennnmja/remit-planner-sub000/payroll"
	"github.com/gonami-gennnmja/remit-planner-sub000/schedule"
	"github.com/gonami-gennnmja/remit-planner-sub000/schedule/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService() *schedule.Service {
	return schedule.NewService(store.NewMemory())
}

// seed creates a client, a schedule under it, and a worker.
func seed(t *testing.T, svc *schedule.Service) (schedule.Schedule, schedule.Worker) {
	t.Helper()
	ctx := context.Background()

	client, err := svc.CreateClient(ctx, schedule.Client{Name: "Hanbit Logistics"})
	require.NoError(t, err)

	sch, err := svc.CreateSchedule(ctx, schedule.Schedule{
		ClientID:  client.ID,
		Title:     "March warehouse run",
		StartDate: payroll.NewDate(2025, time.March, 10),
		EndDate:   payroll.NewDate(2025, time.March, 12),
	})
	require.NoError(t, err)

	worker, err := svc.CreateWorker(ctx, schedule.Worker{Name: "Kim Minsoo"})
	require.NoError(t, err)

	return sch, worker
}

func baseTerms(wage int64) payroll.PayTerms {
	return payroll.PayTerms{
		HourlyWage:     decimal.NewFromInt(wage),
		FuelAllowance:  decimal.Zero,
		OtherAllowance: decimal.Zero,
	}
}

func attach(t *testing.T, svc *schedule.Service, sch schedule.Schedule, w schedule.Worker, terms payroll.PayTerms, days ...payroll.Date) schedule.ScheduleWorker {
	t.Helper()
	sw, err := svc.AttachWorker(context.Background(), schedule.AttachInput{
		ScheduleID:   sch.ID,
		WorkerID:     w.ID,
		Terms:        terms,
		WorkDays:     days,
		Start:        payroll.MustClock(9, 0),
		End:          payroll.MustClock(18, 0),
		BreakMinutes: 60,
	})
	require.NoError(t, err)
	return sw
}

// =============================================================================
// ATTACH / DETACH
// =============================================================================

func TestAttachWorker_CreatesOnePeriodPerWorkDay(t *testing.T) {
	svc := newTestService()
	sch, worker := seed(t, svc)
	ctx := context.Background()

	sw := attach(t, svc, sch, worker, baseTerms(11000),
		payroll.NewDate(2025, time.March, 10),
		payroll.NewDate(2025, time.March, 11),
		payroll.NewDate(2025, time.March, 12),
	)

	periods, err := svc.ListPeriods(ctx, sw.ID)
	require.NoError(t, err)
	require.Len(t, periods, 3)
	for _, p := range periods {
		assert.Equal(t, "09:00", p.Start.String())
		assert.Equal(t, "18:00", p.End.String())
		assert.Equal(t, 60, p.BreakMinutes)
	}
}

func TestAttachWorker_RejectsBadTermsAndMissingRecords(t *testing.T) {
	svc := newTestService()
	sch, worker := seed(t, svc)
	ctx := context.Background()

	_, err := svc.AttachWorker(ctx, schedule.AttachInput{
		ScheduleID: sch.ID,
		WorkerID:   worker.ID,
		Terms:      payroll.PayTerms{HourlyWage: decimal.Zero},
	})
	assert.ErrorIs(t, err, payroll.ErrNonPositiveWage)

	_, err = svc.AttachWorker(ctx, schedule.AttachInput{
		ScheduleID: "nope",
		WorkerID:   worker.ID,
		Terms:      baseTerms(10000),
	})
	assert.ErrorIs(t, err, schedule.ErrNotFound)

	_, err = svc.AttachWorker(ctx, schedule.AttachInput{
		ScheduleID: sch.ID,
		WorkerID:   "nope",
		Terms:      baseTerms(10000),
	})
	assert.ErrorIs(t, err, schedule.ErrNotFound)
}

func TestDetachWorker_RemovesPeriods(t *testing.T) {
	// GIVEN: An attached worker with periods
	// WHEN: The worker is detached
	// THEN: The relationship and all its periods are gone

	svc := newTestService()
	sch, worker := seed(t, svc)
	ctx := context.Background()

	sw := attach(t, svc, sch, worker, baseTerms(11000),
		payroll.NewDate(2025, time.March, 10))

	require.NoError(t, svc.DetachWorker(ctx, sw.ID))

	_, err := svc.ScheduleWorker(ctx, sw.ID)
	assert.ErrorIs(t, err, schedule.ErrNotFound)

	periods, err := svc.ListPeriods(ctx, sw.ID)
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestDeleteSchedule_CascadesToWorkersAndPeriods(t *testing.T) {
	svc := newTestService()
	sch, worker := seed(t, svc)
	ctx := context.Background()

	sw := attach(t, svc, sch, worker, baseTerms(11000),
		payroll.NewDate(2025, time.March, 10))

	require.NoError(t, svc.DeleteSchedule(ctx, sch.ID))

	_, err := svc.Schedule(ctx, sch.ID)
	assert.ErrorIs(t, err, schedule.ErrNotFound)
	_, err = svc.ScheduleWorker(ctx, sw.ID)
	assert.ErrorIs(t, err, schedule.ErrNotFound)
}

// =============================================================================
// PAYROLL RECOMPUTATION
// =============================================================================

func TestPayroll_RecomputesAfterPeriodEdit(t *testing.T) {
	// GIVEN: One 8-hour work day at wage 11000 (net 88000)
	// WHEN: The day is edited to an 11-hour day with overtime enabled
	// THEN: The next statement reflects the edit; nothing stale survives

	svc := newTestService()
	sch, worker := seed(t, svc)
	ctx := context.Background()

	terms := baseTerms(11000)
	terms.OvertimeEnabled = true
	sw := attach(t, svc, sch, worker, terms, payroll.NewDate(2025, time.March, 10))

	before, err := svc.Payroll(ctx, sw.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(88000).Equal(before.Pay.TotalGross),
		"got %s", before.Pay.TotalGross)

	periods, err := svc.ListPeriods(ctx, sw.ID)
	require.NoError(t, err)
	require.Len(t, periods, 1)

	edited := periods[0].WorkPeriod
	edited.End = payroll.MustClock(21, 0) // 09:00-21:00, 60 break -> 11h
	_, err = svc.UpdatePeriod(ctx, periods[0].ID, edited)
	require.NoError(t, err)

	after, err := svc.Payroll(ctx, sw.ID)
	require.NoError(t, err)
	// 8h regular = 88000, 3h overtime at 1.5x = 49500
	assert.True(t, decimal.NewFromInt(137500).Equal(after.Pay.TotalGross),
		"got %s", after.Pay.TotalGross)
}

func TestPayroll_PeriodWithoutTimes_CountsZero(t *testing.T) {
	svc := newTestService()
	sch, worker := seed(t, svc)
	ctx := context.Background()

	sw, err := svc.AttachWorker(ctx, schedule.AttachInput{
		ScheduleID: sch.ID,
		WorkerID:   worker.ID,
		Terms:      baseTerms(11000),
		WorkDays:   []payroll.Date{payroll.NewDate(2025, time.March, 10)},
		// Start/End left unset: the day is planned but hours unknown.
	})
	require.NoError(t, err)

	st, err := svc.Payroll(ctx, sw.ID)
	require.NoError(t, err)
	assert.True(t, st.Hours.Total.IsZero())
	assert.True(t, st.Pay.Net.IsZero())
}

func TestSchedulePayroll_SumsAcrossWorkers(t *testing.T) {
	svc := newTestService()
	sch, worker := seed(t, svc)
	ctx := context.Background()

	second, err := svc.CreateWorker(ctx, schedule.Worker{Name: "Lee Jiwoo"})
	require.NoError(t, err)

	attach(t, svc, sch, worker, baseTerms(11000), payroll.NewDate(2025, time.March, 10))
	attach(t, svc, sch, second, baseTerms(10000), payroll.NewDate(2025, time.March, 10))

	st, err := svc.SchedulePayroll(ctx, sch.ID)
	require.NoError(t, err)
	require.Len(t, st.Workers, 2)

	// 8h x 11000 + 8h x 10000
	assert.True(t, decimal.NewFromInt(168000).Equal(st.TotalGross), "got %s", st.TotalGross)
	assert.True(t, st.TotalNet.Equal(st.TotalGross), "no withholding anywhere")
}

// =============================================================================
// SETTLEMENT FLAG
// =============================================================================

func TestMarkPaid_DoesNotAffectCalculation(t *testing.T) {
	svc := newTestService()
	sch, worker := seed(t, svc)
	ctx := context.Background()

	sw := attach(t, svc, sch, worker, baseTerms(11000), payroll.NewDate(2025, time.March, 10))

	before, err := svc.Payroll(ctx, sw.ID)
	require.NoError(t, err)

	updated, err := svc.MarkPaid(ctx, sw.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.WagePaid)

	after, err := svc.Payroll(ctx, sw.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Pay, after.Pay, "settlement is caller state, not an input")
	assert.True(t, after.ScheduleWorker.WagePaid)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestCreate_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateClient(ctx, schedule.Client{})
	assert.ErrorIs(t, err, schedule.ErrNameRequired)

	_, err = svc.CreateWorker(ctx, schedule.Worker{})
	assert.ErrorIs(t, err, schedule.ErrNameRequired)

	client, err := svc.CreateClient(ctx, schedule.Client{Name: "c"})
	require.NoError(t, err)

	_, err = svc.CreateSchedule(ctx, schedule.Schedule{ClientID: client.ID})
	assert.ErrorIs(t, err, schedule.ErrTitleRequired)

	_, err = svc.CreateSchedule(ctx, schedule.Schedule{
		ClientID:  client.ID,
		Title:     "backwards",
		StartDate: payroll.NewDate(2025, time.March, 12),
		EndDate:   payroll.NewDate(2025, time.March, 10),
	})
	assert.ErrorIs(t, err, schedule.ErrScheduleRange)

	_, err = svc.CreateSchedule(ctx, schedule.Schedule{ClientID: "nope", Title: "t"})
	assert.ErrorIs(t, err, schedule.ErrNotFound)
}
