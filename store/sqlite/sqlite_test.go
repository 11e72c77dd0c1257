package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonami-gennnmja/remit-planner-sub000/payroll"
	"github.com/gonami-gennnmja/remit-planner-sub000/schedule"
	"github.com/gonami-gennnmja/remit-planner-sub000/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestClient_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := schedule.Client{
		ID:        "c-1",
		Name:      "Hanbit Logistics",
		Phone:     "010-1234-5678",
		Address:   "Seoul",
		Memo:      "weekend loading dock",
		CreatedAt: time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveClient(ctx, c))

	got, err := s.Client(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = s.Client(ctx, "missing")
	assert.ErrorIs(t, err, schedule.ErrNotFound)

	// Save with the same ID is an update.
	c.Name = "Hanbit Logistics Co."
	require.NoError(t, s.SaveClient(ctx, c))
	got, err = s.Client(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Hanbit Logistics Co.", got.Name)

	require.NoError(t, s.DeleteClient(ctx, "c-1"))
	assert.ErrorIs(t, s.DeleteClient(ctx, "c-1"), schedule.ErrNotFound)
}

func TestScheduleWorker_RoundTrip_PreservesTermsExactly(t *testing.T) {
	// Money columns are decimal strings; a wage of 10333.33 must survive the
	// round trip without floating-point drift.

	s := newTestStore(t)
	ctx := context.Background()

	sw := schedule.ScheduleWorker{
		ID:         "sw-1",
		ScheduleID: "s-1",
		WorkerID:   "w-1",
		Terms: payroll.PayTerms{
			HourlyWage:        decimal.RequireFromString("10333.33"),
			FuelAllowance:     decimal.NewFromInt(30000),
			OtherAllowance:    decimal.Zero,
			OvertimeEnabled:   true,
			NightShiftEnabled: false,
			TaxWithheld:       true,
		},
		WagePaid:  false,
		CreatedAt: time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveScheduleWorker(ctx, sw))

	got, err := s.ScheduleWorker(ctx, "sw-1")
	require.NoError(t, err)
	assert.True(t, sw.Terms.HourlyWage.Equal(got.Terms.HourlyWage), "got %s", got.Terms.HourlyWage)
	assert.True(t, sw.Terms.FuelAllowance.Equal(got.Terms.FuelAllowance))
	assert.True(t, got.Terms.OvertimeEnabled)
	assert.False(t, got.Terms.NightShiftEnabled)
	assert.True(t, got.Terms.TaxWithheld)

	// Flip the settlement flag via upsert.
	got.WagePaid = true
	require.NoError(t, s.SaveScheduleWorker(ctx, got))
	again, err := s.ScheduleWorker(ctx, "sw-1")
	require.NoError(t, err)
	assert.True(t, again.WagePaid)
}

func TestPeriods_RoundTripAndScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mar10 := payroll.NewDate(2025, time.March, 10)
	mar11 := payroll.NewDate(2025, time.March, 11)

	p1 := schedule.Period{
		ID:               "p-1",
		ScheduleWorkerID: "sw-1",
		WorkPeriod: payroll.WorkPeriod{
			Date:         mar10,
			Start:        payroll.MustClock(9, 0),
			End:          payroll.MustClock(18, 0),
			BreakMinutes: 60,
		},
	}
	// A planned day without times yet: clock columns stay empty and decode
	// back to unset.
	p2 := schedule.Period{
		ID:               "p-2",
		ScheduleWorkerID: "sw-1",
		WorkPeriod:       payroll.WorkPeriod{Date: mar11},
	}
	p3 := schedule.Period{
		ID:               "p-3",
		ScheduleWorkerID: "sw-other",
		WorkPeriod:       payroll.WorkPeriod{Date: mar10},
	}
	for _, p := range []schedule.Period{p1, p2, p3} {
		require.NoError(t, s.SavePeriod(ctx, p))
	}

	got, err := s.ListPeriods(ctx, "sw-1")
	require.NoError(t, err)
	require.Len(t, got, 2, "must not leak other workers' periods")
	assert.Equal(t, "p-1", got[0].ID, "ordered by work date")
	assert.Equal(t, "09:00", got[0].Start.String())
	assert.Equal(t, 60, got[0].BreakMinutes)
	assert.False(t, got[1].Start.IsSet())
	assert.False(t, got[1].End.IsSet())

	require.NoError(t, s.DeletePeriods(ctx, "sw-1"))
	got, err = s.ListPeriods(ctx, "sw-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	other, err := s.ListPeriods(ctx, "sw-other")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestService_OnSQLite(t *testing.T) {
	// The domain service must behave identically on the SQLite store and
	// the memory store; this runs one end-to-end flow against SQLite.

	s := newTestStore(t)
	svc := schedule.NewService(s)
	ctx := context.Background()

	client, err := svc.CreateClient(ctx, schedule.Client{Name: "c"})
	require.NoError(t, err)
	sch, err := svc.CreateSchedule(ctx, schedule.Schedule{ClientID: client.ID, Title: "t"})
	require.NoError(t, err)
	worker, err := svc.CreateWorker(ctx, schedule.Worker{Name: "w"})
	require.NoError(t, err)

	sw, err := svc.AttachWorker(ctx, schedule.AttachInput{
		ScheduleID:   sch.ID,
		WorkerID:     worker.ID,
		Terms:        payroll.PayTerms{HourlyWage: decimal.NewFromInt(11000)},
		WorkDays:     []payroll.Date{payroll.NewDate(2025, time.March, 10)},
		Start:        payroll.MustClock(9, 0),
		End:          payroll.MustClock(18, 0),
		BreakMinutes: 60,
	})
	require.NoError(t, err)

	st, err := svc.Payroll(ctx, sw.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(88000).Equal(st.Pay.Net), "got %s", st.Pay.Net)
}
