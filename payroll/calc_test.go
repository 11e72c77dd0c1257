package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonami-gennnmja/remit-planner-sub000/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func won(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func terms(wage int64) payroll.PayTerms {
	return payroll.PayTerms{
		HourlyWage:     won(wage),
		FuelAllowance:  decimal.Zero,
		OtherAllowance: decimal.Zero,
	}
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, won(want).Equal(got), "%s: want %d, got %s", label, want, got)
}

// =============================================================================
// DETAILED CALCULATION SCENARIOS
// =============================================================================

func TestCalculate_RegularDay(t *testing.T) {
	// GIVEN: 09:00-18:00 with a one-hour break, wage 11000, nothing enabled
	// THEN: 8 regular hours, gross == net == 88000

	hrs, result, err := payroll.CalculatePeriods(terms(11000), []payroll.WorkPeriod{
		period(t, 1, "09:00", "18:00", 60),
	})
	require.NoError(t, err)

	assertHours(t, 8, hrs.Regular, "regular hours")
	assertAmount(t, 88000, result.RegularPay, "regular pay")
	assertAmount(t, 0, result.OvertimePay, "overtime pay")
	assertAmount(t, 88000, result.TotalGross, "gross")
	assertAmount(t, 0, result.Tax, "tax")
	assertAmount(t, 88000, result.Net, "net")
}

func TestCalculate_Overtime(t *testing.T) {
	// GIVEN: An 11-hour day at wage 10000 with overtime enabled
	// THEN: 8h regular = 80000, 3h overtime at 1.5x = 45000, gross 125000

	tm := terms(10000)
	tm.OvertimeEnabled = true

	_, result, err := payroll.CalculatePeriods(tm, []payroll.WorkPeriod{
		period(t, 1, "09:00", "20:00", 0),
	})
	require.NoError(t, err)

	assertAmount(t, 80000, result.RegularPay, "regular pay")
	assertAmount(t, 45000, result.OvertimePay, "overtime pay")
	assertAmount(t, 125000, result.TotalGross, "gross")
}

func TestCalculate_OvertimeDisabled_PaysNothingExtra(t *testing.T) {
	_, result, err := payroll.CalculatePeriods(terms(10000), []payroll.WorkPeriod{
		period(t, 1, "09:00", "20:00", 0),
	})
	require.NoError(t, err)

	assertAmount(t, 0, result.OvertimePay, "overtime pay")
	assertAmount(t, 80000, result.TotalGross, "gross is regular pay only")
}

func TestCalculate_TaxWithholding(t *testing.T) {
	// GIVEN: The overtime scenario with withholding enabled, no allowances
	// THEN: taxable base 125000, tax = round(125000 x 3.3%) = 4125,
	//       net = 120875

	tm := terms(10000)
	tm.OvertimeEnabled = true
	tm.TaxWithheld = true

	_, result, err := payroll.CalculatePeriods(tm, []payroll.WorkPeriod{
		period(t, 1, "09:00", "20:00", 0),
	})
	require.NoError(t, err)

	assertAmount(t, 4125, result.Tax, "tax")
	assertAmount(t, 120875, result.Net, "net")
	assert.True(t, result.Net.Equal(result.TotalGross.Sub(result.Tax)))
}

func TestCalculate_NightShift(t *testing.T) {
	// GIVEN: 23:00-23:59 at wage 10000 with night shift enabled
	// THEN: Start hour 23 >= 22, so the full 59 minutes count as night;
	//       night pay = (59/60) x 10000 x 1.5 = 14750. The same hours also
	//       earn regular pay: night is an additional multiplier.

	tm := terms(10000)
	tm.NightShiftEnabled = true

	hrs, result, err := payroll.CalculatePeriods(tm, []payroll.WorkPeriod{
		period(t, 1, "23:00", "23:59", 0),
	})
	require.NoError(t, err)

	assert.True(t, hrs.Night.Equal(hrs.Total))
	assertAmount(t, 14750, result.NightShiftPay, "night pay")
	assertAmount(t, 9833, result.RegularPay, "regular pay")
}

func TestCalculate_NightShiftDisabled(t *testing.T) {
	_, result, err := payroll.CalculatePeriods(terms(10000), []payroll.WorkPeriod{
		period(t, 1, "23:00", "23:59", 0),
	})
	require.NoError(t, err)
	assertAmount(t, 0, result.NightShiftPay, "night pay")
}

func TestCalculate_Allowances(t *testing.T) {
	// GIVEN: 8 regular hours at 10000, fuel 30000, other 20000, withholding
	// THEN: Allowances land in gross exactly once and are excluded from the
	//       taxable base: tax = round(80000 x 3.3%) = 2640.

	tm := terms(10000)
	tm.FuelAllowance = won(30000)
	tm.OtherAllowance = won(20000)
	tm.TaxWithheld = true

	_, result, err := payroll.CalculatePeriods(tm, []payroll.WorkPeriod{
		period(t, 1, "09:00", "18:00", 60),
	})
	require.NoError(t, err)

	assertAmount(t, 30000, result.FuelAllowance, "fuel allowance")
	assertAmount(t, 20000, result.OtherAllowance, "other allowance")
	assertAmount(t, 130000, result.TotalGross, "gross")
	assertAmount(t, 2640, result.Tax, "tax excludes allowances")
	assertAmount(t, 127360, result.Net, "net")
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestCalculate_GrossEqualsSumOfComponents(t *testing.T) {
	tm := terms(10350) // odd wage so rounding actually has something to do
	tm.OvertimeEnabled = true
	tm.NightShiftEnabled = true
	tm.TaxWithheld = true
	tm.FuelAllowance = won(15000)

	_, result, err := payroll.CalculatePeriods(tm, []payroll.WorkPeriod{
		period(t, 1, "09:00", "20:00", 45),
		period(t, 2, "22:00", "23:59", 0),
	})
	require.NoError(t, err)

	sum := result.RegularPay.Add(result.OvertimePay).Add(result.NightShiftPay).
		Add(result.FuelAllowance).Add(result.OtherAllowance)
	diff := result.TotalGross.Sub(sum).Abs()
	assert.True(t, diff.LessThanOrEqual(won(1)),
		"gross must equal the component sum within one unit of rounding, diff %s", diff)

	assert.True(t, result.Net.Equal(result.TotalGross.Sub(result.Tax)))
}

func TestCalculate_NoWithholding_NetEqualsGross(t *testing.T) {
	_, result, err := payroll.CalculatePeriods(terms(10000), []payroll.WorkPeriod{
		period(t, 1, "09:00", "18:00", 60),
	})
	require.NoError(t, err)

	assertAmount(t, 0, result.Tax, "tax")
	assert.True(t, result.Net.Equal(result.TotalGross))
}

func TestCalculate_Idempotent(t *testing.T) {
	// Recomputing with identical inputs must give identical output. The UI
	// recomputes previews on every edit, so this has to hold.

	tm := terms(9900)
	tm.OvertimeEnabled = true
	tm.TaxWithheld = true
	periods := []payroll.WorkPeriod{
		period(t, 1, "09:00", "20:00", 30),
		period(t, 2, "23:00", "23:59", 0),
	}

	_, first, err := payroll.CalculatePeriods(tm, periods)
	require.NoError(t, err)
	_, second, err := payroll.CalculatePeriods(tm, periods)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculate_EmptyPeriods_ZeroResult(t *testing.T) {
	_, result, err := payroll.CalculatePeriods(terms(10000), nil)
	require.NoError(t, err)

	assertAmount(t, 0, result.TotalGross, "gross")
	assertAmount(t, 0, result.Net, "net")
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestCalculate_RejectsBadTerms(t *testing.T) {
	_, err := payroll.Calculate(payroll.PayTerms{HourlyWage: decimal.Zero}, payroll.ZeroHours())
	assert.ErrorIs(t, err, payroll.ErrNonPositiveWage)

	_, err = payroll.Calculate(payroll.PayTerms{HourlyWage: won(-100)}, payroll.ZeroHours())
	assert.ErrorIs(t, err, payroll.ErrNonPositiveWage)

	bad := terms(10000)
	bad.FuelAllowance = won(-1)
	_, err = payroll.Calculate(bad, payroll.ZeroHours())
	assert.ErrorIs(t, err, payroll.ErrNegativeAllowance)
}

func TestCalculate_RejectsNegativeHours(t *testing.T) {
	// Aggregation clamps at zero, so a negative bucket can only come from a
	// caller building buckets by hand. Still rejected.
	hrs := payroll.ZeroHours()
	hrs.Regular = won(-1)
	hrs.Total = won(-1)

	_, err := payroll.Calculate(terms(10000), hrs)
	assert.ErrorIs(t, err, payroll.ErrNegativeHours)
}

// =============================================================================
// QUICK ESTIMATE (flat-hours mode)
// =============================================================================

func TestQuickEstimate(t *testing.T) {
	// GIVEN: Wage 10000, 11 flat hours, withholding on
	// THEN: gross 110000, tax = round(110000 x 3.3%) = 3630, net 106370.
	//       No overtime applies even though 11 > 8: this mode is flat.

	est, err := payroll.QuickEstimate(won(10000), decimal.NewFromInt(11), true)
	require.NoError(t, err)

	assertAmount(t, 110000, est.Gross, "gross")
	assertAmount(t, 3630, est.Tax, "tax")
	assertAmount(t, 106370, est.Net, "net")
}

func TestQuickEstimate_NoTax(t *testing.T) {
	est, err := payroll.QuickEstimate(won(10000), decimal.NewFromFloat(7.5), false)
	require.NoError(t, err)

	assertAmount(t, 75000, est.Gross, "gross")
	assertAmount(t, 0, est.Tax, "tax")
	assert.True(t, est.Net.Equal(est.Gross))
}

func TestQuickEstimate_DiffersFromDetailed(t *testing.T) {
	// The two modes are separate on purpose: for an 11-hour day with
	// overtime enabled the detailed path pays the 1.5x premium, the flat
	// path does not.

	tm := terms(10000)
	tm.OvertimeEnabled = true
	_, detailed, err := payroll.CalculatePeriods(tm, []payroll.WorkPeriod{
		period(t, 1, "09:00", "20:00", 0),
	})
	require.NoError(t, err)

	est, err := payroll.QuickEstimate(won(10000), decimal.NewFromInt(11), false)
	require.NoError(t, err)

	assertAmount(t, 125000, detailed.TotalGross, "detailed gross")
	assertAmount(t, 110000, est.Gross, "flat gross")
}

func TestQuickEstimate_Validation(t *testing.T) {
	_, err := payroll.QuickEstimate(decimal.Zero, decimal.NewFromInt(8), false)
	assert.ErrorIs(t, err, payroll.ErrNonPositiveWage)

	_, err = payroll.QuickEstimate(won(10000), won(-1), false)
	assert.ErrorIs(t, err, payroll.ErrNegativeHours)
}
