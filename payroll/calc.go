/*
calc.go - Pay calculation: hour buckets + terms -> pay breakdown

PURPOSE:
  Combines aggregated hours with the financial terms of a schedule-worker
  relationship and produces the final breakdown. Pure function of its
  inputs: recomputing after a period edit always gives the same answer for
  the same data.

CALCULATION ORDER:
  1. regular pay    = regular hours x wage
  2. overtime pay   = overtime hours x wage x 1.5 (when enabled)
  3. night pay      = night hours x wage x 1.5 (when enabled)
  4. gross          = pay components + flat fuel/other allowances
  5. taxable base   = gross - allowances (allowances are never taxed)
  6. tax            = taxable base x 3.3% (when withholding is on)
  7. net            = gross - tax

ROUNDING POLICY:
  Every output amount is rounded to the whole currency unit exactly once,
  at output time. Intermediate sums stay unrounded so error cannot
  compound. TotalGross is the rounded UNROUNDED sum, so it can differ from
  the sum of the individually rounded components by at most one unit.

TWO MODES:
  Calculate is the detailed path. QuickEstimate is the flat-hours path one
  caller of the original system used: wage x hours, optional tax, nothing
  else. They produce materially different results for the same worker and
  are deliberately separate entry points.

SEE ALSO:
  - hours.go: Produces the HourBuckets consumed here
  - types.go: PayTerms, PayrollResult, business constants
*/
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Calculate produces the detailed pay breakdown for one worker on one
// schedule. The flat allowances are applied exactly once per call, matching
// their once-per-schedule-worker semantics; callers must not invoke this
// per day and sum the results.
func Calculate(terms PayTerms, hours HourBuckets) (PayrollResult, error) {
	if err := terms.Validate(); err != nil {
		return PayrollResult{}, fmt.Errorf("invalid pay terms: %w", err)
	}
	if !hours.valid() {
		return PayrollResult{}, ErrNegativeHours
	}

	regularPay := hours.Regular.Mul(terms.HourlyWage)

	overtimePay := decimal.Zero
	if terms.OvertimeEnabled {
		overtimePay = hours.Overtime.Mul(terms.HourlyWage).Mul(OvertimeRate)
	}

	nightPay := decimal.Zero
	if terms.NightShiftEnabled {
		nightPay = hours.Night.Mul(terms.HourlyWage).Mul(NightShiftRate)
	}

	// Unrounded running sums. Rounding happens once, below.
	gross := regularPay.Add(overtimePay).Add(nightPay).
		Add(terms.FuelAllowance).Add(terms.OtherAllowance)
	taxableBase := gross.Sub(terms.FuelAllowance).Sub(terms.OtherAllowance)

	tax := decimal.Zero
	if terms.TaxWithheld {
		tax = taxableBase.Mul(WithholdingRate).Round(0)
	}

	totalGross := gross.Round(0)

	return PayrollResult{
		RegularPay:     regularPay.Round(0),
		OvertimePay:    overtimePay.Round(0),
		NightShiftPay:  nightPay.Round(0),
		FuelAllowance:  terms.FuelAllowance.Round(0),
		OtherAllowance: terms.OtherAllowance.Round(0),
		TotalGross:     totalGross,
		Tax:            tax,
		Net:            totalGross.Sub(tax),
	}, nil
}

// CalculatePeriods aggregates periods and calculates in one call; the
// returned buckets let callers show the hour breakdown next to the pay.
func CalculatePeriods(terms PayTerms, periods []WorkPeriod) (HourBuckets, PayrollResult, error) {
	hours := AggregateHours(periods)
	result, err := Calculate(terms, hours)
	if err != nil {
		return HourBuckets{}, PayrollResult{}, err
	}
	return hours, result, nil
}

// QuickEstimate is the simplified flat-hours calculation: gross is wage
// times hours with no overtime, night or allowance components; tax is the
// flat withholding on the whole gross when enabled.
func QuickEstimate(hourlyWage, hours decimal.Decimal, taxWithheld bool) (Estimate, error) {
	if !hourlyWage.IsPositive() {
		return Estimate{}, ErrNonPositiveWage
	}
	if hours.IsNegative() {
		return Estimate{}, ErrNegativeHours
	}

	gross := hourlyWage.Mul(hours)

	tax := decimal.Zero
	if taxWithheld {
		tax = gross.Mul(WithholdingRate).Round(0)
	}

	totalGross := gross.Round(0)

	return Estimate{
		Gross: totalGross,
		Tax:   tax,
		Net:   totalGross.Sub(tax),
	}, nil
}
