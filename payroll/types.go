/*
Package payroll implements the pay calculation engine for schedule workers.

PURPOSE:
  This package contains the pure domain logic for turning a worker's raw
  work periods into an auditable pay breakdown. It is the one part of the
  system with real invariants: hour buckets must sum, tax ordering matters,
  and the overtime/night thresholds are business rules with edge cases.

KEY CONCEPTS IN THIS FILE (types.go):
  - PayTerms:      The financial terms of one worker on one schedule
  - HourBuckets:   Normalized hours split into regular/overtime/night
  - PayrollResult: The final pay breakdown (gross components, tax, net)
  - Estimate:      Output of the simplified flat-hours calculation

DESIGN PRINCIPLES:
  1. Purity: No I/O, no hidden state. Same inputs, same outputs, always.
  2. Precision: decimal.Decimal throughout; integer rounding only at output.
  3. Tolerance: Malformed periods contribute zero hours instead of aborting.
  4. Explicit modes: The detailed and flat-hours calculations are separate
     entry points that produce materially different results.

USAGE:
  hours := payroll.AggregateHours(periods)
  result, err := payroll.Calculate(terms, hours)

SEE ALSO:
  - hours.go: Time aggregation (period -> hour buckets)
  - calc.go: Pay calculation (hour buckets + terms -> result)
  - period.go: WorkPeriod and its net-minute arithmetic
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// BUSINESS CONSTANTS
// =============================================================================

const (
	// RegularMinutesPerPeriod is the per-period threshold beyond which hours
	// count as overtime. The threshold applies to each contiguous work
	// period independently, not to the summed daily total: two five-hour
	// periods on the same day are both fully regular.
	RegularMinutesPerPeriod = 8 * 60

	// NightStartHour and NightEndHour bound the late-night window. A period
	// counts as night work when its start hour is >= NightStartHour or its
	// end hour is <= NightEndHour, by local clock hour.
	NightStartHour = 22
	NightEndHour   = 6

	minutesPerHour = 60
)

var (
	// OvertimeRate multiplies the hourly wage for overtime hours.
	OvertimeRate = decimal.NewFromFloat(1.5)

	// NightShiftRate multiplies the hourly wage for night hours.
	NightShiftRate = decimal.NewFromFloat(1.5)

	// WithholdingRate is the flat withholding applied to the taxable part
	// of gross pay when tax withholding is enabled (3.3%).
	WithholdingRate = decimal.NewFromFloat(0.033)
)

// =============================================================================
// PAY TERMS - Financial terms for one worker on one schedule
// =============================================================================

// PayTerms carries the contractual terms of a schedule-worker relationship.
// The two allowances are flat amounts applied once per calculation, never
// per period.
type PayTerms struct {
	HourlyWage     decimal.Decimal
	FuelAllowance  decimal.Decimal
	OtherAllowance decimal.Decimal

	OvertimeEnabled   bool
	NightShiftEnabled bool
	TaxWithheld       bool
}

// Validate rejects terms the calculator must not run with.
func (t PayTerms) Validate() error {
	if !t.HourlyWage.IsPositive() {
		return ErrNonPositiveWage
	}
	if t.FuelAllowance.IsNegative() || t.OtherAllowance.IsNegative() {
		return ErrNegativeAllowance
	}
	return nil
}

// =============================================================================
// HOUR BUCKETS - Aggregated hours, the Time Aggregator output
// =============================================================================

// HourBuckets holds a worker's hours for one schedule, in fractional hours.
//
// Invariant: Regular + Overtime == Total. Night is a separately reported
// bucket that overlaps the other two: the same hour can be both regular and
// night for pay-multiplier purposes, so Night is never part of the sum.
type HourBuckets struct {
	Total    decimal.Decimal
	Regular  decimal.Decimal
	Overtime decimal.Decimal
	Night    decimal.Decimal
}

// ZeroHours returns an all-zero bucket set.
func ZeroHours() HourBuckets {
	return HourBuckets{
		Total:    decimal.Zero,
		Regular:  decimal.Zero,
		Overtime: decimal.Zero,
		Night:    decimal.Zero,
	}
}

func (b HourBuckets) IsZero() bool {
	return b.Total.IsZero() && b.Regular.IsZero() && b.Overtime.IsZero() && b.Night.IsZero()
}

// Add returns the bucket-wise sum of b and other.
func (b HourBuckets) Add(other HourBuckets) HourBuckets {
	return HourBuckets{
		Total:    b.Total.Add(other.Total),
		Regular:  b.Regular.Add(other.Regular),
		Overtime: b.Overtime.Add(other.Overtime),
		Night:    b.Night.Add(other.Night),
	}
}

// valid reports whether all buckets are non-negative. Aggregation can never
// produce negative buckets; this guards hand-built inputs.
func (b HourBuckets) valid() bool {
	return !b.Total.IsNegative() && !b.Regular.IsNegative() &&
		!b.Overtime.IsNegative() && !b.Night.IsNegative()
}

// =============================================================================
// PAYROLL RESULT - The pay breakdown
// =============================================================================

// PayrollResult is the final breakdown for one worker on one schedule.
// All amounts are rounded to whole currency units at output time;
// intermediate sums use unrounded values so rounding error never compounds.
//
// Invariants:
//   - TotalGross == round(regular + overtime + night + fuel + other)
//   - Net == TotalGross - Tax
type PayrollResult struct {
	RegularPay     decimal.Decimal
	OvertimePay    decimal.Decimal
	NightShiftPay  decimal.Decimal
	FuelAllowance  decimal.Decimal
	OtherAllowance decimal.Decimal

	TotalGross decimal.Decimal
	Tax        decimal.Decimal
	Net        decimal.Decimal
}

// Estimate is the output of the simplified flat-hours calculation. It has
// no overtime, night or allowance components.
type Estimate struct {
	Gross decimal.Decimal
	Tax   decimal.Decimal
	Net   decimal.Decimal
}
