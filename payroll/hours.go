/*
hours.go - Time aggregation: work periods -> hour buckets

PURPOSE:
  Converts a worker's raw work periods for one schedule into normalized
  hour buckets. This is the leaf of the engine: no dependencies, no I/O.

THE SPLIT:
  Each period's net hours are split at the eight-hour mark: the first eight
  hours are regular, the remainder is overtime. The split is evaluated PER
  PERIOD, not per day-aggregate. Two five-hour periods on the same day are
  ten regular hours and zero overtime, because the threshold applies to
  each contiguous block. Changing this to per-day aggregation would change
  financial outcomes, so it stays as-is.

NIGHT HOURS:
  A period in the late-night window contributes its FULL net hours to the
  night bucket. Night overlaps regular/overtime instead of adding to the
  sum: the night bucket feeds a separate pay multiplier.

TOLERANCE:
  Periods missing a date or time are skipped, contributing zero. An empty
  or all-malformed period list yields all-zero buckets, never an error.

SEE ALSO:
  - period.go: Per-period net-minute arithmetic and the night rule
  - calc.go: Turns buckets into pay
*/
package payroll

import "github.com/shopspring/decimal"

// AggregateHours sums a worker's periods into hour buckets. Order of the
// input is irrelevant. Never returns an error: malformed periods are worth
// zero hours.
func AggregateHours(periods []WorkPeriod) HourBuckets {
	buckets := ZeroHours()
	for _, p := range periods {
		buckets = buckets.Add(periodHours(p))
	}
	return buckets
}

// periodHours buckets a single period. The regular/overtime split runs in
// whole minutes so the conversion to fractional hours stays exact.
func periodHours(p WorkPeriod) HourBuckets {
	net := p.NetMinutes()
	if net == 0 {
		return ZeroHours()
	}

	regular := net
	overtime := 0
	if net > RegularMinutesPerPeriod {
		regular = RegularMinutesPerPeriod
		overtime = net - RegularMinutesPerPeriod
	}

	b := HourBuckets{
		Total:    minutesToHours(net),
		Regular:  minutesToHours(regular),
		Overtime: minutesToHours(overtime),
		Night:    decimal.Zero,
	}
	if p.Night() {
		b.Night = b.Total
	}
	return b
}
