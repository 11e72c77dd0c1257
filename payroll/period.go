package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// WORK PERIOD - One contiguous block of work on a single day
// =============================================================================

// WorkPeriod is one contiguous block of work on a single calendar day.
// A day with a split shift has one WorkPeriod per block.
type WorkPeriod struct {
	Date  Date
	Start ClockTime
	End   ClockTime

	// BreakMinutes is unpaid break time subtracted from the interval.
	BreakMinutes int
}

// Complete reports whether the period carries all three mandatory fields.
// Incomplete periods are skipped by aggregation rather than rejected, so
// one bad row never sinks a whole calculation.
func (p WorkPeriod) Complete() bool {
	return !p.Date.IsZero() && p.Start.IsSet() && p.End.IsSet()
}

// NetMinutes returns paid minutes: (end - start) - break, clamped at zero.
// A break that consumes the whole interval yields zero, never negative.
func (p WorkPeriod) NetMinutes() int {
	if !p.Complete() {
		return 0
	}
	n := p.End.MinuteOfDay() - p.Start.MinuteOfDay() - p.BreakMinutes
	if n < 0 {
		return 0
	}
	return n
}

// NetHours returns NetMinutes as fractional hours.
func (p WorkPeriod) NetHours() decimal.Decimal {
	return minutesToHours(p.NetMinutes())
}

// Night reports whether the period falls in the late-night window: start
// hour at or past 22, or end hour at or before 6, by local clock hour. The
// rule looks at clock hours only; a period ending exactly at 06:00 counts,
// one running 20:00-23:00 does not.
func (p WorkPeriod) Night() bool {
	if !p.Complete() {
		return false
	}
	return p.Start.Hour() >= NightStartHour || p.End.Hour() <= NightEndHour
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(minutesPerHour))
}
