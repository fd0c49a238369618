package types

// Frequency is the rate at which a recurring schedule generates
// transactions.
//
// There is deliberately no days-per-period constant on this type: elapsed
// and remaining time is always computed with exact calendar arithmetic via
// NextDate, a fixed approximation like "monthly = 30 days" drifts.
type Frequency string

const (
	FrequencyDaily     Frequency = "DAILY"
	FrequencyWeekly    Frequency = "WEEKLY"
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
	FrequencyYearly    Frequency = "YEARLY"
)

// Frequencies returns all valid frequencies.
func Frequencies() []Frequency {
	return []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly}
}

// Valid reports whether the frequency is one of the defined values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}

	return false
}

// NextDate returns the next occurrence date after d for the frequency.
// The result is always a valid calendar date: for MONTHLY and QUARTERLY
// the day of month is clamped to the target month's last day, for YEARLY
// Feb 29 becomes Feb 28 in non-leap target years.
func (f Frequency) NextDate(d Date) Date {
	switch f {
	case FrequencyDaily:
		return d.AddDays(1)
	case FrequencyWeekly:
		return d.AddDays(7)
	case FrequencyMonthly:
		return d.AddMonths(1)
	case FrequencyQuarterly:
		return d.AddMonths(3)
	case FrequencyYearly:
		return d.AddMonths(12)
	}

	// Unknown frequencies do not advance. Validation rejects them before
	// a schedule is ever stored, see models.RecurringSchedule.
	return d
}
