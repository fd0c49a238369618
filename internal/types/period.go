package types

// Period is the span over which a budget accumulates spending before it
// rolls over.
type Period string

const (
	PeriodWeek    Period = "WEEK"
	PeriodMonth   Period = "MONTH"
	PeriodQuarter Period = "QUARTER"
	PeriodYear    Period = "YEAR"
)

// Periods returns all valid budget periods.
func Periods() []Period {
	return []Period{PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}
}

// Valid reports whether the period is one of the defined values.
func (p Period) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}

	return false
}

// End returns the end date of a period starting at the given date.
// It is computed once when a budget is created or rolled over and is
// immutable afterwards.
func (p Period) End(start Date) Date {
	switch p {
	case PeriodWeek:
		return start.AddDays(7)
	case PeriodMonth:
		return start.AddMonths(1)
	case PeriodQuarter:
		return start.AddMonths(3)
	case PeriodYear:
		return start.AddMonths(12)
	}

	return start
}
