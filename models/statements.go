package models

// Period is a reported fiscal period label: Q1-Q4 for quarters, FY for annual
type Period string

const (
	PeriodQ1 Period = "Q1"
	PeriodQ2 Period = "Q2"
	PeriodQ3 Period = "Q3"
	PeriodQ4 Period = "Q4"
	PeriodFY Period = "FY"
)

// Quarter returns the quarter number within the year (1-4).
// The second return is false for FY and unrecognized labels.
func (p Period) Quarter() (int, bool) {
	switch p {
	case PeriodQ1:
		return 1, true
	case PeriodQ2:
		return 2, true
	case PeriodQ3:
		return 3, true
	case PeriodQ4:
		return 4, true
	}
	return 0, false
}

// IsQuarterly reports whether the period is one of Q1-Q4.
func (p Period) IsQuarterly() bool {
	_, ok := p.Quarter()
	return ok
}

// QuarterPeriod maps a quarter number (1-4) back to its period label.
func QuarterPeriod(q int) (Period, bool) {
	switch q {
	case 1:
		return PeriodQ1, true
	case 2:
		return PeriodQ2, true
	case 3:
		return PeriodQ3, true
	case 4:
		return PeriodQ4, true
	}
	return "", false
}

// PreviousQuarter returns the (year, quarter) immediately before the given
// one, wrapping Q1 to Q4 of the prior year.
func PreviousQuarter(year, quarter int) (int, int) {
	if quarter == 1 {
		return year - 1, 4
	}
	return year, quarter - 1
}

// StatementRecord is one reported financial period for one instrument,
// normalized from a provider payload row. Optional fields are pointers:
// nil means the provider did not report a value, which is distinct from
// a reported zero. Records are never mutated after construction.
type StatementRecord struct {
	Period           Period
	CalendarYear     int
	FilingRank       *int
	Revenue          *float64
	NetIncome        *float64
	EPSDiluted       *float64
	EPS              *float64
	TotalLiabilities *float64
	TotalEquity      *float64
}

// PriceBar is one end-of-day price observation. Provider order is
// oldest-first, so the last bar in a series is the most recent close.
type PriceBar struct {
	Date          string   `json:"date"`
	AdjustedClose *float64 `json:"adjusted_close"`
}
