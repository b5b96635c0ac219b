package analysis

import (
	"github.com/nordalpha/fiindostats/models"
)

// PriceEarnings computes price over earnings for the latest quarter against
// the most recent adjusted close, which is the last entry of the price
// series. EPS prefers the diluted figure and falls back to basic EPS when
// diluted is absent or zero; a zero EPS never divides. Returns nil when any
// prerequisite is missing.
func PriceEarnings(latest *models.StatementRecord, prices []models.PriceBar) *float64 {
	if latest == nil || len(prices) == 0 {
		return nil
	}
	lastClose := prices[len(prices)-1].AdjustedClose
	if lastClose == nil {
		return nil
	}
	eps := usableEPS(latest)
	if eps == nil {
		return nil
	}
	ratio := *lastClose / *eps
	return &ratio
}

func usableEPS(rec *models.StatementRecord) *float64 {
	if rec.EPSDiluted != nil && *rec.EPSDiluted != 0 {
		return rec.EPSDiluted
	}
	if rec.EPS != nil && *rec.EPS != 0 {
		return rec.EPS
	}
	return nil
}

// RevenueGrowthPct computes quarter-over-quarter revenue growth as a
// percentage of the previous quarter. A zero revenue on either side counts
// as missing, so the division is always safe.
func RevenueGrowthPct(latest, previous *models.StatementRecord) *float64 {
	if latest == nil || previous == nil {
		return nil
	}
	if latest.Revenue == nil || *latest.Revenue == 0 {
		return nil
	}
	if previous.Revenue == nil || *previous.Revenue == 0 {
		return nil
	}
	growth := (*latest.Revenue - *previous.Revenue) / *previous.Revenue * 100
	return &growth
}

// NetIncomeTTM sums net income across a trailing window of exactly four
// consecutive quarters. A quarter with no net income figure contributes
// zero to the sum; a window shorter than four quarters is insufficient and
// yields nil.
func NetIncomeTTM(window []models.StatementRecord) *float64 {
	if len(window) < 4 {
		return nil
	}
	var total float64
	for _, rec := range window {
		if rec.NetIncome != nil {
			total += *rec.NetIncome
		}
	}
	return &total
}

// DebtToEquity computes total liabilities over total equity from the most
// recently reported full-year record, taken as the last FY entry in
// provider order. Both fields must be present and equity non-zero; zero
// liabilities with non-zero equity is a present 0.0, not a gap.
func DebtToEquity(records []models.StatementRecord) *float64 {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Period != models.PeriodFY {
			continue
		}
		liabilities := records[i].TotalLiabilities
		equity := records[i].TotalEquity
		if liabilities == nil || equity == nil || *equity == 0 {
			return nil
		}
		ratio := *liabilities / *equity
		return &ratio
	}
	return nil
}
