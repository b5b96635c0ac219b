// Package analysis holds the pure computation core: quarterly statement
// reconciliation, ratio derivations and per-industry aggregation. Nothing
// here performs I/O, reads configuration or mutates shared state; missing
// data flows through as nil results, never as errors.
package analysis

import (
	"sort"

	"github.com/nordalpha/fiindostats/models"
)

// ReconciledWindow is the per-instrument output of Reconcile: the latest
// unique quarter, the quarter immediately before it, and an unbroken run of
// up to four quarters ending at the latest, newest first. Absent parts are
// nil or empty.
type ReconciledWindow struct {
	Latest   *models.StatementRecord
	Previous *models.StatementRecord
	Trailing []models.StatementRecord
}

type quarterKey struct {
	year    int
	quarter int
}

// Reconcile deduplicates and orders a raw collection of reported periods
// for one instrument. Only quarterly periods participate; FY records are
// ignored. Duplicate filings for the same (year, quarter) resolve to the
// smallest filing rank; a quarter whose duplicates all lack a rank is
// dropped entirely, since unranked duplicates cannot be disambiguated.
// Reconcile is total: it never fails, and any missing-data condition
// resolves to absent outputs.
func Reconcile(records []models.StatementRecord) ReconciledWindow {
	groups := make(map[quarterKey][]models.StatementRecord)
	for _, rec := range records {
		quarter, ok := rec.Period.Quarter()
		if !ok {
			continue
		}
		key := quarterKey{year: rec.CalendarYear, quarter: quarter}
		groups[key] = append(groups[key], rec)
	}

	unique := make([]models.StatementRecord, 0, len(groups))
	for _, group := range groups {
		if rec, ok := resolveDuplicates(group); ok {
			unique = append(unique, rec)
		}
	}
	if len(unique) == 0 {
		return ReconciledWindow{}
	}

	// Year descending, then quarter descending (Q4 > Q3 > Q2 > Q1).
	sort.Slice(unique, func(i, j int) bool {
		if unique[i].CalendarYear != unique[j].CalendarYear {
			return unique[i].CalendarYear > unique[j].CalendarYear
		}
		qi, _ := unique[i].Period.Quarter()
		qj, _ := unique[j].Period.Quarter()
		return qi > qj
	})

	latest := &unique[0]
	latestQuarter, _ := latest.Period.Quarter()
	window := ReconciledWindow{Latest: latest}

	prevYear, prevQuarter := models.PreviousQuarter(latest.CalendarYear, latestQuarter)
	for i := range unique {
		quarter, _ := unique[i].Period.Quarter()
		if unique[i].CalendarYear == prevYear && quarter == prevQuarter {
			window.Previous = &unique[i]
			break
		}
	}

	window.Trailing = trailingWindow(unique, latest.CalendarYear, latestQuarter)
	return window
}

// resolveDuplicates picks the record to keep for one quarter. A lone record
// is kept as-is. Among duplicates the smallest present filing rank wins;
// with no ranks present the quarter is reported unavailable.
func resolveDuplicates(group []models.StatementRecord) (models.StatementRecord, bool) {
	if len(group) == 1 {
		return group[0], true
	}
	best := -1
	for i, rec := range group {
		if rec.FilingRank == nil {
			continue
		}
		if best == -1 || *rec.FilingRank < *group[best].FilingRank {
			best = i
		}
	}
	if best == -1 {
		return models.StatementRecord{}, false
	}
	return group[best], true
}

// trailingWindow walks the sorted unique quarters from the latest one,
// keeping an unbroken consecutive run (wrapping years at Q1), newest first,
// capped at four entries. The first gap ends the window.
func trailingWindow(sorted []models.StatementRecord, year, quarter int) []models.StatementRecord {
	window := make([]models.StatementRecord, 0, 4)
	expectedYear, expectedQuarter := year, quarter
	for _, rec := range sorted {
		q, _ := rec.Period.Quarter()
		if rec.CalendarYear != expectedYear || q != expectedQuarter {
			break
		}
		window = append(window, rec)
		if len(window) == 4 {
			break
		}
		expectedYear, expectedQuarter = models.PreviousQuarter(expectedYear, expectedQuarter)
	}
	return window
}
