package analysis

import (
	"github.com/nordalpha/fiindostats/models"
)

// AggregateByIndustry reduces per-ticker metrics into one summary per
// industry. Grouping is by the exact industry string, case-sensitive. Each
// statistic averages or sums only the tickers where the underlying value is
// present and stays nil when no ticker contributes, so an industry with no
// data never reports zero.
func AggregateByIndustry(metrics []models.TickerMetrics) map[string]models.IndustrySummary {
	grouped := make(map[string][]models.TickerMetrics)
	for _, m := range metrics {
		grouped[m.Industry] = append(grouped[m.Industry], m)
	}

	summaries := make(map[string]models.IndustrySummary, len(grouped))
	for industry, group := range grouped {
		summary := models.IndustrySummary{Industry: industry}

		var peSum, growthSum, revenueSum float64
		var peCount, growthCount, revenueCount int
		for _, m := range group {
			if m.PERatio != nil {
				peSum += *m.PERatio
				peCount++
			}
			if m.RevenueGrowthPct != nil {
				growthSum += *m.RevenueGrowthPct
				growthCount++
			}
			if m.LatestQuarterRevenue != nil {
				revenueSum += *m.LatestQuarterRevenue
				revenueCount++
			}
		}
		if peCount > 0 {
			avg := peSum / float64(peCount)
			summary.AvgPERatio = &avg
		}
		if growthCount > 0 {
			avg := growthSum / float64(growthCount)
			summary.AvgRevenueGrowthPct = &avg
		}
		if revenueCount > 0 {
			summary.SumLatestQuarterRevenue = &revenueSum
		}
		summaries[industry] = summary
	}
	return summaries
}
