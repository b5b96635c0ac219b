package models

import (
	"time"
)

// TickerMetrics stores the derived fundamentals for one symbol, one row per run
type TickerMetrics struct {
	ID                   uint     `gorm:"primaryKey" json:"id"`
	Symbol               string   `gorm:"uniqueIndex:uidx_ticker_symbol;size:20" json:"symbol"`
	Industry             string   `gorm:"index:idx_ticker_industry;size:100" json:"industry"`
	PERatio              *float64 `json:"pe_ratio"`
	RevenueGrowthPct     *float64 `json:"revenue_growth_pct"`
	NetIncomeTTM         *float64 `json:"net_income_ttm"`
	DebtToEquity         *float64 `json:"debt_to_equity"`
	LatestQuarterRevenue *float64 `json:"latest_quarter_revenue"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// IndustrySummary stores aggregated metrics per industry, rebuilt each run
type IndustrySummary struct {
	ID                      uint     `gorm:"primaryKey" json:"id"`
	Industry                string   `gorm:"uniqueIndex:uidx_summary_industry;size:100" json:"industry"`
	AvgPERatio              *float64 `json:"avg_pe_ratio"`
	AvgRevenueGrowthPct     *float64 `json:"avg_revenue_growth_pct"`
	SumLatestQuarterRevenue *float64 `json:"sum_latest_quarter_revenue"`
	CreatedAt               time.Time `json:"created_at"`
}

// CoverageStats represents the dataset coverage counts returned by the API
type CoverageStats struct {
	Tickers          int64 `json:"tickers"`
	Industries       int64 `json:"industries"`
	WithPERatio      int64 `json:"with_pe_ratio"`
	WithGrowth       int64 `json:"with_revenue_growth"`
	WithNetIncomeTTM int64 `json:"with_net_income_ttm"`
	WithDebtToEquity int64 `json:"with_debt_to_equity"`
}
