package database

import (
	"fmt"

	"gorm.io/gorm"
)

// OptimizeIndexes creates the partial indexes the read API relies on and
// drops leftovers from earlier schema versions.
func OptimizeIndexes(db *gorm.DB) error {
	// Drop old indexes if they exist
	if err := db.Exec("DROP INDEX IF EXISTS idx_metrics_industry").Error; err != nil {
		fmt.Printf("Warning: Could not drop old index idx_metrics_industry: %v\n", err)
	}

	if err := db.Exec("DROP INDEX IF EXISTS idx_summaries_industry").Error; err != nil {
		fmt.Printf("Warning: Could not drop old index idx_summaries_industry: %v\n", err)
	}

	// Composite index: industry first, then P/E (used by filtered listings)
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ticker_metrics_industry_pe
		ON ticker_metrics (industry, pe_ratio DESC)
		WHERE pe_ratio IS NOT NULL
	`).Error; err != nil {
		return fmt.Errorf("failed to create ticker metrics P/E index: %w", err)
	}

	// Index for growth rankings within an industry
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ticker_metrics_industry_growth
		ON ticker_metrics (industry, revenue_growth_pct DESC)
		WHERE revenue_growth_pct IS NOT NULL
	`).Error; err != nil {
		return fmt.Errorf("failed to create ticker metrics growth index: %w", err)
	}

	fmt.Println("Database indexes optimized successfully")
	return nil
}
