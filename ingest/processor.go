package ingest

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nordalpha/fiindostats/analysis"
	"github.com/nordalpha/fiindostats/config"
	"github.com/nordalpha/fiindostats/database"
	"github.com/nordalpha/fiindostats/fiindo"
	"github.com/nordalpha/fiindostats/models"
)

// Processor drives one full ingestion run: symbol discovery, industry
// filtering, per-symbol metric derivation and persistence.
type Processor struct {
	db     *gorm.DB
	client *fiindo.Client
	cfg    config.PipelineConfig

	processedSymbols int64
	skippedSymbols   int64
}

func NewProcessor(client *fiindo.Client, cfg config.PipelineConfig) *Processor {
	return &Processor{
		db:     database.DB,
		client: client,
		cfg:    cfg,
	}
}

// Run executes the pipeline end to end. Individual symbols that fail to
// fetch or yield no usable quarter are skipped with a warning; the run only
// fails on symbol discovery, persistence or cancellation.
func (p *Processor) Run(ctx context.Context) error {
	startTime := time.Now()

	if p.cfg.SpeedBoost {
		if err := p.client.ActivateSpeedBoost(ctx); err != nil {
			log.Printf("Warning: speed boost activation failed: %v", err)
		} else {
			log.Println("Speed boost activated")
		}
	}

	symbols, err := p.client.Symbols(ctx)
	if err != nil {
		return fmt.Errorf("failed to list symbols: %w", err)
	}
	log.Printf("Found %d symbols, filtering by %d allowed industries",
		len(symbols), len(p.cfg.AllowedIndustries))

	tracked, err := p.filterByIndustry(ctx, symbols)
	if err != nil {
		return err
	}

	metrics := p.processSymbols(ctx, tracked)
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(metrics) == 0 {
		log.Println("No symbol produced metrics, leaving stored data untouched")
		return nil
	}

	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Symbol < metrics[j].Symbol })

	if err := p.saveTickerMetrics(metrics); err != nil {
		return fmt.Errorf("failed to save ticker metrics: %w", err)
	}

	log.Println("Starting aggregation of industry summaries...")
	summaries := analysis.AggregateByIndustry(metrics)
	if err := p.saveIndustrySummaries(summaries); err != nil {
		return fmt.Errorf("failed to save industry summaries: %w", err)
	}
	log.Printf("Aggregated %d industries", len(summaries))

	duration := time.Since(startTime)
	log.Printf("Pipeline completed in %v: %d symbols processed, %d skipped",
		duration, atomic.LoadInt64(&p.processedSymbols), atomic.LoadInt64(&p.skippedSymbols))

	return nil
}

// filterByIndustry resolves each symbol's industry and keeps those in the
// allowed set. A failed profile lookup skips that symbol only.
func (p *Processor) filterByIndustry(ctx context.Context, symbols []string) (map[string]string, error) {
	allowed := make(map[string]bool, len(p.cfg.AllowedIndustries))
	for _, industry := range p.cfg.AllowedIndustries {
		allowed[industry] = true
	}

	// Create a semaphore to limit concurrent profile lookups
	semaphore := make(chan struct{}, p.workerCount())
	var wg sync.WaitGroup
	var mu sync.Mutex
	tracked := make(map[string]string)

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if ctx.Err() != nil {
				return
			}

			industry, err := p.client.Industry(ctx, symbol)
			if err != nil {
				log.Printf("Skipping %s: industry lookup failed: %v", symbol, err)
				atomic.AddInt64(&p.skippedSymbols, 1)
				return
			}
			if !allowed[industry] {
				return
			}

			mu.Lock()
			tracked[symbol] = industry
			mu.Unlock()
		}(symbol)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Printf("Tracking %d of %d symbols after industry filtering", len(tracked), len(symbols))
	return tracked, nil
}

// processSymbols derives metrics for all tracked symbols concurrently.
func (p *Processor) processSymbols(ctx context.Context, tracked map[string]string) []models.TickerMetrics {
	semaphore := make(chan struct{}, p.workerCount())
	var wg sync.WaitGroup
	results := make(chan models.TickerMetrics, len(tracked))

	for symbol, industry := range tracked {
		wg.Add(1)
		go func(symbol, industry string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			metrics, err := p.processSymbol(ctx, symbol, industry)
			if err != nil {
				log.Printf("Skipping %s: %v", symbol, err)
				atomic.AddInt64(&p.skippedSymbols, 1)
				return
			}
			if metrics == nil {
				log.Printf("Skipping %s: no reconcilable quarter", symbol)
				atomic.AddInt64(&p.skippedSymbols, 1)
				return
			}

			results <- *metrics
			atomic.AddInt64(&p.processedSymbols, 1)
		}(symbol, industry)
	}

	wg.Wait()
	close(results)

	metrics := make([]models.TickerMetrics, 0, len(tracked))
	for m := range results {
		metrics = append(metrics, m)
	}
	return metrics
}

// processSymbol fetches the three payloads for one symbol in parallel and
// derives its metrics. A symbol with no usable quarter yields (nil, nil).
func (p *Processor) processSymbol(ctx context.Context, symbol, industry string) (*models.TickerMetrics, error) {
	var (
		income  []models.StatementRecord
		balance []models.StatementRecord
		prices  []models.PriceBar
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		income, err = p.client.IncomeStatements(gCtx, symbol)
		return err
	})
	g.Go(func() error {
		var err error
		balance, err = p.client.BalanceSheets(gCtx, symbol)
		return err
	})
	g.Go(func() error {
		var err error
		prices, err = p.client.EOD(gCtx, symbol)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("payload fetch failed: %w", err)
	}

	return buildMetrics(symbol, industry, income, balance, prices), nil
}

// buildMetrics derives the stored metrics for one symbol from its raw
// payloads. Returns nil when reconciliation finds no usable quarter, in
// which case the symbol stores no row at all.
func buildMetrics(symbol, industry string, income, balance []models.StatementRecord, prices []models.PriceBar) *models.TickerMetrics {
	window := analysis.Reconcile(income)
	if window.Latest == nil {
		return nil
	}

	return &models.TickerMetrics{
		Symbol:               symbol,
		Industry:             industry,
		PERatio:              analysis.PriceEarnings(window.Latest, prices),
		RevenueGrowthPct:     analysis.RevenueGrowthPct(window.Latest, window.Previous),
		NetIncomeTTM:         analysis.NetIncomeTTM(window.Trailing),
		DebtToEquity:         analysis.DebtToEquity(balance),
		LatestQuarterRevenue: window.Latest.Revenue,
	}
}

// saveTickerMetrics upserts one row per symbol so that repeated runs
// refresh metrics in place.
func (p *Processor) saveTickerMetrics(metrics []models.TickerMetrics) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "symbol"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"industry", "pe_ratio", "revenue_growth_pct",
				"net_income_ttm", "debt_to_equity", "latest_quarter_revenue",
				"updated_at",
			}),
		}).CreateInBatches(metrics, len(metrics)).Error
	})
}

// saveIndustrySummaries replaces the summary table with the aggregation of
// the current run.
func (p *Processor) saveIndustrySummaries(summaries map[string]models.IndustrySummary) error {
	rows := make([]models.IndustrySummary, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, summary)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Industry < rows[j].Industry })

	return p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM industry_summaries").Error; err != nil {
			return fmt.Errorf("failed to clear industry summaries: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, len(rows)).Error
	})
}

func (p *Processor) workerCount() int {
	if p.cfg.SymbolWorkers > 0 {
		return p.cfg.SymbolWorkers
	}
	return 1
}
