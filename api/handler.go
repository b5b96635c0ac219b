package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nordalpha/fiindostats/database"
	"github.com/nordalpha/fiindostats/models"
)

type TickerQuery struct {
	Industry string `form:"industry"`
}

// ListTickers returns stored ticker metrics, optionally filtered by the
// exact industry label.
func ListTickers(c *gin.Context) {
	var params TickerQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := database.DB.Order("symbol")
	if params.Industry != "" {
		query = query.Where("industry = ?", params.Industry)
	}

	var tickers []models.TickerMetrics
	if err := query.Find(&tickers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tickers)
}

// GetTicker returns the metrics row for one symbol.
func GetTicker(c *gin.Context) {
	symbol := c.Param("symbol")

	var ticker models.TickerMetrics
	err := database.DB.Where("symbol = ?", symbol).First(&ticker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticker not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ticker)
}

// ListIndustries returns the per-industry summaries of the latest run.
func ListIndustries(c *gin.Context) {
	var summaries []models.IndustrySummary
	if err := database.DB.Order("industry").Find(&summaries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetCoverageStats reports how many stored tickers carry each metric.
// Counts distinguish "metric absent" from "metric zero": only non-null
// columns count.
func GetCoverageStats(c *gin.Context) {
	stats, err := calculateCoverage()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func calculateCoverage() (*models.CoverageStats, error) {
	db := database.DB

	var result models.CoverageStats

	err := db.Raw(`
		SELECT
			COUNT(*) as tickers,
			(SELECT COUNT(*) FROM industry_summaries) as industries,
			COUNT(pe_ratio) as with_pe_ratio,
			COUNT(revenue_growth_pct) as with_growth,
			COUNT(net_income_ttm) as with_net_income_ttm,
			COUNT(debt_to_equity) as with_debt_to_equity
		FROM ticker_metrics
	`).Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/tickers", ListTickers)
		v1.GET("/tickers/:symbol", GetTicker)
		v1.GET("/industries", ListIndustries)
		v1.GET("/stats", GetCoverageStats)
	}

	return r
}
