package fiindo

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/nordalpha/fiindostats/models"
)

// APIError represents a non-success response from the Fiindo API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fiindo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

type symbolsResponse struct {
	Symbols []string `json:"symbols"`
}

type generalResponse struct {
	Fundamentals struct {
		Profile struct {
			Data []struct {
				Industry string `json:"industry"`
			} `json:"data"`
		} `json:"profile"`
	} `json:"fundamentals"`
}

type eodResponse struct {
	Stockprice struct {
		Data []models.PriceBar `json:"data"`
	} `json:"stockprice"`
}

type incomeStatementResponse struct {
	Fundamentals struct {
		Financials struct {
			IncomeStatement struct {
				Data []statementRow `json:"data"`
			} `json:"income_statement"`
		} `json:"financials"`
	} `json:"fundamentals"`
}

type balanceSheetResponse struct {
	Fundamentals struct {
		Financials struct {
			BalanceSheet struct {
				Data []statementRow `json:"data"`
			} `json:"balance_sheet_statement"`
		} `json:"financials"`
	} `json:"fundamentals"`
}

type speedBoostRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// calendarYear accepts both string ("2024") and bare numeric (2024)
// encodings; the provider is not consistent across endpoints.
type calendarYear string

func (y *calendarYear) UnmarshalJSON(b []byte) error {
	*y = calendarYear(strings.Trim(string(b), `"`))
	return nil
}

// statementRow is one raw statement period as reported by the provider.
// Financial fields are pointers so that absent keys and explicit nulls
// both decode to nil.
type statementRow struct {
	Date             string       `json:"date"`
	Period           string       `json:"period"`
	CalendarYear     calendarYear `json:"calendarYear"`
	Timescheme       *string      `json:"timescheme"`
	Revenue          *float64     `json:"revenue"`
	NetIncome        *float64     `json:"netIncome"`
	EPSDiluted       *float64     `json:"epsdiluted"`
	EPS              *float64     `json:"eps"`
	TotalLiabilities *float64     `json:"totalLiabilities"`
	TotalEquity      *float64     `json:"totalEquity"`
}

// toStatementRecords normalizes raw rows, preserving provider order.
// A quarterly row whose calendar year does not parse cannot be grouped or
// ordered and is dropped with a warning; annual rows are consumed by
// provider order alone, so an unparsable year there is left as zero.
func toStatementRecords(symbol string, rows []statementRow) []models.StatementRecord {
	records := make([]models.StatementRecord, 0, len(rows))
	for _, row := range rows {
		period := models.Period(row.Period)
		year, err := strconv.Atoi(string(row.CalendarYear))
		if err != nil {
			if period.IsQuarterly() {
				log.Printf("Warning: %s: dropping %s row with unparsable calendarYear %q",
					symbol, row.Period, row.CalendarYear)
				continue
			}
			year = 0
		}
		records = append(records, models.StatementRecord{
			Period:           period,
			CalendarYear:     year,
			FilingRank:       parseFilingRank(symbol, row.Timescheme),
			Revenue:          row.Revenue,
			NetIncome:        row.NetIncome,
			EPSDiluted:       row.EPSDiluted,
			EPS:              row.EPS,
			TotalLiabilities: row.TotalLiabilities,
			TotalEquity:      row.TotalEquity,
		})
	}
	return records
}

// parseFilingRank extracts the numeric rank from a timescheme tag such as
// "Q-1". A null tag means no rank. A malformed tag is surfaced as a warning
// and treated as absent, so it can never win duplicate resolution.
func parseFilingRank(symbol string, timescheme *string) *int {
	if timescheme == nil {
		return nil
	}
	if _, after, found := strings.Cut(*timescheme, "-"); found {
		if rank, err := strconv.Atoi(after); err == nil {
			return &rank
		}
	}
	log.Printf("Warning: %s: unparsable timescheme tag %q, treating filing rank as absent",
		symbol, *timescheme)
	return nil
}
