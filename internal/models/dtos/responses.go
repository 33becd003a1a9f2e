package dtos

import (
	"time"

	"github.com/cscruggs10/autointel/internal/constants"
)

// MatchResult is the transient outcome of matching one vehicle against
// the historical corpus. Its fields are projected onto the
// runlist_vehicles row; the result itself is never persisted.
type MatchResult struct {
	Matched              bool                    `json:"matched"`
	MatchCount           int                     `json:"match_count"`
	MatchStrength        constants.MatchStrength `json:"match_strength"`
	MatchType            string                  `json:"match_type"`
	AvgDaysToSell        float64                 `json:"avg_days_to_sell"`
	AvgDaysToSellRounded int                     `json:"avg_days_to_sell_rounded"`
	LastSoldDate         *time.Time              `json:"last_sold_date,omitempty"`
	Message              string                  `json:"message"`
}

// MatchSummary aggregates a full matching pass over one runlist
type MatchSummary struct {
	Total     int `json:"total"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
}

// IngestSummary is returned from a completed runlist ingestion
type IngestSummary struct {
	RunlistID   string `json:"runlist_id"`
	TotalRows   int    `json:"total_rows"`
	SkippedRows int    `json:"skipped_rows"`
	Vehicles    int    `json:"vehicles"`
	Matched     int    `json:"matched"`
	Unmatched   int    `json:"unmatched"`
}

// SalesImportSummary reports a historical sales import run
type SalesImportSummary struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Errors   int `json:"errors"`
}

// ShareLink carries a presigned runlist link token
type ShareLink struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SystemStatus backs GET /api/v1/status
type SystemStatus struct {
	HistoricalSales int `json:"historical_sales"`
	Runlists        int `json:"runlists"`
}
