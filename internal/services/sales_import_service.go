package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cscruggs10/autointel/internal/constants"
	"github.com/cscruggs10/autointel/internal/logging"
	"github.com/cscruggs10/autointel/internal/metrics"
	"github.com/cscruggs10/autointel/internal/models/dtos"
	"github.com/cscruggs10/autointel/internal/models/entities"
)

// SalesStore is the corpus write surface for imports
type SalesStore interface {
	Upsert(ctx context.Context, sale *entities.HistoricalSale) (bool, error)
}

// SalesImportService ingests the dealer sales export into the historical
// corpus. Imports are idempotent: rows are keyed by (vin, stock_nbr) and
// a re-import replaces the prior row instead of duplicating it.
type SalesImportService struct {
	store      SalesStore
	metricsReg *metrics.MetricsRegistry
}

// NewSalesImportService wires the importer. metricsReg may be nil (tests, CLI)
func NewSalesImportService(store SalesStore, metricsReg *metrics.MetricsRegistry) *SalesImportService {
	return &SalesImportService{store: store, metricsReg: metricsReg}
}

// salesColumns are the dealer export's header names
var salesColumns = struct {
	DateSold, StockNbr, VIN, Year, Make, Model            string
	PurchasePrice, TotalRepairs, TotalCost, SalesPrice    string
	GrossProfit, NetProfit, DaysToSell, Location, Shopper string
}{
	DateSold:      "Date Sold",
	StockNbr:      "Stock Nbr",
	VIN:           "VIN",
	Year:          "Year",
	Make:          "Make",
	Model:         "Model",
	PurchasePrice: "Purchase Price",
	TotalRepairs:  "Total Repairs",
	TotalCost:     "Total Cost",
	SalesPrice:    "Sales Price",
	GrossProfit:   "Gross Profit",
	NetProfit:     "Net Profit",
	DaysToSell:    "Days To Sell",
	Location:      "Location",
	Shopper:       "Purchased From",
}

// Import reads the sales CSV and upserts every usable row. Rows without
// a plausible VIN are counted as errors and skipped; parse failures on
// other fields degrade to absent values.
func (s *SalesImportService) Import(ctx context.Context, r io.Reader) (*dtos.SalesImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read sales CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	summary := &dtos.SalesImportSummary{}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sales CSV row: %w", err)
		}
		if isEmptyRecord(record) {
			continue
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[strings.TrimSpace(col)] = record[i]
			}
		}

		sale, ok := saleFromRow(row)
		if !ok {
			summary.Errors++
			continue
		}

		inserted, err := s.store.Upsert(ctx, sale)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert sale for VIN %s: %w", sale.VIN, err)
		}
		if inserted {
			summary.Imported++
		} else {
			summary.Updated++
		}
	}

	if s.metricsReg != nil {
		s.metricsReg.SalesImportedTotal.WithLabelValues("inserted").Add(float64(summary.Imported))
		s.metricsReg.SalesImportedTotal.WithLabelValues("updated").Add(float64(summary.Updated))
		s.metricsReg.SalesImportedTotal.WithLabelValues("error").Add(float64(summary.Errors))
	}

	logging.Info("Historical sales import finished",
		"imported", summary.Imported,
		"updated", summary.Updated,
		"errors", summary.Errors,
	)

	return summary, nil
}

func saleFromRow(row map[string]string) (*entities.HistoricalSale, bool) {
	vin := strings.TrimSpace(strings.ReplaceAll(row[salesColumns.VIN], `"`, ""))
	if len(vin) < constants.MinVINLength {
		return nil, false
	}

	stockNbr := strings.TrimSpace(row[salesColumns.StockNbr])

	return &entities.HistoricalSale{
		VIN:           vin,
		StockNbr:      stockNbr,
		DateSold:      parseSaleDate(row[salesColumns.DateSold]),
		Year:          parseOptionalInt(row[salesColumns.Year]),
		Make:          trimmedField(row, salesColumns.Make),
		Model:         trimmedField(row, salesColumns.Model),
		PurchasePrice: parseMoney(row[salesColumns.PurchasePrice]),
		TotalRepairs:  parseMoney(row[salesColumns.TotalRepairs]),
		TotalCost:     parseMoney(row[salesColumns.TotalCost]),
		SalesPrice:    parseMoney(row[salesColumns.SalesPrice]),
		GrossProfit:   parseMoney(row[salesColumns.GrossProfit]),
		NetProfit:     parseMoney(row[salesColumns.NetProfit]),
		DaysToSell:    parseOptionalInt(row[salesColumns.DaysToSell]),
		Location:      trimmedField(row, salesColumns.Location),
		PurchasedFrom: trimmedField(row, salesColumns.Shopper),
	}, true
}

var saleDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
}

func parseSaleDate(raw string) *time.Time {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
	if cleaned == "" {
		return nil
	}
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return &t
		}
	}
	return nil
}
