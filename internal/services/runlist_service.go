package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cscruggs10/autointel/internal/constants"
	"github.com/cscruggs10/autointel/internal/db/repositories"
	"github.com/cscruggs10/autointel/internal/logging"
	"github.com/cscruggs10/autointel/internal/metrics"
	"github.com/cscruggs10/autointel/internal/models"
	"github.com/cscruggs10/autointel/internal/models/dtos"
	"github.com/cscruggs10/autointel/internal/models/entities"
	gormModels "github.com/cscruggs10/autointel/internal/models/gorm"
)

// matchWorkers bounds the per-vehicle matching pool. Each vehicle row
// has exactly one writer; the aggregate update happens after the pool
// drains.
const matchWorkers = 4

// RunlistStore is the runlist persistence surface the orchestrator needs
type RunlistStore interface {
	Create(ctx context.Context, runlist *gormModels.Runlist) error
	GetByID(ctx context.Context, id string) (*gormModels.Runlist, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	FinishMatching(ctx context.Context, id string, matchedCount int, status string) error
}

// RunlistVehicleStore persists per-vehicle rows and their match outcomes
type RunlistVehicleStore interface {
	Insert(ctx context.Context, vehicle *entities.RunlistVehicle) error
	ListByRunlistID(ctx context.Context, runlistID string) ([]entities.RunlistVehicle, error)
	UpdateMatchOutcome(ctx context.Context, vehicleID string, outcome repositories.MatchOutcome) error
}

// VehicleMatcher is the match engine surface the orchestrator drives
type VehicleMatcher interface {
	Match(ctx context.Context, vehicle *entities.Vehicle) (*dtos.MatchResult, error)
}

// RunlistService drives ingestion end to end: mapping resolution, CSV
// parsing, normalization, persistence and the matching pass.
type RunlistService struct {
	registry   *FormatRegistry
	normalizer *NormalizerService
	matcher    VehicleMatcher
	runlists   RunlistStore
	vehicles   RunlistVehicleStore
	metricsReg *metrics.MetricsRegistry
}

// NewRunlistService wires the orchestrator. metricsReg may be nil (tests)
func NewRunlistService(
	registry *FormatRegistry,
	normalizer *NormalizerService,
	matcher VehicleMatcher,
	runlists RunlistStore,
	vehicles RunlistVehicleStore,
	metricsReg *metrics.MetricsRegistry,
) *RunlistService {
	return &RunlistService{
		registry:   registry,
		normalizer: normalizer,
		matcher:    matcher,
		runlists:   runlists,
		vehicles:   vehicles,
		metricsReg: metricsReg,
	}
}

// IngestRunlist ingests one runlist CSV: resolves the auction's column
// mapping (failing fast on an unregistered format), normalizes every
// row, stores the batch and runs the matching pass. Rows with an
// unusable VIN are dropped and counted; any storage failure aborts the
// ingestion.
func (s *RunlistService) IngestRunlist(ctx context.Context, req *dtos.IngestRequest) (*dtos.IngestSummary, error) {

	mapping, err := s.registry.Resolve(req.AuctionName)
	if err != nil {
		return nil, err
	}

	vehicles, totalRows, skipped, err := s.parseAndNormalize(req.CSV, mapping)
	if err != nil {
		return nil, err
	}

	runlist := &gormModels.Runlist{
		Name:          req.Name,
		AuctionName:   req.AuctionName,
		AuctionDate:   req.AuctionDate,
		UploadedBy:    req.UploadedBy,
		TotalVehicles: len(vehicles),
		Status:        string(constants.RunlistStatusUploaded),
	}
	if err := s.runlists.Create(ctx, runlist); err != nil {
		return nil, fmt.Errorf("failed to create runlist: %w", err)
	}

	if err := s.runlists.UpdateStatus(ctx, runlist.ID, string(constants.RunlistStatusProcessing)); err != nil {
		return nil, err
	}

	for i := range vehicles {
		row := &entities.RunlistVehicle{
			RunlistID:          runlist.ID,
			VIN:                vehicles[i].VIN,
			Year:               vehicles[i].Year,
			Make:               vehicles[i].Make,
			Model:              vehicles[i].Model,
			Style:              vehicles[i].Style,
			Mileage:            vehicles[i].Mileage,
			Lane:               vehicles[i].Lane,
			Lot:                vehicles[i].Lot,
			RunNumber:          vehicles[i].RunNumber,
			StockNumber:        vehicles[i].StockNumber,
			ExteriorColor:      vehicles[i].ExteriorColor,
			InteriorColor:      vehicles[i].InteriorColor,
			HasConditionReport: vehicles[i].HasConditionReport,
			Grade:              vehicles[i].Grade,
			MMRValue:           vehicles[i].MMRValue,
			// vehicles without a condition report are handed to the
			// external announcement scraper
			NeedsScraping: !vehicles[i].HasConditionReport,
		}
		if err := s.vehicles.Insert(ctx, row); err != nil {
			return nil, fmt.Errorf("failed to insert vehicle %s: %w", vehicles[i].VIN, err)
		}
	}

	matchSummary, err := s.RunMatching(ctx, runlist.ID)
	if err != nil {
		return nil, err
	}

	if s.metricsReg != nil {
		s.metricsReg.RunlistsIngestedTotal.Inc()
		s.metricsReg.RowsSkippedTotal.Add(float64(skipped))
		s.metricsReg.VehiclesIngestedTotal.Add(float64(len(vehicles)))
	}

	logging.Info("Runlist ingested",
		"runlist_id", runlist.ID,
		"auction", req.AuctionName,
		"vehicles", len(vehicles),
		"skipped_rows", skipped,
		"matched", matchSummary.Matched,
	)

	return &dtos.IngestSummary{
		RunlistID:   runlist.ID,
		TotalRows:   totalRows,
		SkippedRows: skipped,
		Vehicles:    len(vehicles),
		Matched:     matchSummary.Matched,
		Unmatched:   matchSummary.Unmatched,
	}, nil
}

// RunMatching matches every vehicle in a runlist against the historical
// corpus and projects the outcomes onto the rows. Safe to re-run: each
// pass recomputes all outcomes from the current corpus. Any lookup or
// write failure aborts the whole batch before the aggregate count is
// committed.
func (s *RunlistService) RunMatching(ctx context.Context, runlistID string) (*dtos.MatchSummary, error) {

	passStart := time.Now()

	vehicles, err := s.vehicles.ListByRunlistID(ctx, runlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load runlist vehicles: %w", err)
	}

	var matched int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(matchWorkers)

	for i := range vehicles {
		row := &vehicles[i]
		g.Go(func() error {
			result, err := s.matcher.Match(gctx, canonicalVehicle(row))
			if err != nil {
				return err
			}

			if err := s.vehicles.UpdateMatchOutcome(gctx, row.ID, outcomeFromResult(result)); err != nil {
				return err
			}

			if result.Matched {
				atomic.AddInt64(&matched, 1)
			}
			if s.metricsReg != nil {
				s.metricsReg.VehiclesMatchedTotal.WithLabelValues(string(result.MatchStrength)).Inc()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("matching aborted for runlist %s: %w", runlistID, err)
	}

	// all per-vehicle writes are complete; commit the aggregate
	if err := s.runlists.FinishMatching(ctx, runlistID, int(matched), string(constants.RunlistStatusMatched)); err != nil {
		return nil, err
	}

	if s.metricsReg != nil {
		s.metricsReg.MatchPassDuration.Observe(time.Since(passStart).Seconds())
	}

	return &dtos.MatchSummary{
		Total:     len(vehicles),
		Matched:   int(matched),
		Unmatched: len(vehicles) - int(matched),
	}, nil
}

// parseAndNormalize reads a header-row CSV and produces canonical
// vehicles. Returns the vehicles, the raw data row count and the number
// of rows dropped for an unusable VIN.
func (s *RunlistService) parseAndNormalize(r io.Reader, mapping *models.Mapping) ([]entities.Vehicle, int, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var (
		vehicles  []entities.Vehicle
		totalRows int
		skipped   int
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to read CSV row: %w", err)
		}

		if isEmptyRecord(record) {
			continue
		}
		totalRows++

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[strings.TrimSpace(col)] = record[i]
			}
		}

		vehicle, err := s.normalizer.NormalizeRow(row, mapping)
		if err != nil {
			// ErrInvalidVIN is data-quality noise, not a failure
			skipped++
			continue
		}
		vehicles = append(vehicles, *vehicle)
	}

	return vehicles, totalRows, skipped, nil
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// canonicalVehicle rebuilds the normalizer's view of a stored row for
// the match engine
func canonicalVehicle(row *entities.RunlistVehicle) *entities.Vehicle {
	return &entities.Vehicle{
		VIN:                row.VIN,
		Year:               row.Year,
		Make:               row.Make,
		Model:              row.Model,
		Style:              row.Style,
		Mileage:            row.Mileage,
		Lane:               row.Lane,
		Lot:                row.Lot,
		RunNumber:          row.RunNumber,
		StockNumber:        row.StockNumber,
		ExteriorColor:      row.ExteriorColor,
		InteriorColor:      row.InteriorColor,
		HasConditionReport: row.HasConditionReport,
		Grade:              row.Grade,
		MMRValue:           row.MMRValue,
	}
}

// outcomeFromResult projects a transient MatchResult onto the columns of
// a runlist_vehicles row
func outcomeFromResult(result *dtos.MatchResult) repositories.MatchOutcome {
	strength := string(result.MatchStrength)
	matchType := result.MatchType

	outcome := repositories.MatchOutcome{
		Matched:       result.Matched,
		MatchCount:    result.MatchCount,
		MatchStrength: &strength,
		MatchType:     &matchType,
		LastSoldDate:  result.LastSoldDate,
	}
	if result.Matched {
		avg := result.AvgDaysToSell
		outcome.AvgDaysToSell = &avg
	}
	return outcome
}
