package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/cscruggs10/autointel/internal/constants"
	"github.com/cscruggs10/autointel/internal/db/repositories"
	"github.com/cscruggs10/autointel/internal/models"
	"github.com/cscruggs10/autointel/internal/models/dtos"
	"github.com/cscruggs10/autointel/internal/models/entities"
	gormModels "github.com/cscruggs10/autointel/internal/models/gorm"
)

// Mock RunlistStore
type mockRunlistStore struct {
	mu           sync.Mutex
	runlists     map[string]*gormModels.Runlist
	statuses     []string
	matchedCount int
	finishCalls  int
	createErr    error
}

func newMockRunlistStore() *mockRunlistStore {
	return &mockRunlistStore{runlists: make(map[string]*gormModels.Runlist)}
}

func (m *mockRunlistStore) Create(ctx context.Context, runlist *gormModels.Runlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	runlist.ID = fmt.Sprintf("runlist-%d", len(m.runlists)+1)
	m.runlists[runlist.ID] = runlist
	m.statuses = append(m.statuses, runlist.Status)
	return nil
}

func (m *mockRunlistStore) GetByID(ctx context.Context, id string) (*gormModels.Runlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runlists[id], nil
}

func (m *mockRunlistStore) UpdateStatus(ctx context.Context, id string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, status)
	return nil
}

func (m *mockRunlistStore) FinishMatching(ctx context.Context, id string, matchedCount int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finishCalls++
	m.matchedCount = matchedCount
	m.statuses = append(m.statuses, status)
	return nil
}

// Mock RunlistVehicleStore
type mockVehicleStore struct {
	mu       sync.Mutex
	rows     []entities.RunlistVehicle
	outcomes map[string]repositories.MatchOutcome
}

func newMockVehicleStore() *mockVehicleStore {
	return &mockVehicleStore{outcomes: make(map[string]repositories.MatchOutcome)}
}

func (m *mockVehicleStore) Insert(ctx context.Context, vehicle *entities.RunlistVehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle.ID = fmt.Sprintf("vehicle-%d", len(m.rows)+1)
	m.rows = append(m.rows, *vehicle)
	return nil
}

func (m *mockVehicleStore) ListByRunlistID(ctx context.Context, runlistID string) ([]entities.RunlistVehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.RunlistVehicle
	for _, row := range m.rows {
		if row.RunlistID == runlistID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockVehicleStore) UpdateMatchOutcome(ctx context.Context, vehicleID string, outcome repositories.MatchOutcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[vehicleID] = outcome
	return nil
}

// Mock VehicleMatcher
type mockMatcher struct {
	matchFunc func(ctx context.Context, vehicle *entities.Vehicle) (*dtos.MatchResult, error)
}

func (m *mockMatcher) Match(ctx context.Context, vehicle *entities.Vehicle) (*dtos.MatchResult, error) {
	return m.matchFunc(ctx, vehicle)
}

func identityRegistry(t *testing.T) *FormatRegistry {
	t.Helper()
	registry := NewFormatRegistry()
	err := registry.RegisterAuction("Test Auction", models.Mapping{
		VIN:                "Vin",
		Year:               "Year",
		Make:               "Make",
		Model:              "Model",
		Lane:               "Lane",
		Lot:                "Lot",
		HasConditionReport: "CR",
	})
	if err != nil {
		t.Fatalf("Failed to register test mapping: %v", err)
	}
	return registry
}

func vinMatcher(matchedVINs ...string) *mockMatcher {
	return &mockMatcher{
		matchFunc: func(ctx context.Context, vehicle *entities.Vehicle) (*dtos.MatchResult, error) {
			for _, vin := range matchedVINs {
				if vehicle.VIN == vin {
					return &dtos.MatchResult{
						Matched:       true,
						MatchCount:    3,
						MatchStrength: constants.MatchStrengthExact,
						MatchType:     constants.MatchTypeExactVIN,
						AvgDaysToSell: 28.5,
					}, nil
				}
			}
			return &dtos.MatchResult{
				Matched:       false,
				MatchStrength: constants.MatchStrengthNone,
				MatchType:     constants.MatchTypeNone,
				Message:       constants.MsgMatchedNoHistory,
			}, nil
		},
	}
}

const testCSV = "Vin,Year,Make,Model,Lane,Lot,CR\n" +
	"1FTFW1ET1EFA12345,2019,Ford,F-150,3,22,TRUE\n" +
	"2C3CDXBG5KH612984,2019,Dodge,Charger,3,23,FALSE\n" +
	"SHORT,2018,Honda,Civic,3,24,TRUE\n" +
	",,,,,,\n" +
	"5NPE24AF1FH198230,2015,Hyundai,Sonata,4,1,TRUE\n"

func TestIngestRunlist_EndToEnd(t *testing.T) {
	runlists := newMockRunlistStore()
	vehicles := newMockVehicleStore()
	matcher := vinMatcher("1FTFW1ET1EFA12345", "5NPE24AF1FH198230")

	service := NewRunlistService(identityRegistry(t), NewNormalizerService(),
		matcher, runlists, vehicles, nil)

	summary, err := service.IngestRunlist(context.Background(), &dtos.IngestRequest{
		Name:        "week-35.csv",
		AuctionName: "Test Auction",
		UploadedBy:  "uploader-1",
		CSV:         strings.NewReader(testCSV),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// one short-VIN row dropped, the blank line ignored entirely
	if summary.TotalRows != 4 {
		t.Errorf("Expected 4 data rows, got %d", summary.TotalRows)
	}
	if summary.SkippedRows != 1 {
		t.Errorf("Expected 1 skipped row, got %d", summary.SkippedRows)
	}
	if summary.Vehicles != 3 {
		t.Errorf("Expected 3 vehicles, got %d", summary.Vehicles)
	}
	if summary.Matched != 2 || summary.Unmatched != 1 {
		t.Errorf("Expected 2 matched / 1 unmatched, got %d / %d", summary.Matched, summary.Unmatched)
	}

	runlist := runlists.runlists[summary.RunlistID]
	if runlist == nil {
		t.Fatal("Runlist not stored")
	}
	if runlist.TotalVehicles != 3 {
		t.Errorf("Expected total_vehicles 3, got %d", runlist.TotalVehicles)
	}

	wantStatuses := []string{
		string(constants.RunlistStatusUploaded),
		string(constants.RunlistStatusProcessing),
		string(constants.RunlistStatusMatched),
	}
	if len(runlists.statuses) != len(wantStatuses) {
		t.Fatalf("Expected statuses %v, got %v", wantStatuses, runlists.statuses)
	}
	for i, status := range wantStatuses {
		if runlists.statuses[i] != status {
			t.Errorf("Expected status %s at step %d, got %s", status, i, runlists.statuses[i])
		}
	}

	if runlists.matchedCount != 2 {
		t.Errorf("Expected aggregate matched count 2, got %d", runlists.matchedCount)
	}

	// every stored vehicle got an outcome
	if len(vehicles.outcomes) != 3 {
		t.Fatalf("Expected 3 outcomes, got %d", len(vehicles.outcomes))
	}
}

func TestIngestRunlist_NeedsScrapingFollowsConditionReport(t *testing.T) {
	runlists := newMockRunlistStore()
	vehicles := newMockVehicleStore()

	service := NewRunlistService(identityRegistry(t), NewNormalizerService(),
		vinMatcher(), runlists, vehicles, nil)

	_, err := service.IngestRunlist(context.Background(), &dtos.IngestRequest{
		Name:        "week-35.csv",
		AuctionName: "Test Auction",
		CSV:         strings.NewReader(testCSV),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	byVIN := make(map[string]entities.RunlistVehicle)
	for _, row := range vehicles.rows {
		byVIN[row.VIN] = row
	}

	if byVIN["1FTFW1ET1EFA12345"].NeedsScraping {
		t.Error("Expected vehicle with a condition report to skip scraping")
	}
	if !byVIN["2C3CDXBG5KH612984"].NeedsScraping {
		t.Error("Expected vehicle without a condition report to need scraping")
	}
}

func TestIngestRunlist_UnknownAuction(t *testing.T) {
	runlists := newMockRunlistStore()
	vehicles := newMockVehicleStore()

	service := NewRunlistService(NewFormatRegistry(), NewNormalizerService(),
		vinMatcher(), runlists, vehicles, nil)

	_, err := service.IngestRunlist(context.Background(), &dtos.IngestRequest{
		AuctionName: "Unregistered Auction House",
		CSV:         strings.NewReader(testCSV),
	})

	var unknown *models.UnknownFormatError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownFormatError, got %v", err)
	}
	if len(runlists.runlists) != 0 {
		t.Error("Expected no runlist to be created for an unknown format")
	}
}

func TestRunMatching_Rerunnable(t *testing.T) {
	runlists := newMockRunlistStore()
	vehicles := newMockVehicleStore()
	matcher := vinMatcher("1FTFW1ET1EFA12345")

	service := NewRunlistService(identityRegistry(t), NewNormalizerService(),
		matcher, runlists, vehicles, nil)

	summary, err := service.IngestRunlist(context.Background(), &dtos.IngestRequest{
		Name:        "week-35.csv",
		AuctionName: "Test Auction",
		CSV:         strings.NewReader(testCSV),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	first, err := service.RunMatching(context.Background(), summary.RunlistID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := service.RunMatching(context.Background(), summary.RunlistID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if first.Matched != second.Matched || first.Total != second.Total {
		t.Errorf("Expected identical summaries across reruns, got %+v then %+v", first, second)
	}
	if runlists.matchedCount != second.Matched {
		t.Errorf("Expected aggregate count %d, got %d", second.Matched, runlists.matchedCount)
	}
}

func TestRunMatching_MatcherErrorAbortsBatch(t *testing.T) {
	runlists := newMockRunlistStore()
	vehicles := newMockVehicleStore()
	dbErr := errors.New("corpus unavailable")
	matcher := &mockMatcher{
		matchFunc: func(ctx context.Context, vehicle *entities.Vehicle) (*dtos.MatchResult, error) {
			return nil, dbErr
		},
	}

	service := NewRunlistService(identityRegistry(t), NewNormalizerService(),
		matcher, runlists, vehicles, nil)

	_, err := service.IngestRunlist(context.Background(), &dtos.IngestRequest{
		Name:        "week-35.csv",
		AuctionName: "Test Auction",
		CSV:         strings.NewReader(testCSV),
	})
	if !errors.Is(err, dbErr) {
		t.Fatalf("Expected the matcher error to surface, got %v", err)
	}
	if runlists.finishCalls != 0 {
		t.Error("Expected no aggregate commit after an aborted matching pass")
	}
}

func TestIngestRunlist_BOMHeader(t *testing.T) {
	runlists := newMockRunlistStore()
	vehicles := newMockVehicleStore()

	service := NewRunlistService(identityRegistry(t), NewNormalizerService(),
		vinMatcher(), runlists, vehicles, nil)

	csvWithBOM := "\ufeff" + testCSV
	summary, err := service.IngestRunlist(context.Background(), &dtos.IngestRequest{
		Name:        "week-35.csv",
		AuctionName: "Test Auction",
		CSV:         strings.NewReader(csvWithBOM),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summary.Vehicles != 3 {
		t.Errorf("Expected the BOM-prefixed header to parse, got %d vehicles", summary.Vehicles)
	}
}
