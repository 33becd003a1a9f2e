package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cscruggs10/autointel/internal/constants"
	"github.com/cscruggs10/autointel/internal/models/entities"
)

func setupVehicleTestDB(t *testing.T) *sqlx.DB {
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE runlist_vehicles (
		id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
		runlist_id TEXT NOT NULL,
		vin TEXT NOT NULL,
		year INTEGER,
		make TEXT,
		model TEXT,
		style TEXT,
		mileage INTEGER,
		lane TEXT,
		lot TEXT,
		run_number TEXT,
		stock_number TEXT,
		exterior_color TEXT,
		interior_color TEXT,
		has_condition_report INTEGER NOT NULL DEFAULT 0,
		grade REAL,
		mmr_value REAL,
		matched INTEGER NOT NULL DEFAULT 0,
		match_count INTEGER NOT NULL DEFAULT 0,
		match_strength TEXT,
		match_type TEXT,
		avg_days_to_sell REAL,
		last_sold_date DATETIME,
		needs_scraping INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		t.Fatalf("Failed to create runlist_vehicles table: %v", err)
	}

	return db
}

func TestRunlistVehicleRepository_InsertAndList(t *testing.T) {
	repo := NewRunlistVehicleRepository(setupVehicleTestDB(t))
	ctx := context.Background()

	year := 2019
	make := "Ford"
	model := "F-150"
	lane := "3"
	lot := "22"

	vehicle := &entities.RunlistVehicle{
		RunlistID:          "runlist-1",
		VIN:                "1FTFW1ET1EFA12345",
		Year:               &year,
		Make:               &make,
		Model:              &model,
		Lane:               &lane,
		Lot:                &lot,
		HasConditionReport: true,
	}
	if err := repo.Insert(ctx, vehicle); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if vehicle.ID == "" {
		t.Fatal("Expected the generated ID to be filled in")
	}

	other := &entities.RunlistVehicle{
		RunlistID:     "runlist-2",
		VIN:           "2C3CDXBG5KH612984",
		NeedsScraping: true,
	}
	if err := repo.Insert(ctx, other); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	vehicles, err := repo.ListByRunlistID(ctx, "runlist-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(vehicles) != 1 {
		t.Fatalf("Expected 1 vehicle for the runlist, got %d", len(vehicles))
	}

	row := vehicles[0]
	if row.VIN != "1FTFW1ET1EFA12345" {
		t.Errorf("Expected VIN 1FTFW1ET1EFA12345, got %s", row.VIN)
	}
	if row.Year == nil || *row.Year != 2019 {
		t.Errorf("Expected year 2019, got %v", row.Year)
	}
	if row.Lane == nil || *row.Lane != "3" || row.Lot == nil || *row.Lot != "22" {
		t.Errorf("Expected lane 3 lot 22, got %v / %v", row.Lane, row.Lot)
	}
	if !row.HasConditionReport {
		t.Error("Expected condition report flag to round-trip")
	}
	if row.Matched {
		t.Error("Expected a fresh row to be unmatched")
	}
}

func TestRunlistVehicleRepository_UpdateMatchOutcome(t *testing.T) {
	repo := NewRunlistVehicleRepository(setupVehicleTestDB(t))
	ctx := context.Background()

	vehicle := &entities.RunlistVehicle{
		RunlistID: "runlist-1",
		VIN:       "1FTFW1ET1EFA12345",
	}
	if err := repo.Insert(ctx, vehicle); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	strength := string(constants.MatchStrengthExact)
	matchType := constants.MatchTypeExactVIN
	avg := 28.5
	lastSold := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	outcome := MatchOutcome{
		Matched:       true,
		MatchCount:    3,
		MatchStrength: &strength,
		MatchType:     &matchType,
		AvgDaysToSell: &avg,
		LastSoldDate:  &lastSold,
	}
	if err := repo.UpdateMatchOutcome(ctx, vehicle.ID, outcome); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	vehicles, err := repo.ListByRunlistID(ctx, "runlist-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	row := vehicles[0]
	if !row.Matched || row.MatchCount != 3 {
		t.Errorf("Expected matched with count 3, got %v / %d", row.Matched, row.MatchCount)
	}
	if row.MatchStrength == nil || *row.MatchStrength != strength {
		t.Errorf("Expected strength %s, got %v", strength, row.MatchStrength)
	}
	if row.AvgDaysToSell == nil || *row.AvgDaysToSell != 28.5 {
		t.Errorf("Expected avg days to sell 28.5, got %v", row.AvgDaysToSell)
	}
	if row.LastSoldDate == nil || !row.LastSoldDate.Equal(lastSold) {
		t.Errorf("Expected last sold date %v, got %v", lastSold, row.LastSoldDate)
	}

	// a later pass overwrites the outcome wholesale
	noneStrength := string(constants.MatchStrengthNone)
	noneType := constants.MatchTypeNone
	if err := repo.UpdateMatchOutcome(ctx, vehicle.ID, MatchOutcome{
		MatchStrength: &noneStrength,
		MatchType:     &noneType,
	}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	vehicles, err = repo.ListByRunlistID(ctx, "runlist-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	row = vehicles[0]
	if row.Matched || row.MatchCount != 0 {
		t.Errorf("Expected the rerun to clear the match, got %v / %d", row.Matched, row.MatchCount)
	}
	if row.AvgDaysToSell != nil || row.LastSoldDate != nil {
		t.Errorf("Expected the rerun to clear the stats, got %v / %v", row.AvgDaysToSell, row.LastSoldDate)
	}
}
