package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Setup sqlx test database for the historical corpus. Rows are seeded
// directly: the production upsert's conflict handling is Postgres-only
// (xmax), but the tier stat queries run unmodified here.
func setupSalesTestDB(t *testing.T) *sqlx.DB {
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE historical_sales (
		id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
		vin TEXT NOT NULL,
		stock_nbr TEXT NOT NULL,
		date_sold DATETIME,
		year INTEGER,
		make TEXT,
		model TEXT,
		purchase_price REAL,
		total_repairs REAL,
		total_cost REAL,
		sales_price REAL,
		gross_profit REAL,
		net_profit REAL,
		days_to_sell INTEGER,
		location TEXT,
		purchased_from TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		t.Fatalf("Failed to create historical_sales table: %v", err)
	}

	return db
}

func seedSale(t *testing.T, db *sqlx.DB, vin, stockNbr string, year int, make, model string, daysToSell int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO historical_sales (vin, stock_nbr, year, make, model, days_to_sell)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		vin, stockNbr, year, make, model, daysToSell,
	)
	if err != nil {
		t.Fatalf("Failed to seed sale: %v", err)
	}
}

func TestHistoricalSalesRepository_StatsByVIN(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewHistoricalSalesRepository(db)
	ctx := context.Background()

	seedSale(t, db, "1FTFW1ET1EFA12345", "10321", 2019, "Ford", "F-150", 30)
	seedSale(t, db, "1FTFW1ET1EFA12345", "10458", 2019, "Ford", "F-150", 50)
	seedSale(t, db, "2C3CDXBG5KH612984", "10500", 2019, "Dodge", "Charger", 20)

	stats, err := repo.StatsByVIN(ctx, "1FTFW1ET1EFA12345")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stats.MatchCount != 2 {
		t.Errorf("Expected 2 sales for the VIN, got %d", stats.MatchCount)
	}
	if stats.AvgDaysToSell == nil || *stats.AvgDaysToSell != 40 {
		t.Errorf("Expected average days to sell 40, got %v", stats.AvgDaysToSell)
	}
}

func TestHistoricalSalesRepository_StatsByYearMakeModel_CaseInsensitive(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewHistoricalSalesRepository(db)
	ctx := context.Background()

	seedSale(t, db, "1HGCV1F31LA012345", "10001", 2020, "HONDA", "Accord", 25)
	seedSale(t, db, "1HGCV1F31LA054321", "10002", 2020, "honda", "ACCORD", 35)
	seedSale(t, db, "1HGCV1F31LA098765", "10003", 2021, "Honda", "Accord", 45)

	stats, err := repo.StatsByYearMakeModel(ctx, 2020, "Honda", "accord")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stats.MatchCount != 2 {
		t.Errorf("Expected 2 case-insensitive hits for 2020, got %d", stats.MatchCount)
	}
	if stats.AvgDaysToSell == nil || *stats.AvgDaysToSell != 30 {
		t.Errorf("Expected average days to sell 30, got %v", stats.AvgDaysToSell)
	}
}

func TestHistoricalSalesRepository_StatsByYearWindow_Boundaries(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewHistoricalSalesRepository(db)
	ctx := context.Background()

	// one Accord per model year, mixed-case make/model
	makes := []string{"Honda", "HONDA", "honda", "Honda", "HONDA", "honda", "Honda"}
	for i, year := range []int{2017, 2018, 2019, 2020, 2021, 2022, 2023} {
		seedSale(t, db, fmt.Sprintf("1HGCV1F31LA0123%02d", i), fmt.Sprintf("200%02d", i),
			year, makes[i], "accord", 20+i)
	}
	seedSale(t, db, "1FTFW1ET1EFA12345", "30001", 2020, "Ford", "F-150", 30)

	stats, err := repo.StatsByYearWindow(ctx, 2020, 2, "HONDA", "Accord")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// 2018 through 2022 inclusive; 2017 and 2023 are outside the window
	if stats.MatchCount != 5 {
		t.Errorf("Expected 5 sales in the 2018-2022 window, got %d", stats.MatchCount)
	}
	if stats.AvgDaysToSell == nil || *stats.AvgDaysToSell != 23 {
		t.Errorf("Expected average days to sell 23, got %v", stats.AvgDaysToSell)
	}
}

func TestHistoricalSalesRepository_StatsByMakeModel_AllYears(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewHistoricalSalesRepository(db)
	ctx := context.Background()

	seedSale(t, db, "1HGCV1F31LA012345", "10001", 2015, "Honda", "Accord", 20)
	seedSale(t, db, "1HGCV1F31LA054321", "10002", 2022, "HONDA", "accord", 40)
	seedSale(t, db, "1HGCV1F31LA098765", "10003", 2022, "Honda", "Civic", 60)

	stats, err := repo.StatsByMakeModel(ctx, "honda", "ACCORD")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stats.MatchCount != 2 {
		t.Errorf("Expected 2 Accords across all years, got %d", stats.MatchCount)
	}
}

func TestHistoricalSalesRepository_NoHits(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewHistoricalSalesRepository(db)
	ctx := context.Background()

	seedSale(t, db, "1HGCV1F31LA012345", "10001", 2020, "Honda", "Accord", 25)

	stats, err := repo.StatsByYearMakeModel(ctx, 2020, "Toyota", "Camry")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stats.MatchCount != 0 {
		t.Errorf("Expected 0 hits, got %d", stats.MatchCount)
	}
	if stats.AvgDaysToSell != nil {
		t.Errorf("Expected absent average for an empty tier, got %v", *stats.AvgDaysToSell)
	}
	if stats.LastSoldDate != nil {
		t.Errorf("Expected absent last sold date for an empty tier, got %v", *stats.LastSoldDate)
	}
}

func TestHistoricalSalesRepository_Count(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewHistoricalSalesRepository(db)
	ctx := context.Background()

	seedSale(t, db, "1HGCV1F31LA012345", "10001", 2020, "Honda", "Accord", 25)
	seedSale(t, db, "1HGCV1F31LA054321", "10002", 2021, "Honda", "Accord", 35)

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 sales, got %d", count)
	}
}
