package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/cscruggs10/autointel/internal/constants"
	"github.com/cscruggs10/autointel/internal/models/entities"
)

type HistoricalSalesRepository struct {
	db *sqlx.DB
}

func NewHistoricalSalesRepository(db *sqlx.DB) *HistoricalSalesRepository {
	return &HistoricalSalesRepository{db}
}

// Upsert inserts a sale or replaces the existing row with the same
// (vin, stock_nbr) key. Returns true when a new row was inserted, false
// when an existing row was updated.
func (r *HistoricalSalesRepository) Upsert(ctx context.Context, sale *entities.HistoricalSale) (bool, error) {
	rows, err := r.db.NamedQueryContext(ctx, constants.UpsertHistoricalSale, sale)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	inserted := false
	if rows.Next() {
		if err := rows.Scan(&inserted); err != nil {
			return false, err
		}
	}
	return inserted, rows.Err()
}

// StatsByVIN aggregates historical sales with the identical VIN
func (r *HistoricalSalesRepository) StatsByVIN(ctx context.Context, vin string) (*entities.TierStats, error) {
	var stats entities.TierStats
	if err := r.db.QueryRowxContext(ctx, constants.StatsByVIN, vin).StructScan(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// StatsByYearMakeModel aggregates exact year + make + model hits
func (r *HistoricalSalesRepository) StatsByYearMakeModel(ctx context.Context, year int, make, model string) (*entities.TierStats, error) {
	var stats entities.TierStats
	if err := r.db.QueryRowxContext(ctx, constants.StatsByYearMakeModel, year, make, model).StructScan(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// StatsByYearWindow aggregates make + model hits with year within
// ±window of the target, inclusive
func (r *HistoricalSalesRepository) StatsByYearWindow(ctx context.Context, year, window int, make, model string) (*entities.TierStats, error) {
	var stats entities.TierStats
	if err := r.db.QueryRowxContext(ctx, constants.StatsByYearWindow, year, window, make, model).StructScan(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// StatsByMakeModel aggregates make + model hits across all years
func (r *HistoricalSalesRepository) StatsByMakeModel(ctx context.Context, make, model string) (*entities.TierStats, error) {
	var stats entities.TierStats
	if err := r.db.QueryRowxContext(ctx, constants.StatsByMakeModel, make, model).StructScan(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Count returns the size of the historical corpus
func (r *HistoricalSalesRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, constants.CountHistoricalSales); err != nil {
		return 0, err
	}
	return count, nil
}
