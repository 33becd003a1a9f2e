package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cscruggs10/autointel/internal/constants"
	"github.com/cscruggs10/autointel/internal/models/entities"
)

// MatchOutcome is the projection of a match result onto one
// runlist_vehicles row
type MatchOutcome struct {
	Matched       bool
	MatchCount    int
	MatchStrength *string
	MatchType     *string
	AvgDaysToSell *float64
	LastSoldDate  *time.Time
}

type RunlistVehicleRepository struct {
	db *sqlx.DB
}

func NewRunlistVehicleRepository(db *sqlx.DB) *RunlistVehicleRepository {
	return &RunlistVehicleRepository{db}
}

// Insert stores one vehicle and fills in its generated ID
func (r *RunlistVehicleRepository) Insert(ctx context.Context, vehicle *entities.RunlistVehicle) error {
	rows, err := r.db.NamedQueryContext(ctx, constants.InsertRunlistVehicle, vehicle)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&vehicle.ID); err != nil {
			return err
		}
	}
	return rows.Err()
}

// ListByRunlistID returns every vehicle in the runlist
func (r *RunlistVehicleRepository) ListByRunlistID(ctx context.Context, runlistID string) ([]entities.RunlistVehicle, error) {
	var vehicles []entities.RunlistVehicle

	if err := r.db.SelectContext(ctx, &vehicles, constants.GetVehiclesByRunlistID, runlistID); err != nil {
		return nil, err
	}

	return vehicles, nil
}

// UpdateMatchOutcome overwrites the match fields of one vehicle row.
// Re-running a matching pass writes the same fields again rather than
// accumulating.
func (r *RunlistVehicleRepository) UpdateMatchOutcome(ctx context.Context, vehicleID string, outcome MatchOutcome) error {
	_, err := r.db.ExecContext(ctx, constants.UpdateVehicleMatchOutcome,
		outcome.Matched,
		outcome.MatchCount,
		outcome.MatchStrength,
		outcome.MatchType,
		outcome.AvgDaysToSell,
		outcome.LastSoldDate,
		vehicleID,
	)
	return err
}
