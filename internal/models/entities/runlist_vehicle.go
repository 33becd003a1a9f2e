package entities

import "time"

// RunlistVehicle is a canonical vehicle bound to a runlist plus its
// mutable match outcome. Match fields are overwritten wholesale on every
// matching pass.
type RunlistVehicle struct {
	ID                 string     `db:"id" json:"id"`
	RunlistID          string     `db:"runlist_id" json:"runlist_id"`
	VIN                string     `db:"vin" json:"vin"`
	Year               *int       `db:"year" json:"year,omitempty"`
	Make               *string    `db:"make" json:"make,omitempty"`
	Model              *string    `db:"model" json:"model,omitempty"`
	Style              *string    `db:"style" json:"style,omitempty"`
	Mileage            *int       `db:"mileage" json:"mileage,omitempty"`
	Lane               *string    `db:"lane" json:"lane,omitempty"`
	Lot                *string    `db:"lot" json:"lot,omitempty"`
	RunNumber          *string    `db:"run_number" json:"run_number,omitempty"`
	StockNumber        *string    `db:"stock_number" json:"stock_number,omitempty"`
	ExteriorColor      *string    `db:"exterior_color" json:"exterior_color,omitempty"`
	InteriorColor      *string    `db:"interior_color" json:"interior_color,omitempty"`
	HasConditionReport bool       `db:"has_condition_report" json:"has_condition_report"`
	Grade              *float64   `db:"grade" json:"grade,omitempty"`
	MMRValue           *float64   `db:"mmr_value" json:"mmr_value,omitempty"`
	Matched            bool       `db:"matched" json:"matched"`
	MatchCount         int        `db:"match_count" json:"match_count"`
	MatchStrength      *string    `db:"match_strength" json:"match_strength,omitempty"`
	MatchType          *string    `db:"match_type" json:"match_type,omitempty"`
	AvgDaysToSell      *float64   `db:"avg_days_to_sell" json:"avg_days_to_sell,omitempty"`
	LastSoldDate       *time.Time `db:"last_sold_date" json:"last_sold_date,omitempty"`
	NeedsScraping      bool       `db:"needs_scraping" json:"needs_scraping"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}
