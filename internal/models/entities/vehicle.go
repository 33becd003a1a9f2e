package entities

// Vehicle is the canonical post-normalization view of a runlist row.
// Optional fields are pointers; nil means the auction export did not
// carry a usable value. A Vehicle is never mutated after the normalizer
// returns it.
type Vehicle struct {
	VIN                string
	Year               *int
	Make               *string
	Model              *string
	Style              *string
	Mileage            *int
	Lane               *string
	Lot                *string
	RunNumber          *string
	StockNumber        *string
	ExteriorColor      *string
	InteriorColor      *string
	HasConditionReport bool
	Grade              *float64
	MMRValue           *float64
}
