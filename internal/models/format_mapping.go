package models

import (
	"fmt"
	"strings"
)

// Mapping associates canonical vehicle fields with an auction's raw CSV
// column headers. An empty string means the auction's export does not
// carry that field.
type Mapping struct {
	VIN                string `json:"vin"`
	Year               string `json:"year"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Style              string `json:"style,omitempty"`
	Mileage            string `json:"mileage,omitempty"`
	Lane               string `json:"lane,omitempty"`
	Lot                string `json:"lot,omitempty"`
	LaneRun            string `json:"lane_run,omitempty"` // combined "lane-lot" column, e.g. "1-41"
	RunNumber          string `json:"run_number,omitempty"`
	StockNumber        string `json:"stock_number,omitempty"`
	ExteriorColor      string `json:"exterior_color,omitempty"`
	InteriorColor      string `json:"interior_color,omitempty"`
	HasConditionReport string `json:"has_condition_report,omitempty"`
	Grade              string `json:"grade,omitempty"`
	MMRValue           string `json:"mmr_value,omitempty"`
}

// Validate checks the mapping carries every required canonical field
func (m *Mapping) Validate() error {
	var missing []string
	if m.VIN == "" {
		missing = append(missing, "vin")
	}
	if m.Year == "" {
		missing = append(missing, "year")
	}
	if m.Make == "" {
		missing = append(missing, "make")
	}
	if m.Model == "" {
		missing = append(missing, "model")
	}
	if len(missing) > 0 {
		return fmt.Errorf("mapping missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// FormatGroup covers many auction locations that share one export layout.
// Membership is keyword containment against the auction name,
// case-insensitive. Groups are evaluated in registration order.
type FormatGroup struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Mapping     Mapping  `json:"mapping"`
}

// Matches reports whether the auction name belongs to this group
func (g *FormatGroup) Matches(auctionName string) bool {
	lowered := strings.ToLower(auctionName)
	for _, kw := range g.Keywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// FormatInfo is the API-facing description of a registered format
type FormatInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"` // "group" or "auction"
	Description string `json:"description,omitempty"`
}

// UnknownFormatError means no mapping or group covers the auction name.
// This is a configuration gap, not a transient failure, and must not be
// retried.
type UnknownFormatError struct {
	AuctionName string
	Supported   []string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("no column mapping registered for auction %q; supported formats: %s",
		e.AuctionName, strings.Join(e.Supported, ", "))
}
