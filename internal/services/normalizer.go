package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cscruggs10/autointel/internal/constants"
	"github.com/cscruggs10/autointel/internal/models"
	"github.com/cscruggs10/autointel/internal/models/entities"
)

// ErrInvalidVIN marks a row whose VIN is missing or too short to be
// real. Callers drop the row and count it; no other field failure drops
// a row.
var ErrInvalidVIN = errors.New("missing or invalid VIN")

// NormalizerService converts one raw CSV row into a canonical Vehicle
// using an auction's column mapping. Field-level parse failures degrade
// to an absent field; only the VIN rule rejects the row.
type NormalizerService struct{}

func NewNormalizerService() *NormalizerService {
	return &NormalizerService{}
}

// NormalizeRow builds a Vehicle from a header-keyed row. Returns
// ErrInvalidVIN when the trimmed VIN is shorter than 10 characters.
func (s *NormalizerService) NormalizeRow(row map[string]string, mapping *models.Mapping) (*entities.Vehicle, error) {

	vin := strings.TrimSpace(row[mapping.VIN])
	if len(vin) < constants.MinVINLength {
		return nil, ErrInvalidVIN
	}

	vehicle := &entities.Vehicle{
		VIN:           vin,
		Year:          parseOptionalInt(rawField(row, mapping.Year)),
		Make:          trimmedField(row, mapping.Make),
		Model:         trimmedField(row, mapping.Model),
		Style:         trimmedField(row, mapping.Style),
		Mileage:       parseMileage(rawField(row, mapping.Mileage)),
		Lane:          trimmedField(row, mapping.Lane),
		Lot:           trimmedField(row, mapping.Lot),
		RunNumber:     trimmedField(row, mapping.RunNumber),
		StockNumber:   trimmedField(row, mapping.StockNumber),
		ExteriorColor: trimmedField(row, mapping.ExteriorColor),
		InteriorColor: trimmedField(row, mapping.InteriorColor),
		Grade:         parseOptionalFloat(rawField(row, mapping.Grade)),
		MMRValue:      parseMoney(rawField(row, mapping.MMRValue)),
	}

	// Auction systems export this flag as the literal string TRUE;
	// anything else means no condition report
	if mapping.HasConditionReport != "" {
		vehicle.HasConditionReport = row[mapping.HasConditionReport] == "TRUE"
	}

	if mapping.LaneRun != "" {
		lane, lot := splitLaneRun(row[mapping.LaneRun])
		if lane != nil {
			vehicle.Lane = lane
		}
		if lot != nil {
			vehicle.Lot = lot
		}
	}

	return vehicle, nil
}

// rawField reads an unmapped column as "" so every parser below treats
// it as absent
func rawField(row map[string]string, column string) string {
	if column == "" {
		return ""
	}
	return row[column]
}

func trimmedField(row map[string]string, column string) *string {
	if column == "" {
		return nil
	}
	val := strings.TrimSpace(row[column])
	if val == "" {
		return nil
	}
	return &val
}

func parseOptionalInt(raw string) *int {
	val, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &val
}

// parseMileage treats readings at or above the auction "not recorded"
// sentinel as absent
func parseMileage(raw string) *int {
	val := parseOptionalInt(raw)
	if val == nil || *val >= constants.MileageNotRecorded {
		return nil
	}
	return val
}

func parseOptionalFloat(raw string) *float64 {
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &val
}

// parseMoney strips currency symbols, thousands separators and stray
// quotes before parsing
func parseMoney(raw string) *float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", `"`, "").Replace(raw)
	return parseOptionalFloat(cleaned)
}

// splitLaneRun splits a combined "lane-lot" column like "1-41" on the
// first hyphen. A value without a hyphen is a lot/run number only.
func splitLaneRun(raw string) (*string, *string) {
	combined := strings.TrimSpace(raw)
	if combined == "" {
		return nil, nil
	}

	if lane, lot, found := strings.Cut(combined, "-"); found {
		lane = strings.TrimSpace(lane)
		lot = strings.TrimSpace(lot)
		var lanePtr, lotPtr *string
		if lane != "" {
			lanePtr = &lane
		}
		if lot != "" {
			lotPtr = &lot
		}
		return lanePtr, lotPtr
	}

	return nil, &combined
}
