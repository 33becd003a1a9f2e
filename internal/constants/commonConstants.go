package constants

// APIStatus is the top-level status string in API responses
type APIStatus string

const (
	APIStatusSuccess APIStatus = "success"
	APIStatusError   APIStatus = "error"
)

// RunlistStatus tracks a runlist through the ingestion pipeline
type RunlistStatus string

const (
	RunlistStatusUploaded   RunlistStatus = "uploaded"
	RunlistStatusProcessing RunlistStatus = "processing"
	RunlistStatusMatched    RunlistStatus = "matched"
	// written by the external condition scraper once it has worked
	// through the runlist's flagged vehicles
	RunlistStatusScraped RunlistStatus = "scraped"
)

// MatchStrength classifies how a vehicle matched the historical corpus.
// Ordered strongest to weakest; the match engine stops at the first tier
// that returns a hit.
type MatchStrength string

const (
	MatchStrengthExact    MatchStrength = "exact"
	MatchStrengthStrong   MatchStrength = "strong"
	MatchStrengthModerate MatchStrength = "moderate"
	MatchStrengthWeak     MatchStrength = "weak"
	MatchStrengthNone     MatchStrength = "none"
)

// MatchType names the tier that produced a match
const (
	MatchTypeExactVIN      = "exact_vin"
	MatchTypeYearMakeModel = "year_make_model"
	MatchTypeYearWindow    = "year_window"
	MatchTypeMakeModel     = "make_model"
	MatchTypeNone          = "no_match"
)

// Mileage readings at or above this are the auction systems' "not recorded"
// sentinel and are normalized to absent.
const MileageNotRecorded = 999990

// MinVINLength is the shortest VIN accepted from a runlist row
const MinVINLength = 10
