package api

import (
	"encoding/json"
	"net/http"

	"github.com/cscruggs10/autointel/internal/constants"
	"github.com/cscruggs10/autointel/internal/models"
	"github.com/cscruggs10/autointel/internal/models/dtos"
	"github.com/cscruggs10/autointel/internal/services"
)

// FormatList is the payload for GET /api/v1/formats
type FormatList struct {
	Formats []models.FormatInfo `json:"formats"`
}

// ListFormatsHandler handles GET /api/v1/formats
func ListFormatsHandler(registry *services.FormatRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithSuccess(w, http.StatusOK, &FormatList{Formats: registry.SupportedFormats()})
	}
}

// RegisterFormatHandler handles POST /api/v1/formats: onboards a new
// auction source at runtime without a code change
func RegisterFormatHandler(registry *services.FormatRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req dtos.RegisterFormatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidMapping)
			return
		}

		if err := registry.RegisterAuction(req.AuctionName, req.Mapping); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusCreated, &FormatList{Formats: registry.SupportedFormats()})
	}
}
