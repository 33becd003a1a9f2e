package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cscruggs10/autointel/internal/common"
	"github.com/cscruggs10/autointel/internal/constants"
	"github.com/cscruggs10/autointel/internal/db/repositories"
	"github.com/cscruggs10/autointel/internal/models/dtos"
)

const shareLinkTTL = 24 * time.Hour

// ShareRunlistHandler handles POST /api/v1/runlists/{id}/share: issues a
// single-use presigned link to a runlist report
func ShareRunlistHandler(signer *common.URLSignerService, runlistRepo *repositories.RunlistRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		runlistID := chi.URLParam(r, "id")

		runlist, err := runlistRepo.GetByID(r.Context(), runlistID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if runlist == nil {
			respondWithError(w, http.StatusNotFound, constants.MsgRunlistNotFound)
			return
		}

		token, err := signer.GenerateRunlistLink(runlistID, shareLinkTTL)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.MsgShareLinkFailed)
			return
		}

		link := dtos.ShareLink{
			Token:     token,
			ExpiresAt: time.Now().Add(shareLinkTTL),
		}
		respondWithSuccess(w, http.StatusOK, &link)
	}
}

// SharedRunlistHandler handles GET /public/runlist?token=...: validates
// and consumes a presigned link, then serves the runlist report
func SharedRunlistHandler(signer *common.URLSignerService, runlistRepo *repositories.RunlistRepository, vehicleRepo *repositories.RunlistVehicleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		token := r.URL.Query().Get("token")
		if token == "" {
			respondWithError(w, http.StatusBadRequest, constants.MsgShareLinkInvalid)
			return
		}

		runlistID, err := signer.ValidateRunlistLink(token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, constants.MsgShareLinkInvalid)
			return
		}

		runlist, err := runlistRepo.GetByID(r.Context(), runlistID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if runlist == nil {
			respondWithError(w, http.StatusNotFound, constants.MsgRunlistNotFound)
			return
		}

		vehicles, err := vehicleRepo.ListByRunlistID(r.Context(), runlistID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		matched := 0
		for i := range vehicles {
			if vehicles[i].Matched {
				matched++
			}
		}

		detail := RunlistDetail{
			Runlist:  *runlist,
			Vehicles: vehicles,
			Stats: dtos.MatchSummary{
				Total:     len(vehicles),
				Matched:   matched,
				Unmatched: len(vehicles) - matched,
			},
		}
		respondWithSuccess(w, http.StatusOK, &detail)
	}
}
