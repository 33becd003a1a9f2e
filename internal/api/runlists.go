package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cscruggs10/autointel/internal/auth"
	"github.com/cscruggs10/autointel/internal/constants"
	"github.com/cscruggs10/autointel/internal/db/repositories"
	"github.com/cscruggs10/autointel/internal/logging"
	"github.com/cscruggs10/autointel/internal/models"
	"github.com/cscruggs10/autointel/internal/models/dtos"
	"github.com/cscruggs10/autointel/internal/models/entities"
	gormModels "github.com/cscruggs10/autointel/internal/models/gorm"
	"github.com/cscruggs10/autointel/internal/services"
)

const maxUploadBytes = 32 << 20 // 32 MB

// RunlistDetail is the payload for GET /api/v1/runlists/{id}
type RunlistDetail struct {
	Runlist  gormModels.Runlist        `json:"runlist"`
	Vehicles []entities.RunlistVehicle `json:"vehicles"`
	Stats    dtos.MatchSummary         `json:"stats"`
}

// RunlistList is the payload for GET /api/v1/runlists
type RunlistList struct {
	Runlists []gormModels.Runlist `json:"runlists"`
}

// UploadRunlistHandler handles POST /api/v1/runlists: a multipart CSV
// upload plus auction metadata. Ingestion either succeeds with a match
// summary or fails with an actionable message.
func UploadRunlistHandler(runlistSvc *services.RunlistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgNoFileUploaded)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgNoFileUploaded)
			return
		}
		defer file.Close()

		auctionName := r.FormValue("auction_name")
		if auctionName == "" {
			respondWithError(w, http.StatusBadRequest, constants.MsgMissingAuction)
			return
		}

		name := r.FormValue("name")
		if name == "" {
			name = header.Filename
		}

		var auctionDate *time.Time
		if raw := r.FormValue("auction_date"); raw != "" {
			if parsed, err := time.Parse("2006-01-02", raw); err == nil {
				auctionDate = &parsed
			}
		}

		uploadedBy := "api_user"
		if claims := auth.GetUploaderClaims(r.Context()); claims != nil && claims.UploaderID != "" {
			uploadedBy = claims.UploaderID
		}

		summary, err := runlistSvc.IngestRunlist(r.Context(), &dtos.IngestRequest{
			Name:        name,
			AuctionName: auctionName,
			AuctionDate: auctionDate,
			UploadedBy:  uploadedBy,
			CSV:         file,
		})
		if err != nil {
			var unknownFormat *models.UnknownFormatError
			if errors.As(err, &unknownFormat) {
				// configuration gap, not a transient failure
				respondWithError(w, http.StatusUnprocessableEntity, unknownFormat.Error())
				return
			}
			logging.Error("Runlist ingestion failed", "auction", auctionName, "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, constants.MsgUploadFailed)
			return
		}

		respondWithSuccess(w, http.StatusCreated, summary)
	}
}

// GetRunlistHandler handles GET /api/v1/runlists/{id}
func GetRunlistHandler(runlistRepo *repositories.RunlistRepository, vehicleRepo *repositories.RunlistVehicleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		runlistID := chi.URLParam(r, "id")
		if runlistID == "" {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidRunlistID)
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

// ListRunlistsHandler handles GET /api/v1/runlists
func ListRunlistsHandler(runlistRepo *repositories.RunlistRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		runlists, err := runlistRepo.List(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &RunlistList{Runlists: runlists})
	}
}

// RematchRunlistHandler handles POST /api/v1/runlists/{id}/match: re-runs
// the matching pass against the current historical corpus
func RematchRunlistHandler(runlistSvc *services.RunlistService, runlistRepo *repositories.RunlistRepository) http.HandlerFunc {
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

		summary, err := runlistSvc.RunMatching(r.Context(), runlistID)
		if err != nil {
			logging.Error("Matching pass failed", "runlist_id", runlistID, "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, constants.MsgMatchingFailed)
			return
		}

		respondWithSuccess(w, http.StatusOK, summary)
	}
}
