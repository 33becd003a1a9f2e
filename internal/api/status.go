package api

import (
	"net/http"

	"github.com/cscruggs10/autointel/internal/db/repositories"
	"github.com/cscruggs10/autointel/internal/models/dtos"
)

// StatusHandler handles GET /api/v1/status: corpus and runlist counts
func StatusHandler(salesRepo *repositories.HistoricalSalesRepository, runlistRepo *repositories.RunlistRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		salesCount, err := salesRepo.Count(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		runlistCount, err := runlistRepo.Count(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		status := dtos.SystemStatus{
			HistoricalSales: salesCount,
			Runlists:        int(runlistCount),
		}
		respondWithSuccess(w, http.StatusOK, &status)
	}
}
