package dtos

import (
	"io"
	"time"

	"github.com/cscruggs10/autointel/internal/models"
)

// IngestRequest carries everything the orchestrator needs to ingest one
// runlist CSV
type IngestRequest struct {
	Name        string
	AuctionName string
	AuctionDate *time.Time
	UploadedBy  string
	CSV         io.Reader
}

// RegisterFormatRequest registers a per-auction mapping at runtime
type RegisterFormatRequest struct {
	AuctionName string         `json:"auction_name"`
	Mapping     models.Mapping `json:"mapping"`
}
