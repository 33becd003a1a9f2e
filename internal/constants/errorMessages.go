package constants

const (
	MsgRunlistNotFound   = "Runlist not found"
	MsgNoFileUploaded    = "No file uploaded"
	MsgInvalidRunlistID  = "Invalid runlist id"
	MsgMissingAuction    = "auction_name is required"
	MsgUploadFailed      = "Unable to ingest runlist"
	MsgMatchingFailed    = "Matching failed"
	MsgInvalidMapping    = "Mapping is missing required fields"
	MsgShareLinkFailed   = "Unable to generate share link"
	MsgShareLinkInvalid  = "Share link is invalid or expired"
	MsgMatchedNoHistory  = "No historical sales for this vehicle"
	MsgVehicleIncomplete = "Vehicle missing year, make or model"
)
