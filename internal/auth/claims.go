package auth

// UploaderClaims identifies the caller behind an API key. The uploader
// name is stamped onto runlists created during the request.
type UploaderClaims struct {
	ApiKey     string
	UploaderID string
}
