package entities

type ApiKey struct {
	ApiKey     string `db:"api_key"`
	Status     bool   `db:"status"`
	UploaderID string `db:"uploader_id"`
}
