package domain

// StoredFile records a document kept in blob storage. Only the path is
// persisted; the blob itself lives behind the storage interface.
type StoredFile struct {
	ID           string `json:"id"`
	UploadedByID string `json:"uploaded_by_id"`
	Name         string `json:"name"`
	FilePath     string `json:"file_path"`
	UploadDate   string `json:"upload_date"`
}
