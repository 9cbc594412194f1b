package models

import "time"

// UploadedDocument is the transient local copy of one received file.
// It belongs to a single request and is removed when that request ends.
type UploadedDocument struct {
	OriginalFileName string    `json:"original_filename"`
	StoredFileName   string    `json:"stored_filename"`
	FilePath         string    `json:"file_path"`
	Size             int64     `json:"size"`
	ContentType      string    `json:"content_type"`
	ReceivedAt       time.Time `json:"received_at"`
}

const ResourceKindRaw = "raw"

// StoredBlob references the durable remote copy of an UploadedDocument.
type StoredBlob struct {
	URL          string `json:"url"`
	PublicID     string `json:"public_id"`
	Folder       string `json:"folder"`
	ResourceKind string `json:"resource_kind"`
	Bytes        int64  `json:"bytes"`
}
