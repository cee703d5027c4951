package model

import "time"

// Upload is the audit entry for one processed CSV file: who uploaded it,
// where the raw file was archived, and what the upsert produced.
type Upload struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	Inserted    int       `json:"inserted"`
	Updated     int       `json:"updated"`
	Total       int       `json:"total"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
