package domain

import "time"

// Document metadata for an uploaded file attached to a process
// (documents table; the blob itself lives in the storage backend)
type Document struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OriginalName string    `gorm:"column:original_name;size:255" json:"original_name"`
	StorageKey   string    `gorm:"column:storage_key;size:255;uniqueIndex" json:"-"`
	ContentType  string    `gorm:"column:content_type;size:100" json:"content_type"`
	SizeBytes    int64     `gorm:"column:size_bytes" json:"size_bytes"`
	UploadedAt   time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`

	ProcessID string   `gorm:"column:process_id;type:uuid;index" json:"process_id"`
	Process   *Process `gorm:"foreignKey:ProcessID" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}

// DocumentResponse represents document metadata in API responses
type DocumentResponse struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	UploadedAt   time.Time `json:"uploaded_at"`
	ProcessID    string    `json:"process_id"`
}

// ToResponse converts Document to DocumentResponse
func (d *Document) ToResponse() *DocumentResponse {
	return &DocumentResponse{
		ID:           d.ID,
		OriginalName: d.OriginalName,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		UploadedAt:   d.UploadedAt,
		ProcessID:    d.ProcessID,
	}
}
