package httpdto

import (
	"time"

	"filevault/internal/domain/file"
	"filevault/internal/filename"
)

// FileDTO represents a stored file in API responses
type FileDTO struct {
	ID           string `json:"id"`
	InternalName string `json:"internal_name"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	SizeBytes    int64  `json:"size_bytes"`
	Location     string `json:"location"`
	UploadedAt   string `json:"uploaded_at"`
}

func FromFile(f file.File) FileDTO {
	return FileDTO{
		ID:           f.ID.String(),
		InternalName: f.InternalName,
		OriginalName: filename.Normalize(f.OriginalName),
		MimeType:     f.MimeType,
		SizeBytes:    f.SizeBytes,
		Location:     f.Location,
		UploadedAt:   f.UploadedAt.Format(time.RFC3339),
	}
}
