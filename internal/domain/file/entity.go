package file

import (
	"time"

	"github.com/google/uuid"
)

// File represents the files table. InternalName is the system-generated
// identifier (`<epoch-ms>_<16 hex>.<ext>`) and never carries user input;
// OriginalName is the sanitized display name the user uploaded under.
type File struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	InternalName string    `gorm:"not null;uniqueIndex;uniqueIndex:idx_files_internal_name_owner"`
	OriginalName string    `gorm:"not null"`
	MimeType     string    `gorm:"not null"`
	SizeBytes    int64     `gorm:"not null;check:size_bytes >= 0"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_files_internal_name_owner"`
	Location     string    `gorm:"not null"`
	UploadedAt   time.Time `gorm:"default:now();index"`
}

func (File) TableName() string {
	return "files"
}

var previewableTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"video/mp4":       {},
	"video/webm":      {},
	"audio/mpeg":      {},
	"audio/wav":       {},
	"application/pdf": {},
}

// Previewable reports whether the file's MIME type may be rendered inline
// by a browser. Download eligibility is independent of this.
func (f File) Previewable() bool {
	_, ok := previewableTypes[f.MimeType]
	return ok
}
