package services

import (
	"fmt"
	"path"
	"strings"

	filevault_errors "filevault/pkg/errors"
)

// StagedFile is an upload held fully in memory, before any I/O.
type StagedFile struct {
	OriginalName string
	ContentType  string
	SizeBytes    int64
	Data         []byte
}

// Current policy accepts images only. The extension list per MIME type
// guards against extension/MIME mismatch spoofing: both the declared type
// and the declared name's extension must agree.
var allowedUploadTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
	"image/webp": {".webp"},
}

// MaxUploadBytes is the upload size ceiling.
const MaxUploadBytes = 5 << 20 // 5 MiB

// ValidateUpload checks a staged file against the MIME/extension allow-list
// and the size ceiling. Pure validation: no I/O, no mutation.
func ValidateUpload(f StagedFile) error {
	exts, ok := allowedUploadTypes[f.ContentType]
	if !ok {
		return fmt.Errorf("%w: content type %q is not allowed", filevault_errors.ErrInvalidInput, f.ContentType)
	}

	ext := strings.ToLower(path.Ext(f.OriginalName))
	matched := false
	for _, allowed := range exts {
		if ext == allowed {
			matched = true
			break
		}
	}
	if !matched {
		return fmt.Errorf("%w: extension %q does not match content type %q", filevault_errors.ErrInvalidInput, ext, f.ContentType)
	}

	if f.SizeBytes > MaxUploadBytes {
		return fmt.Errorf("%w: file size exceeds %dMiB", filevault_errors.ErrTooLarge, MaxUploadBytes>>20)
	}
	if f.SizeBytes < 0 {
		return fmt.Errorf("%w: negative file size", filevault_errors.ErrInvalidInput)
	}

	return nil
}
