package services

import (
	"testing"

	filevault_errors "filevault/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name    string
		file    StagedFile
		wantErr error
	}{
		{
			name: "valid png",
			file: StagedFile{OriginalName: "a.png", ContentType: "image/png", SizeBytes: 10},
		},
		{
			name: "valid jpeg alternate extension",
			file: StagedFile{OriginalName: "a.JPG", ContentType: "image/jpeg", SizeBytes: 10},
		},
		{
			name:    "disallowed mime type",
			file:    StagedFile{OriginalName: "a.pdf", ContentType: "application/pdf", SizeBytes: 10},
			wantErr: filevault_errors.ErrInvalidInput,
		},
		{
			// Both fields are individually allow-listed but disagree.
			name:    "extension mime mismatch",
			file:    StagedFile{OriginalName: "a.png", ContentType: "image/gif", SizeBytes: 10},
			wantErr: filevault_errors.ErrInvalidInput,
		},
		{
			name:    "missing extension",
			file:    StagedFile{OriginalName: "noext", ContentType: "image/png", SizeBytes: 10},
			wantErr: filevault_errors.ErrInvalidInput,
		},
		{
			name:    "over size ceiling",
			file:    StagedFile{OriginalName: "a.png", ContentType: "image/png", SizeBytes: MaxUploadBytes + 1},
			wantErr: filevault_errors.ErrTooLarge,
		},
		{
			name: "at size ceiling",
			file: StagedFile{OriginalName: "a.png", ContentType: "image/png", SizeBytes: MaxUploadBytes},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.file)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateUploadSizeErrorNamesCeiling(t *testing.T) {
	err := ValidateUpload(StagedFile{OriginalName: "a.png", ContentType: "image/png", SizeBytes: MaxUploadBytes + 1})
	assert.ErrorContains(t, err, "5MiB")
}
