package services

import (
	"context"
	"fmt"
	"time"

	"filevault/internal/domain/file"
	"filevault/internal/filename"
	"filevault/internal/repository"
	"filevault/internal/storage"
	filevault_errors "filevault/pkg/errors"
	"filevault/pkg/logger"

	"github.com/google/uuid"
)

// FileService coordinates the file lifecycle across the object store and
// the metadata store. The two cannot share a transaction: uploads write
// bytes first so a metadata record never points at nothing, and deletes
// remove bytes first so the system never forgets a file that still exists.
type FileService struct {
	repo  repository.FileRepository
	store ObjectStore
	log   *logger.Logger
}

func NewFileService(repo repository.FileRepository, store ObjectStore, log *logger.Logger) *FileService {
	return &FileService{repo: repo, store: store, log: log}
}

// Upload validates the staged file, writes its bytes to the object store
// and creates the metadata record. If the metadata write fails after the
// object-store write succeeded, the stored object is left orphaned: no
// compensating delete is attempted, the orphan is logged for offline
// cleanup instead.
func (s *FileService) Upload(ctx context.Context, ownerID uuid.UUID, staged StagedFile) (file.File, error) {
	if ownerID == uuid.Nil {
		return file.File{}, fmt.Errorf("%w: owner is required", filevault_errors.ErrInvalidInput)
	}
	if err := ValidateUpload(staged); err != nil {
		return file.File{}, err
	}

	internalName := filename.GenerateInternalName(staged.OriginalName)

	location, err := s.store.Put(ctx, staged.Data, staged.ContentType, internalName)
	if err != nil {
		return file.File{}, fmt.Errorf("%w: %v", filevault_errors.ErrStorage, err)
	}

	rec := file.File{
		ID:           uuid.New(),
		InternalName: internalName,
		OriginalName: filename.SanitizeOriginalName(staged.OriginalName),
		MimeType:     staged.ContentType,
		SizeBytes:    staged.SizeBytes,
		OwnerID:      ownerID,
		Location:     location,
		UploadedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, &rec); err != nil {
		if s.log != nil {
			s.log.WarnfCtx(ctx, "orphaned object %q after metadata create failure: %s", internalName, err)
		}
		return file.File{}, err
	}

	return rec, nil
}

// Download resolves a file by internal name for redirecting the caller to
// its stored location.
func (s *FileService) Download(ctx context.Context, internalName string) (file.File, error) {
	rec, err := s.repo.GetByInternalName(ctx, internalName)
	if err != nil {
		return file.File{}, err
	}
	rec.OriginalName = filename.Normalize(rec.OriginalName)
	return rec, nil
}

// View is Download restricted to MIME types browsers can render inline.
func (s *FileService) View(ctx context.Context, internalName string) (file.File, error) {
	rec, err := s.Download(ctx, internalName)
	if err != nil {
		return file.File{}, err
	}
	if !rec.Previewable() {
		return file.File{}, filevault_errors.ErrNotPreviewable
	}
	return rec, nil
}

// Delete removes a file owned by requesterID. The object-store delete runs
// first: if it fails the metadata record is kept and the operation fails.
func (s *FileService) Delete(ctx context.Context, requesterID uuid.UUID, id uuid.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.OwnerID != requesterID {
		return filevault_errors.ErrForbidden
	}

	key := storage.KeyFromLocation(rec.Location)
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %v", filevault_errors.ErrStorage, err)
	}

	return s.repo.Delete(ctx, id)
}
