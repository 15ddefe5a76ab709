package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"filevault/internal/filename"
	"filevault/internal/services"
	"filevault/internal/transport/httpdto"
	filevault_errors "filevault/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FileHandler struct {
	service *services.FileService
}

func NewFileHandler(service *services.FileService) *FileHandler {
	return &FileHandler{service: service}
}

func (h *FileHandler) Upload(c *gin.Context) {
	requesterID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	staged, err := stageSingleFile(c, "file")
	if err != nil {
		respondError(c, err)
		return
	}

	rec, err := h.service.Upload(c.Request.Context(), requesterID, staged)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromFile(rec)))
}

func (h *FileHandler) Download(c *gin.Context) {
	rec, err := h.service.Download(c.Request.Context(), c.Param("internalName"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", filename.BuildContentDisposition(displayName(rec.OriginalName, rec.InternalName), "attachment"))
	c.Redirect(http.StatusFound, rec.Location)
}

func (h *FileHandler) View(c *gin.Context) {
	rec, err := h.service.View(c.Request.Context(), c.Param("internalName"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", filename.BuildContentDisposition(displayName(rec.OriginalName, rec.InternalName), "inline"))
	c.Redirect(http.StatusFound, rec.Location)
}

func (h *FileHandler) Delete(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid file id", "INVALID_REQUEST"))
		return
	}

	requesterID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), requesterID, fileID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// stageSingleFile reads exactly one multipart file from the named form
// field into memory. More than one file fails the request; the body is
// read no further than one byte past the size ceiling so the validator can
// reject oversized uploads by size.
func stageSingleFile(c *gin.Context, field string) (services.StagedFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return services.StagedFile{}, fmt.Errorf("%w: no file provided", filevault_errors.ErrInvalidInput)
	}

	files := form.File[field]
	if len(files) == 0 {
		return services.StagedFile{}, fmt.Errorf("%w: no file provided", filevault_errors.ErrInvalidInput)
	}

	// The one-file limit spans the whole request, so a second file smuggled
	// in under another field name is rejected too.
	total := 0
	for _, fieldFiles := range form.File {
		total += len(fieldFiles)
	}
	if total > 1 {
		return services.StagedFile{}, fmt.Errorf("%w: exactly one file per request", filevault_errors.ErrInvalidInput)
	}

	return readStagedFile(files[0])
}

func readStagedFile(fh *multipart.FileHeader) (services.StagedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return services.StagedFile{}, fmt.Errorf("%w: unreadable file", filevault_errors.ErrInvalidInput)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, services.MaxUploadBytes+1))
	if err != nil {
		return services.StagedFile{}, fmt.Errorf("%w: unreadable file", filevault_errors.ErrInvalidInput)
	}

	return services.StagedFile{
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		SizeBytes:    int64(len(data)),
		Data:         data,
	}, nil
}

func displayName(originalName, internalName string) string {
	if originalName != "" {
		return originalName
	}
	return internalName
}
