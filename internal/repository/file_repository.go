package repository

import (
	"context"
	"errors"

	"filevault/internal/domain/file"
	filevault_errors "filevault/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresFileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &PostgresFileRepository{db: db}
}

func (r *PostgresFileRepository) Create(ctx context.Context, f *file.File) error {
	res := r.db.WithContext(ctx).Create(f)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return filevault_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresFileRepository) GetByInternalName(ctx context.Context, internalName string) (file.File, error) {
	var f file.File
	err := r.db.WithContext(ctx).Where("internal_name = ?", internalName).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return file.File{}, filevault_errors.ErrNotFound
		}
		return file.File{}, err
	}
	return f, nil
}

func (r *PostgresFileRepository) GetByID(ctx context.Context, id uuid.UUID) (file.File, error) {
	var f file.File
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return file.File{}, filevault_errors.ErrNotFound
		}
		return file.File{}, err
	}
	return f, nil
}

func (r *PostgresFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&file.File{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return filevault_errors.ErrNotFound
	}
	return nil
}
