package repository

import (
	"context"

	"github.com/google/uuid"

	"filevault/internal/domain/file"
	"filevault/internal/domain/user"
)

type FileRepository interface {
	Create(ctx context.Context, f *file.File) error
	GetByInternalName(ctx context.Context, internalName string) (file.File, error)
	GetByID(ctx context.Context, id uuid.UUID) (file.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Update(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
