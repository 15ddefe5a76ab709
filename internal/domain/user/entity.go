package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents the users table. EncryptedEmail is a shadow copy of Email
// (AES-256-CBC, `iv-hex:cipher-hex`), unique where present. ProfileImage
// holds the object-store URL of the user's avatar, or NULL.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name           string         `gorm:"not null"`
	Email          string         `gorm:"not null;uniqueIndex"`
	EncryptedEmail sql.NullString `gorm:"uniqueIndex"`
	PasswordHash   string         `gorm:"not null"`
	ProfileImage   sql.NullString
	CreatedAt      time.Time `gorm:"default:now();index"`
	LastActiveAt   time.Time `gorm:"default:now();index"`
}

func (User) TableName() string {
	return "users"
}
