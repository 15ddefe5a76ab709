package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"filevault/config"
	"filevault/internal/domain/user"
	"filevault/internal/repository"
	filevault_errors "filevault/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies access tokens. The lifecycle services
// never touch credentials; they only consume the verified user id the auth
// middleware places on the request context.
type AuthService struct {
	userRepo  repository.UserRepository
	cipher    *EmailCipher
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cipher *EmailCipher, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		cipher:    cipher,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	User        UserInfo `json:"user"`
}

type UserInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profile_image,omitempty"`
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (UserInfo, error) {
	if err := validateRegister(in); err != nil {
		return UserInfo{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return UserInfo{}, fmt.Errorf("%w: email already registered", filevault_errors.ErrAlreadyExists)
	} else if !errors.Is(err, filevault_errors.ErrNotFound) {
		return UserInfo{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserInfo{}, err
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		LastActiveAt: time.Now(),
	}

	if s.cipher != nil {
		// Encryption failure degrades to an empty shadow field rather
		// than blocking registration.
		if encrypted, err := s.cipher.Encrypt(email); err == nil {
			newUser.EncryptedEmail = sql.NullString{String: encrypted, Valid: true}
		}
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return UserInfo{}, err
	}

	return FromUser(*newUser), nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, filevault_errors.ErrNotFound) {
			return AuthResponse{}, filevault_errors.ErrUnauthorized
		}
		return AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return AuthResponse{}, filevault_errors.ErrUnauthorized
	}

	now := time.Now()
	claims := AccessClaims{
		UserID: u.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User:        FromUser(u),
	}, nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, filevault_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, filevault_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, filevault_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, filevault_errors.ErrUnauthorized
	}

	return *claims, nil
}

func validateRegister(in RegisterInput) error {
	if len([]rune(strings.TrimSpace(in.Name))) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", filevault_errors.ErrInvalidInput)
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		return fmt.Errorf("%w: invalid email address", filevault_errors.ErrInvalidInput)
	}
	if len(in.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", filevault_errors.ErrInvalidInput)
	}
	return nil
}

func FromUser(u user.User) UserInfo {
	info := UserInfo{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
	if u.ProfileImage.Valid {
		info.ProfileImage = u.ProfileImage.String
	}
	return info
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, filevault_errors.ErrInvalidInput), errors.Is(err, filevault_errors.ErrTooLarge):
		return 400
	case errors.Is(err, filevault_errors.ErrUnauthorized):
		return 401
	case errors.Is(err, filevault_errors.ErrForbidden):
		return 403
	case errors.Is(err, filevault_errors.ErrNotFound):
		return 404
	case errors.Is(err, filevault_errors.ErrAlreadyExists), errors.Is(err, filevault_errors.ErrConflict):
		return 409
	case errors.Is(err, filevault_errors.ErrNotPreviewable):
		return 415
	case errors.Is(err, filevault_errors.ErrRateLimited):
		return 429
	default:
		return 500
	}
}

// ErrorCode maps an error to the machine-checkable category carried in
// error responses.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, filevault_errors.ErrInvalidInput):
		return "INVALID_REQUEST"
	case errors.Is(err, filevault_errors.ErrTooLarge):
		return "FILE_TOO_LARGE"
	case errors.Is(err, filevault_errors.ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, filevault_errors.ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, filevault_errors.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, filevault_errors.ErrAlreadyExists), errors.Is(err, filevault_errors.ErrConflict):
		return "CONFLICT"
	case errors.Is(err, filevault_errors.ErrNotPreviewable):
		return "NOT_PREVIEWABLE"
	case errors.Is(err, filevault_errors.ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, filevault_errors.ErrStorage):
		return "STORAGE_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}

type ctxKey string

var userIDKey ctxKey = "user_id"

func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
