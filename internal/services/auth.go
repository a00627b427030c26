package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/stocktrack-api/internal/logger"
	"github.com/sbilibin2017/stocktrack-api/internal/models"
	"github.com/sbilibin2017/stocktrack-api/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the minimum accepted plaintext password length.
const MinPasswordLen = 6

// Error variables
var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrWeakPassword        = errors.New("password must be at least 6 characters")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password: a single error keeps account enumeration impossible.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for accounts.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	ListAll(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations for accounts.
type UserWriter interface {
	Save(ctx context.Context, email, passwordHash, role string) (*models.UserDB, error)
}

// TokenGenerator defines an interface for issuing session tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID int64, email, role string) (string, error)
}

// AuthService handles registration, login and account lookups.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    TokenGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt TokenGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
	}
}

// Register creates a new account with the default USER role and returns it.
func (svc *AuthService) Register(ctx context.Context, email, password string) (*models.UserDB, error) {
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	if len(password) < MinPasswordLen {
		return nil, ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, email, string(hashedPassword), models.RoleUser)
	if errors.Is(err, repositories.ErrUniqueViolation) {
		logger.Log.Errorw("email already exists", "email", email)
		return nil, ErrEmailAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and returns a session token with the
// authenticated account.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserDB, error) {
	if email == "" || password == "" {
		return "", nil, ErrCredentialsRequired
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", nil, err
	}
	if user == nil {
		logger.Log.Errorw("login failed", "email", email)
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("login failed", "email", email)
		return "", nil, ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", nil, err
	}

	return token, user, nil
}

// GetProfile returns the account's public fields.
func (svc *AuthService) GetProfile(ctx context.Context, id int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get profile", "id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListUsers returns every account, newest first. Not gated by role: any
// authenticated caller may list accounts.
func (svc *AuthService) ListUsers(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.reader.ListAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}
