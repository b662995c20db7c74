package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// minPasswordLen is the minimum accepted password length at registration.
const minPasswordLen = 3

// syntheticEmailDomain is appended to the username to form a placeholder
// contact address. No mail is ever delivered to it.
const syntheticEmailDomain = "@example.local"

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, name, email, passwordHash string) (uuid.UUID, error)
}

// TokenIssuer defines the token operations the auth service depends on.
type TokenIssuer interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Revoke(ctx context.Context, tokenString string) error
}

// AuthService handles registration, login, and logout.
type AuthService struct {
	reader UserReader
	writer UserWriter
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		tokens: tokens,
	}
}

// Register creates a new user and returns its id.
// The display name and a placeholder contact address are derived from the
// username; only a bcrypt hash of the password is stored.
func (svc *AuthService) Register(ctx context.Context, username, password string) (uuid.UUID, error) {
	if username == "" || len(password) < minPasswordLen {
		return uuid.Nil, ErrInvalidInput
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return uuid.Nil, err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", username)
		return uuid.Nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return uuid.Nil, err
	}

	userID, err := svc.writer.Save(ctx, username, username, username+syntheticEmailDomain, string(hashedPassword))
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return uuid.Nil, err
	}

	return userID, nil
}

// Login authenticates a user and returns a freshly issued bearer token.
// Unknown username and wrong password are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	tokenString, err := svc.tokens.Issue(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to issue token", "err", err)
		return "", err
	}

	return tokenString, nil
}

// Logout revokes the token the request was authenticated with.
func (svc *AuthService) Logout(ctx context.Context, tokenString string) error {
	if err := svc.tokens.Revoke(ctx, tokenString); err != nil {
		logger.Log.Errorw("failed to revoke token", "err", err)
		return err
	}
	return nil
}

// GetUser returns the user with the given id.
func (svc *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
