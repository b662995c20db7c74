package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
	"github.com/sbilibin2017/gw-todo-list/internal/services"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens)

	newUserID := uuid.New()

	tests := []struct {
		name         string
		username     string
		password     string
		existingUser *models.UserDB
		readerErr    error
		writerErr    error
		wantErr      error
		skipRepos    bool
	}{
		{
			name:     "successful registration",
			username: "alice",
			password: "secret",
		},
		{
			name:      "empty username",
			username:  "",
			password:  "secret",
			wantErr:   services.ErrInvalidInput,
			skipRepos: true,
		},
		{
			name:      "password too short",
			username:  "bob",
			password:  "ab",
			wantErr:   services.ErrInvalidInput,
			skipRepos: true,
		},
		{
			name:         "user already exists",
			username:     "bob",
			password:     "secret",
			existingUser: &models.UserDB{UserID: uuid.New()},
			wantErr:      services.ErrUserAlreadyExists,
		},
		{
			name:      "reader error",
			username:  "eve",
			password:  "secret",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "writer error",
			username:  "carol",
			password:  "secret",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.skipRepos {
				mockReader.EXPECT().
					GetByUsername(gomock.Any(), tt.username).
					Return(tt.existingUser, tt.readerErr)

				if tt.existingUser == nil && tt.readerErr == nil {
					mockWriter.EXPECT().
						Save(gomock.Any(), tt.username, tt.username, tt.username+"@example.local", gomock.Any()).
						DoAndReturn(func(_ context.Context, _, _, _, passwordHash string) (uuid.UUID, error) {
							if tt.writerErr != nil {
								return uuid.Nil, tt.writerErr
							}
							// The stored hash must verify against the plaintext and never equal it
							assert.NotEqual(t, tt.password, passwordHash)
							assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(tt.password)))
							return newUserID, nil
						})
				}
			}

			userID, err := svc.Register(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Equal(t, uuid.Nil, userID)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, newUserID, userID)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens)

	password := "secret"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userID := uuid.New()

	tests := []struct {
		name        string
		username    string
		loginPass   string
		user        *models.UserDB
		readerErr   error
		issueErr    error
		expectToken string
		wantErr     error
	}{
		{
			name:        "successful login",
			username:    "alice",
			loginPass:   password,
			user:        &models.UserDB{UserID: userID, Username: "alice", PasswordHash: string(hashed)},
			expectToken: "token123",
		},
		{
			name:      "unknown username",
			username:  "ghost",
			loginPass: password,
			user:      nil,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "wrong password",
			username:  "alice",
			loginPass: "wrongpass",
			user:      &models.UserDB{UserID: userID, Username: "alice", PasswordHash: string(hashed)},
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			username:  "alice",
			loginPass: password,
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "issue error",
			username:  "alice",
			loginPass: password,
			user:      &models.UserDB{UserID: userID, Username: "alice", PasswordHash: string(hashed)},
			issueErr:  errors.New("redis error"),
			wantErr:   errors.New("redis error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByUsername(gomock.Any(), tt.username).
				Return(tt.user, tt.readerErr)

			if tt.readerErr == nil && tt.user != nil && tt.loginPass == password {
				mockTokens.EXPECT().
					Issue(gomock.Any(), tt.user.UserID).
					Return(tt.expectToken, tt.issueErr)
			}

			token, err := svc.Login(context.Background(), tt.username, tt.loginPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectToken, token)
			}
		})
	}
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)

	mockReader.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)
	_, errUnknown := svc.Login(context.Background(), "ghost", "secret")

	mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").
		Return(&models.UserDB{UserID: uuid.New(), Username: "alice", PasswordHash: string(hashed)}, nil)
	_, errWrongPass := svc.Login(context.Background(), "alice", "wrong")

	// Unknown username and wrong password must be the same error
	assert.ErrorIs(t, errUnknown, services.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, services.ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPass)
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens)

	t.Run("success", func(t *testing.T) {
		mockTokens.EXPECT().Revoke(gomock.Any(), "sometoken").Return(nil)
		assert.NoError(t, svc.Logout(context.Background(), "sometoken"))
	})

	t.Run("revoke error", func(t *testing.T) {
		mockTokens.EXPECT().Revoke(gomock.Any(), "sometoken").Return(errors.New("redis error"))
		assert.Error(t, svc.Logout(context.Background(), "sometoken"))
	})
}

func TestAuthService_GetUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens)

	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockReader.EXPECT().GetByID(gomock.Any(), userID).
			Return(&models.UserDB{UserID: userID, Username: "alice"}, nil)

		user, err := svc.GetUser(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		user, err := svc.GetUser(context.Background(), userID)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, user)
	})

	t.Run("reader error", func(t *testing.T) {
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, errors.New("db error"))

		user, err := svc.GetUser(context.Background(), userID)
		assert.Error(t, err)
		assert.Nil(t, user)
	})
}
