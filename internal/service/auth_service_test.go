package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/pkg/auth"
)

func newTestAuthService(userRepo *MockUserRepository) *AuthService {
	jwtService, _ := auth.NewJWTService("test-secret-key", 1)
	return NewAuthService(userRepo, jwtService, nil, nil)
}

func TestAuthService_Login_ValidCredentials(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	plainPassword := "correctPassword123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	user := &entity.User{
		ID:       1,
		Username: "director",
		Email:    "director@example.com",
		Password: string(hashed),
		Role:     entity.RoleDirector,
	}
	mockUserRepo.On("GetByEmail", "director@example.com").Return(user, nil)

	svc := newTestAuthService(mockUserRepo)

	// Act
	token, loggedIn, err := svc.Login("Director@example.com", plainPassword)

	// Assert
	require.NoError(t, err, "Вход с верными учетными данными должен быть успешным")
	assert.NotEmpty(t, token, "Должен быть выдан JWT")
	assert.Equal(t, user.ID, loggedIn.ID)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("rightPassword"), bcrypt.DefaultCost)
	user := &entity.User{ID: 1, Email: "user@example.com", Password: string(hashed)}
	mockUserRepo.On("GetByEmail", "user@example.com").Return(user, nil)

	svc := newTestAuthService(mockUserRepo)

	// Act
	token, loggedIn, err := svc.Login("user@example.com", "wrongPassword")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Empty(t, token)
	assert.Nil(t, loggedIn)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	svc := newTestAuthService(mockUserRepo)

	// Act
	_, _, err := svc.Login("ghost@example.com", "password123")

	// Assert: неизвестный email неотличим от неверного пароля
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	existing := &entity.User{ID: 1, Email: "existing@example.com"}
	mockUserRepo.On("GetByEmail", "existing@example.com").Return(existing, nil)

	svc := newTestAuthService(mockUserRepo)

	// Act
	user, err := svc.Register("newuser", "existing@example.com", "password123", "Peru")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict, "Повторная регистрация email запрещена")
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc := newTestAuthService(nil)

	user, err := svc.Register("user", "user@example.com", "short", "Peru")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, user)
}

func TestAuthService_CreateUserWithRole_UnknownRole(t *testing.T) {
	svc := newTestAuthService(nil)

	user, err := svc.CreateUserWithRole("user", "user@example.com", "password123", "Peru", "owner")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, user)
}
