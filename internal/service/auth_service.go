package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/pkg/auth"
)

// AuthService реализует регистрацию и аутентификацию пользователей
type AuthService struct {
	userRepo        repository.UserRepository
	jwtService      *auth.JWTService
	notificationSvc *NotificationService
	db              *gorm.DB
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	notificationSvc *NotificationService,
	db *gorm.DB,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		jwtService:      jwtService,
		notificationSvc: notificationSvc,
		db:              db,
	}
}

// Register регистрирует нового пользователя. Публичная регистрация создает
// участника; роли director и judge выдает только администратор через
// CreateUserWithRole. Пароль хешируется хуком GORM на сущности.
func (s *AuthService) Register(username, email, password, country string) (*entity.User, error) {
	return s.createUser(username, email, password, country, entity.RoleParticipant)
}

// CreateUserWithRole создает пользователя с указанной ролью (операция администратора)
func (s *AuthService) CreateUserWithRole(username, email, password, country, role string) (*entity.User, error) {
	switch role {
	case entity.RoleAdmin, entity.RoleDirector, entity.RoleJudge, entity.RoleParticipant:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	return s.createUser(username, email, password, country, role)
}

func (s *AuthService) createUser(username, email, password, country, role string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", apperrors.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: email is already registered", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: username is already taken", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: password,
		Country:  strings.TrimSpace(country),
		Role:     role,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during Register transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Create(user).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	pending, err := s.notificationSvc.NotifyUser(tx, entity.Notification{
		UserID:   user.ID,
		Type:     entity.NotificationUserRegistered,
		Priority: entity.PriorityNormal,
		Title:    "Добро пожаловать",
		Message:  fmt.Sprintf("Аккаунт %s создан. Роль: %s.", user.Username, user.Role),
	})
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.notificationSvc.Publish(pending)
	return user, nil
}

// Login проверяет учетные данные и выдает JWT
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, apperrors.ErrUnauthorized
		}
		return "", nil, err
	}
	if !user.CheckPassword(password) {
		return "", nil, apperrors.ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetProfile возвращает профиль пользователя
func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}
