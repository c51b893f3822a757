package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	// GetIDsByRole возвращает идентификаторы всех пользователей с указанной ролью.
	// Используется для широковещательной рассылки уведомлений по роли.
	GetIDsByRole(role string) ([]uint, error)
	List(limit, offset int) ([]entity.User, error)
}
