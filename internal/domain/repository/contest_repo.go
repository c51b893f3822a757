package repository

import (
	"time"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"gorm.io/gorm"
)

// ContestRepository определяет методы для работы с конкурсами
type ContestRepository interface {
	Create(tx *gorm.DB, contest *entity.Contest) error
	GetByID(id uint) (*entity.Contest, error)
	List(limit, offset int) ([]entity.Contest, int64, error)
	SetFinalStage(tx *gorm.DB, id uint, enabled bool) error
	// FindActiveByOwner возвращает конкурс владельца, чей интервал дат
	// содержит указанную дату, либо apperrors.ErrNotFound.
	FindActiveByOwner(tx *gorm.DB, ownerID uint, date time.Time) (*entity.Contest, error)
}
