package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
	"gorm.io/gorm"
)

// SampleRepository определяет методы для работы с образцами
type SampleRepository interface {
	Create(tx *gorm.DB, sample *entity.Sample) error
	GetByID(id uint) (*entity.Sample, error)
	GetByIDForUpdate(tx *gorm.DB, id uint) (*entity.Sample, error)
	GetByTrackingCode(code string) (*entity.Sample, error)
	Update(tx *gorm.DB, sample *entity.Sample) error
	// UpdateStatus меняет только статус; легальность перехода проверяет сервис.
	UpdateStatus(tx *gorm.DB, id uint, status string) error
	ListByContest(contestID uint, limit, offset int) ([]entity.Sample, int64, error)
	ListByOwner(ownerID uint, limit, offset int) ([]entity.Sample, int64, error)
}
