package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
	"gorm.io/gorm"
)

// TopResultRepository определяет методы для работы с материализованным рейтингом
type TopResultRepository interface {
	// Rebuild полностью перестраивает рейтинг конкурса внутри переданной
	// транзакции: delete-all, затем один INSERT ... SELECT с оконными
	// функциями. Частичной перезаписи не бывает.
	Rebuild(tx *gorm.DB, contestID uint, topN int) error
	GetByContest(contestID uint) ([]entity.TopResult, error)
	// GetTopSamples возвращает образцы, занимающие первые limit мест.
	GetTopSamples(tx *gorm.DB, contestID uint, limit int) ([]entity.TopResult, error)
}
