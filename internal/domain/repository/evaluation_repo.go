package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
	"gorm.io/gorm"
)

// PhysicalEvaluationRepository определяет методы для работы с физическими оценками
type PhysicalEvaluationRepository interface {
	// Upsert вставляет или перезаписывает единственную оценку образца.
	Upsert(tx *gorm.DB, eval *entity.PhysicalEvaluation) error
	GetBySampleID(sampleID uint) (*entity.PhysicalEvaluation, error)
}

// SensoryEvaluationRepository определяет методы для работы с сенсорными оценками
type SensoryEvaluationRepository interface {
	// Upsert вставляет или обновляет оценку пары (sample, judge).
	// Уникальность пары обеспечивается ограничением на уровне хранилища.
	Upsert(tx *gorm.DB, eval *entity.SensoryEvaluation) error
	GetBySampleAndJudge(sampleID, judgeID uint) (*entity.SensoryEvaluation, error)
	ListBySample(sampleID uint) ([]entity.SensoryEvaluation, error)
	Delete(tx *gorm.DB, sampleID, judgeID uint) error
}

// FinalEvaluationRepository определяет методы для работы с финальными оценками
type FinalEvaluationRepository interface {
	Upsert(tx *gorm.DB, eval *entity.FinalEvaluation) error
	GetBySampleAndEvaluator(sampleID, evaluatorID uint) (*entity.FinalEvaluation, error)
	ListBySample(sampleID uint) ([]entity.FinalEvaluation, error)
}
