package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
	"gorm.io/gorm"
)

// AssignmentRepository определяет методы для работы с назначениями судей
type AssignmentRepository interface {
	// BulkCreate вставляет назначения, молча пропуская уже существующие
	// пары (sample, judge). Возвращает число реально созданных строк.
	BulkCreate(tx *gorm.DB, assignments []entity.JudgeAssignment) (int64, error)
	Get(sampleID, judgeID uint) (*entity.JudgeAssignment, error)
	// ListBySample читает назначения через tx, если она передана:
	// проверка "все судьи завершили" обязана видеть строки, записанные
	// в той же транзакции.
	ListBySample(tx *gorm.DB, sampleID uint) ([]entity.JudgeAssignment, error)
	ListByJudge(judgeID uint) ([]entity.JudgeAssignment, error)
	UpdateStatus(tx *gorm.DB, sampleID, judgeID uint, status string) error
}
