package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// PhysicalEvaluationRepo реализует repository.PhysicalEvaluationRepository
type PhysicalEvaluationRepo struct {
	db *gorm.DB
}

// NewPhysicalEvaluationRepo создает новый репозиторий физических оценок
func NewPhysicalEvaluationRepo(db *gorm.DB) *PhysicalEvaluationRepo {
	return &PhysicalEvaluationRepo{db: db}
}

func (r *PhysicalEvaluationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Upsert вставляет или перезаписывает единственную оценку образца.
// Конфликт по sample_id означает повторную оценку — запись перезаписывается.
func (r *PhysicalEvaluationRepo) Upsert(tx *gorm.DB, eval *entity.PhysicalEvaluation) error {
	return r.conn(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sample_id"}},
		UpdateAll: true,
	}).Create(eval).Error
}

// GetBySampleID возвращает физическую оценку образца
func (r *PhysicalEvaluationRepo) GetBySampleID(sampleID uint) (*entity.PhysicalEvaluation, error) {
	var eval entity.PhysicalEvaluation
	err := r.db.Where("sample_id = ?", sampleID).First(&eval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &eval, nil
}

// SensoryEvaluationRepo реализует repository.SensoryEvaluationRepository
type SensoryEvaluationRepo struct {
	db *gorm.DB
}

// NewSensoryEvaluationRepo создает новый репозиторий сенсорных оценок
func NewSensoryEvaluationRepo(db *gorm.DB) *SensoryEvaluationRepo {
	return &SensoryEvaluationRepo{db: db}
}

func (r *SensoryEvaluationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Upsert вставляет или обновляет оценку пары (sample, judge).
// Повторная отправка судьи не создает вторую строку: конфликт по
// уникальному индексу переводит вставку в обновление.
func (r *SensoryEvaluationRepo) Upsert(tx *gorm.DB, eval *entity.SensoryEvaluation) error {
	return r.conn(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sample_id"}, {Name: "judge_id"}},
		UpdateAll: true,
	}).Create(eval).Error
}

// GetBySampleAndJudge возвращает оценку пары (sample, judge)
func (r *SensoryEvaluationRepo) GetBySampleAndJudge(sampleID, judgeID uint) (*entity.SensoryEvaluation, error) {
	var eval entity.SensoryEvaluation
	err := r.db.Where("sample_id = ? AND judge_id = ?", sampleID, judgeID).First(&eval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &eval, nil
}

// ListBySample возвращает все сенсорные оценки образца
func (r *SensoryEvaluationRepo) ListBySample(sampleID uint) ([]entity.SensoryEvaluation, error) {
	var evals []entity.SensoryEvaluation
	err := r.db.Where("sample_id = ?", sampleID).Order("judge_id ASC").Find(&evals).Error
	return evals, err
}

// Delete удаляет оценку пары (sample, judge) внутри переданной транзакции
func (r *SensoryEvaluationRepo) Delete(tx *gorm.DB, sampleID, judgeID uint) error {
	res := r.conn(tx).Where("sample_id = ? AND judge_id = ?", sampleID, judgeID).
		Delete(&entity.SensoryEvaluation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FinalEvaluationRepo реализует repository.FinalEvaluationRepository
type FinalEvaluationRepo struct {
	db *gorm.DB
}

// NewFinalEvaluationRepo создает новый репозиторий финальных оценок
func NewFinalEvaluationRepo(db *gorm.DB) *FinalEvaluationRepo {
	return &FinalEvaluationRepo{db: db}
}

func (r *FinalEvaluationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Upsert вставляет или обновляет оценку пары (sample, evaluator)
func (r *FinalEvaluationRepo) Upsert(tx *gorm.DB, eval *entity.FinalEvaluation) error {
	return r.conn(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sample_id"}, {Name: "evaluator_id"}},
		UpdateAll: true,
	}).Create(eval).Error
}

// GetBySampleAndEvaluator возвращает оценку пары (sample, evaluator)
func (r *FinalEvaluationRepo) GetBySampleAndEvaluator(sampleID, evaluatorID uint) (*entity.FinalEvaluation, error) {
	var eval entity.FinalEvaluation
	err := r.db.Where("sample_id = ? AND evaluator_id = ?", sampleID, evaluatorID).First(&eval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &eval, nil
}

// ListBySample возвращает все финальные оценки образца
func (r *FinalEvaluationRepo) ListBySample(sampleID uint) ([]entity.FinalEvaluation, error) {
	var evals []entity.FinalEvaluation
	err := r.db.Where("sample_id = ?", sampleID).Order("evaluator_id ASC").Find(&evals).Error
	return evals, err
}
