package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// AssignmentRepo реализует repository.AssignmentRepository
type AssignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo создает новый репозиторий назначений судей
func NewAssignmentRepo(db *gorm.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

func (r *AssignmentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// BulkCreate вставляет назначения одним запросом. Уже существующие пары
// (sample, judge) пропускаются через ON CONFLICT DO NOTHING — повторное
// назначение не ошибка и не дубликат. Возвращает число созданных строк.
func (r *AssignmentRepo) BulkCreate(tx *gorm.DB, assignments []entity.JudgeAssignment) (int64, error) {
	if len(assignments) == 0 {
		return 0, nil
	}
	res := r.conn(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sample_id"}, {Name: "judge_id"}},
		DoNothing: true,
	}).Create(&assignments)
	return res.RowsAffected, res.Error
}

// Get возвращает назначение пары (sample, judge)
func (r *AssignmentRepo) Get(sampleID, judgeID uint) (*entity.JudgeAssignment, error) {
	var assignment entity.JudgeAssignment
	err := r.db.Where("sample_id = ? AND judge_id = ?", sampleID, judgeID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// ListBySample возвращает все назначения образца
func (r *AssignmentRepo) ListBySample(tx *gorm.DB, sampleID uint) ([]entity.JudgeAssignment, error) {
	var assignments []entity.JudgeAssignment
	err := r.conn(tx).Where("sample_id = ?", sampleID).Order("judge_id ASC").Find(&assignments).Error
	return assignments, err
}

// ListByJudge возвращает все назначения судьи
func (r *AssignmentRepo) ListByJudge(judgeID uint) ([]entity.JudgeAssignment, error) {
	var assignments []entity.JudgeAssignment
	err := r.db.Where("judge_id = ?", judgeID).Order("created_at DESC").Find(&assignments).Error
	return assignments, err
}

// UpdateStatus меняет статус назначения пары (sample, judge)
func (r *AssignmentRepo) UpdateStatus(tx *gorm.DB, sampleID, judgeID uint, status string) error {
	res := r.conn(tx).Model(&entity.JudgeAssignment{}).
		Where("sample_id = ? AND judge_id = ?", sampleID, judgeID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
