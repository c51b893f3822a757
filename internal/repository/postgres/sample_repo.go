package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// SampleRepo реализует repository.SampleRepository
type SampleRepo struct {
	db *gorm.DB
}

// NewSampleRepo создает новый репозиторий образцов
func NewSampleRepo(db *gorm.DB) *SampleRepo {
	return &SampleRepo{db: db}
}

func (r *SampleRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create сохраняет новый образец
func (r *SampleRepo) Create(tx *gorm.DB, sample *entity.Sample) error {
	return r.conn(tx).Create(sample).Error
}

// GetByID возвращает образец по ID
func (r *SampleRepo) GetByID(id uint) (*entity.Sample, error) {
	var sample entity.Sample
	err := r.db.First(&sample, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &sample, nil
}

// GetByIDForUpdate возвращает образец с блокировкой строки (SELECT ... FOR UPDATE).
// Используется сервисами, которые проверяют легальность перехода статуса
// и записывают новый статус в одной транзакции.
func (r *SampleRepo) GetByIDForUpdate(tx *gorm.DB, id uint) (*entity.Sample, error) {
	var sample entity.Sample
	err := r.conn(tx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&sample, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &sample, nil
}

// GetByTrackingCode возвращает образец по публичному коду отслеживания
func (r *SampleRepo) GetByTrackingCode(code string) (*entity.Sample, error) {
	var sample entity.Sample
	err := r.db.Where("tracking_code = ?", code).First(&sample).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &sample, nil
}

// Update сохраняет изменения образца
func (r *SampleRepo) Update(tx *gorm.DB, sample *entity.Sample) error {
	return r.conn(tx).Save(sample).Error
}

// UpdateStatus меняет статус образца. Легальность перехода проверяет сервис.
func (r *SampleRepo) UpdateStatus(tx *gorm.DB, id uint, status string) error {
	res := r.conn(tx).Model(&entity.Sample{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListByContest возвращает образцы конкурса с пагинацией
func (r *SampleRepo) ListByContest(contestID uint, limit, offset int) ([]entity.Sample, int64, error) {
	var samples []entity.Sample
	var total int64
	if err := r.db.Model(&entity.Sample{}).Where("contest_id = ?", contestID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Where("contest_id = ?", contestID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&samples).Error
	return samples, total, err
}

// ListByOwner возвращает образцы участника с пагинацией
func (r *SampleRepo) ListByOwner(ownerID uint, limit, offset int) ([]entity.Sample, int64, error) {
	var samples []entity.Sample
	var total int64
	if err := r.db.Model(&entity.Sample{}).Where("user_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&samples).Error
	return samples, total, err
}
