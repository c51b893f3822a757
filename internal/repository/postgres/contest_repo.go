package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// ContestRepo реализует repository.ContestRepository
type ContestRepo struct {
	db *gorm.DB
}

// NewContestRepo создает новый репозиторий конкурсов
func NewContestRepo(db *gorm.DB) *ContestRepo {
	return &ContestRepo{db: db}
}

func (r *ContestRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create сохраняет новый конкурс внутри переданной транзакции
func (r *ContestRepo) Create(tx *gorm.DB, contest *entity.Contest) error {
	return r.conn(tx).Create(contest).Error
}

// GetByID возвращает конкурс по ID
func (r *ContestRepo) GetByID(id uint) (*entity.Contest, error) {
	var contest entity.Contest
	err := r.db.First(&contest, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &contest, nil
}

// List возвращает конкурсы с пагинацией
func (r *ContestRepo) List(limit, offset int) ([]entity.Contest, int64, error) {
	var contests []entity.Contest
	var total int64
	if err := r.db.Model(&entity.Contest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("start_date DESC").Limit(limit).Offset(offset).Find(&contests).Error
	return contests, total, err
}

// SetFinalStage включает или выключает флаг финального этапа
func (r *ContestRepo) SetFinalStage(tx *gorm.DB, id uint, enabled bool) error {
	res := r.conn(tx).Model(&entity.Contest{}).Where("id = ?", id).Update("final_stage", enabled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindActiveByOwner возвращает конкурс владельца, активный на указанную дату.
// Проверка инварианта эксклюзивности выполняется этим запросом внутри
// транзакции создания конкурса.
func (r *ContestRepo) FindActiveByOwner(tx *gorm.DB, ownerID uint, date time.Time) (*entity.Contest, error) {
	var contest entity.Contest
	day := date.Format("2006-01-02")
	err := r.conn(tx).
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", ownerID, day, day).
		First(&contest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &contest, nil
}
