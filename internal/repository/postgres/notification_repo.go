package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
)

// NotificationRepo реализует repository.NotificationRepository
type NotificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo создает новый репозиторий уведомлений
func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// CreateBatch вставляет строки уведомлений внутри переданной транзакции.
// Ошибка вставки обязана откатить транзакцию вызывающего — вставка вне
// транзакции конвейера запрещена контрактом фановта.
func (r *NotificationRepo) CreateBatch(tx *gorm.DB, notifications []entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return tx.Create(&notifications).Error
}

// ListByUser возвращает уведомления получателя с пагинацией
func (r *NotificationRepo) ListByUser(userID uint, onlyUnread bool, limit, offset int) ([]entity.Notification, int64, error) {
	var notifications []entity.Notification
	var total int64

	query := r.db.Model(&entity.Notification{}).Where("user_id = ?", userID)
	if onlyUnread {
		query = query.Where("is_read = false")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, total, err
}

// MarkRead помечает уведомление прочитанным. Фильтр по user_id гарантирует,
// что изменять уведомление может только его получатель.
func (r *NotificationRepo) MarkRead(id, userID uint) error {
	res := r.db.Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": gorm.Expr("NOW()")})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkAllRead помечает прочитанными все уведомления получателя
func (r *NotificationRepo) MarkAllRead(userID uint) error {
	return r.db.Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": gorm.Expr("NOW()")}).Error
}

// Delete удаляет уведомление. Фильтр по user_id — только получатель.
func (r *NotificationRepo) Delete(id, userID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
