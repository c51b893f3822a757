package repository

import (
	"github.com/yourusername/contest-api/internal/domain/entity"
	"gorm.io/gorm"
)

// NotificationRepository определяет методы для работы с уведомлениями
type NotificationRepository interface {
	// CreateBatch вставляет строки уведомлений внутри переданной транзакции.
	// Вставка вне транзакции конвейера запрещена контрактом фановта.
	CreateBatch(tx *gorm.DB, notifications []entity.Notification) error
	ListByUser(userID uint, onlyUnread bool, limit, offset int) ([]entity.Notification, int64, error)
	// MarkRead помечает уведомление прочитанным; выполняется только от имени получателя.
	MarkRead(id, userID uint) error
	MarkAllRead(userID uint) error
	// Delete удаляет уведомление; выполняется только от имени получателя.
	Delete(id, userID uint) error
}
