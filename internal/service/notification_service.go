package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/domain/repository"
	"github.com/yourusername/contest-api/internal/websocket"
)

// NotificationService реализует фановт уведомлений конвейера.
// Вставка строк выполняется строго внутри транзакции породившей записи:
// если запись не прошла — уведомлений нет; если вставка уведомлений не
// прошла — откатывается и породившая запись. Доставка (WebSocket, почта) —
// побочный эффект ПОСЛЕ коммита, строки в БД остаются источником истины.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	hub              *websocket.Hub
	email            EmailSender
}

// NewNotificationService создает новый сервис уведомлений
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	hub *websocket.Hub,
	email EmailSender,
) *NotificationService {
	if email == nil {
		email = &NoopEmailSender{}
	}
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		hub:              hub,
		email:            email,
	}
}

// NotifyUser вставляет уведомление одному получателю внутри переданной
// транзакции и возвращает вставленные строки для последующей публикации.
func (s *NotificationService) NotifyUser(tx *gorm.DB, n entity.Notification) ([]entity.Notification, error) {
	batch := []entity.Notification{n}
	if err := s.notificationRepo.CreateBatch(tx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// NotifyRole вставляет уведомление каждому пользователю с указанной ролью.
// Шаблон клонируется по получателям; вставка — одной пачкой в транзакции.
func (s *NotificationService) NotifyRole(tx *gorm.DB, role string, template entity.Notification) ([]entity.Notification, error) {
	ids, err := s.userRepo.GetIDsByRole(role)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	batch := make([]entity.Notification, 0, len(ids))
	for _, id := range ids {
		n := template
		n.UserID = id
		batch = append(batch, n)
	}
	if err := s.notificationRepo.CreateBatch(tx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Publish доставляет уже закоммиченные уведомления: пуш в WebSocket всем,
// письмо — только для высокого приоритета. Ошибки доставки логируются и
// не влияют на результат операции.
func (s *NotificationService) Publish(batch []entity.Notification) {
	for i := range batch {
		n := batch[i]
		if s.hub != nil {
			s.hub.SendToUser(n.UserID, websocket.Event{Type: "notification", Data: n})
		}
		if n.Priority == entity.PriorityHigh {
			go s.sendEmail(n)
		}
	}
}

func (s *NotificationService) sendEmail(n entity.Notification) {
	user, err := s.userRepo.GetByID(n.UserID)
	if err != nil {
		log.Printf("[NotificationService] Не удалось получить получателя #%d для письма: %v", n.UserID, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.email.SendNotification(ctx, user.Email, n.Title, n.Message); err != nil {
		log.Printf("[NotificationService] Ошибка отправки письма пользователю #%d: %v", n.UserID, err)
	}
}

// List возвращает уведомления получателя с пагинацией
func (s *NotificationService) List(userID uint, onlyUnread bool, page, pageSize int) ([]entity.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize
	return s.notificationRepo.ListByUser(userID, onlyUnread, pageSize, offset)
}

// MarkRead помечает уведомление прочитанным от имени получателя
func (s *NotificationService) MarkRead(id, userID uint) error {
	return s.notificationRepo.MarkRead(id, userID)
}

// MarkAllRead помечает прочитанными все уведомления получателя
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}

// Delete удаляет уведомление от имени получателя
func (s *NotificationService) Delete(id, userID uint) error {
	return s.notificationRepo.Delete(id, userID)
}

// detailJSON сериализует структурированные детали уведомления.
// Ошибка сериализации деталей не должна валить транзакцию конвейера.
func detailJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[NotificationService] Ошибка сериализации деталей уведомления: %v", err)
		return nil
	}
	return datatypes.JSON(data)
}
