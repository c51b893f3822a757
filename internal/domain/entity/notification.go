package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Типы событий конвейера, порождающих уведомления
const (
	NotificationUserRegistered = "user_registered"
	NotificationSampleCreated  = "sample_created"
	NotificationStatusChanged  = "status_changed"
	NotificationPhysicalResult = "physical_result"
	NotificationJudgeAssigned  = "judge_assigned"
	NotificationSensorySaved   = "sensory_saved"
	NotificationFinalSaved     = "final_saved"
	NotificationContestCreated = "contest_created"
	NotificationFinalStage     = "final_stage"
	NotificationTopThree       = "top_three"
)

// Приоритеты уведомлений
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Notification представляет событие, адресованное одному получателю.
// Строки создаются только внутренними событиями конвейера; получатель
// может лишь пометить уведомление прочитанным или удалить его.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"` // получатель
	Type      string         `gorm:"size:30;not null" json:"type"`
	Priority  string         `gorm:"size:10;not null;default:'normal'" json:"priority"`
	Title     string         `gorm:"size:150;not null" json:"title"`
	Message   string         `gorm:"size:500;not null" json:"message"`
	Detail    datatypes.JSON `gorm:"type:jsonb" json:"detail,omitempty"`
	SampleID  *uint          `gorm:"index" json:"sample_id,omitempty"`
	ContestID *uint          `gorm:"index" json:"contest_id,omitempty"`
	IsRead    bool           `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Notification) TableName() string {
	return "notifications"
}
