package entity

import (
	"time"
)

// Contest представляет конкурс качества какао
type Contest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500;not null;default:''" json:"description"`
	UserID      uint      `gorm:"not null;index" json:"user_id"` // директор-владелец
	StartDate   time.Time `gorm:"type:date;not null;index" json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null" json:"end_date"`
	FinalStage  bool      `gorm:"not null;default:false" json:"final_stage"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Contest) TableName() string {
	return "contests"
}

// IsActiveOn проверяет, попадает ли дата в интервал проведения конкурса.
// Границы включительные: конкурс активен и в день старта, и в день окончания.
func (c *Contest) IsActiveOn(date time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	start := c.StartDate.Truncate(24 * time.Hour)
	end := c.EndDate.Truncate(24 * time.Hour)
	return !day.Before(start) && !day.After(end)
}
