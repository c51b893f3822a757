package entity

import (
	"time"
)

// TopResult представляет строку материализованного рейтинга конкурса.
// Таблица полностью перестраивается при каждой записи сенсорной оценки;
// инвариант: не более N строк на конкурс, ранги непрерывны начиная с 1.
type TopResult struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ContestID        uint      `gorm:"not null;index;uniqueIndex:idx_top_contest_sample" json:"contest_id"`
	SampleID         uint      `gorm:"not null;uniqueIndex:idx_top_contest_sample" json:"sample_id"`
	AverageScore     float64   `gorm:"not null;default:0" json:"average_score"`
	EvaluationsCount int       `gorm:"not null;default:0" json:"evaluations_count"`
	LastEvaluatedAt  time.Time `gorm:"not null" json:"last_evaluated_at"`
	Rank             int       `gorm:"not null;default:0;index:idx_top_contest_rank" json:"rank"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (TopResult) TableName() string {
	return "top_results"
}
