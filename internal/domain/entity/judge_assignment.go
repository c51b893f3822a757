package entity

import (
	"time"
)

// Статусы назначения судьи на образец
const (
	AssignmentStatusAssigned   = "assigned"
	AssignmentStatusEvaluating = "evaluating"
	AssignmentStatusCompleted  = "completed"
)

// Агрегатный прогресс оценки образца, производный от его назначений
const (
	ProgressAssigned   = "assigned"
	ProgressEvaluating = "evaluating"
	ProgressEvaluated  = "evaluated"
)

// JudgeAssignment связывает судью с образцом. Пара (sample, judge) уникальна;
// статус назначения живет независимо от статуса самого образца.
type JudgeAssignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SampleID  uint      `gorm:"not null;index;uniqueIndex:idx_sample_judge" json:"sample_id"`
	JudgeID   uint      `gorm:"not null;index;uniqueIndex:idx_sample_judge" json:"judge_id"`
	Status    string    `gorm:"size:20;not null;default:'assigned'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (JudgeAssignment) TableName() string {
	return "judge_assignments"
}

// DeriveProgress вычисляет агрегатный прогресс оценки по списку назначений.
// Прогресс нигде не хранится — он всегда выводится из текущих строк:
//   - assigned: ни один судья не начал работу;
//   - evaluating: хотя бы один начал или закончил, но не все закончили;
//   - evaluated: все назначенные судьи завершили оценку.
func DeriveProgress(assignments []JudgeAssignment) string {
	if len(assignments) == 0 {
		return ProgressAssigned
	}
	completed := 0
	started := 0
	for _, a := range assignments {
		switch a.Status {
		case AssignmentStatusCompleted:
			completed++
			started++
		case AssignmentStatusEvaluating:
			started++
		}
	}
	if completed == len(assignments) {
		return ProgressEvaluated
	}
	if started > 0 {
		return ProgressEvaluating
	}
	return ProgressAssigned
}
