package entity

import (
	"fmt"
	"time"
)

// FinalWeights задает веса атрибутов взвешенной рубрики финального этапа.
// Набор весов свой для каждого вида продукции; сумма весов равна 1.
type FinalWeights struct {
	Appearance float64 `mapstructure:"appearance" json:"appearance"`
	Aroma      float64 `mapstructure:"aroma" json:"aroma"`
	Texture    float64 `mapstructure:"texture" json:"texture"`
	Flavor     float64 `mapstructure:"flavor" json:"flavor"`
	Aftertaste float64 `mapstructure:"aftertaste" json:"aftertaste"`
}

// FinalEvaluation представляет оценку финального этапа конкурса.
// Пара (sample, evaluator) уникальна — та же дисциплина, что и у
// сенсорной оценки.
type FinalEvaluation struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	SampleID    uint `gorm:"not null;index;uniqueIndex:idx_final_sample_evaluator" json:"sample_id"`
	EvaluatorID uint `gorm:"not null;index;uniqueIndex:idx_final_sample_evaluator" json:"evaluator_id"`

	Appearance float64 `gorm:"not null;default:0" json:"appearance"`
	Aroma      float64 `gorm:"not null;default:0" json:"aroma"`
	Texture    float64 `gorm:"not null;default:0" json:"texture"`
	Flavor     float64 `gorm:"not null;default:0" json:"flavor"`
	Aftertaste float64 `gorm:"not null;default:0" json:"aftertaste"`

	WeightedScore float64 `gorm:"not null;default:0" json:"weighted_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (FinalEvaluation) TableName() string {
	return "final_evaluations"
}

// ValidateScores проверяет, что все атрибуты лежат в шкале 0–10
func (e *FinalEvaluation) ValidateScores() error {
	for _, v := range []float64{e.Appearance, e.Aroma, e.Texture, e.Flavor, e.Aftertaste} {
		if v < 0 || v > 10 {
			return fmt.Errorf("attribute score %.2f is outside [0, 10]", v)
		}
	}
	return nil
}

// ComputeWeighted вычисляет взвешенную итоговую оценку по переданным весам
func (e *FinalEvaluation) ComputeWeighted(w FinalWeights) {
	e.WeightedScore = round2(e.Appearance*w.Appearance +
		e.Aroma*w.Aroma +
		e.Texture*w.Texture +
		e.Flavor*w.Flavor +
		e.Aftertaste*w.Aftertaste)
}
