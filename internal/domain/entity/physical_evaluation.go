package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Вердикты физической и сенсорной оценки
const (
	VerdictPassed       = "passed"
	VerdictDisqualified = "disqualified"
)

// PhysicalEvaluation представляет результат физической оценки образца.
// Ровно одна запись на образец; перезаписывается, пока образец находится
// в ранних статусах конвейера.
type PhysicalEvaluation struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	SampleID uint `gorm:"not null;uniqueIndex" json:"sample_id"`
	JudgeID  uint `gorm:"not null;index" json:"judge_id"` // кто провел оценку

	// Сырые измерения
	AromaMoldy        bool    `gorm:"not null;default:false" json:"aroma_moldy"`
	AromaSmoky        bool    `gorm:"not null;default:false" json:"aroma_smoky"`
	AromaChemical     bool    `gorm:"not null;default:false" json:"aroma_chemical"`
	HumidityPct       float64 `gorm:"not null;default:0" json:"humidity_pct"`
	BrokenGrainsPct   float64 `gorm:"not null;default:0" json:"broken_grains_pct"`
	ViolatedGrains    bool    `gorm:"not null;default:false" json:"violated_grains"`
	FlatGrainsPct     float64 `gorm:"not null;default:0" json:"flat_grains_pct"`
	AffectedGrains    int     `gorm:"not null;default:0" json:"affected_grains"` // зерна, пораженные насекомыми
	WellFermentedPct  float64 `gorm:"not null;default:0" json:"well_fermented_pct"`
	LightFermentedPct float64 `gorm:"not null;default:0" json:"light_fermented_pct"`
	PurplePct         float64 `gorm:"not null;default:0" json:"purple_pct"`
	SlatyPct          float64 `gorm:"not null;default:0" json:"slaty_pct"`
	InternalMoldPct   float64 `gorm:"not null;default:0" json:"internal_mold_pct"`
	OverFermentedPct  float64 `gorm:"not null;default:0" json:"over_fermented_pct"`

	// Вычисленный результат
	Verdict  string         `gorm:"size:20;not null" json:"verdict"`
	Reasons  datatypes.JSON `gorm:"type:jsonb" json:"reasons"`  // причины дисквалификации
	Warnings datatypes.JSON `gorm:"type:jsonb" json:"warnings"` // недисквалифицирующие замечания

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (PhysicalEvaluation) TableName() string {
	return "physical_evaluations"
}

// IsDisqualified проверяет, дисквалифицирован ли образец по физической оценке
func (e *PhysicalEvaluation) IsDisqualified() bool {
	return e.Verdict == VerdictDisqualified
}
