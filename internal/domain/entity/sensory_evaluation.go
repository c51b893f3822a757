package entity

import (
	"fmt"
	"math"
	"time"

	"gorm.io/datatypes"
)

// Вердикт сенсорной оценки
const (
	VerdictApproved = "approved"
)

// Пороги штрафа за дефекты (шкала 0–10):
//   - DefectAutoZero: итоговая оценка обнуляется, образец дисквалифицируется;
//   - DefectPenaltyFloor: ниже этого порога штрафа нет, в интервале
//     [floor, autozero) применяется пропорциональный штраф.
const (
	DefectAutoZero     = 7.0
	DefectPenaltyFloor = 3.0
)

// SensoryEvaluation представляет сенсорную оценку образца одним судьей.
// Пара (sample, judge) уникальна на уровне хранилища; повторная отправка
// судьей — это upsert, а не вторая строка.
type SensoryEvaluation struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	SampleID uint `gorm:"not null;index;uniqueIndex:idx_sensory_sample_judge" json:"sample_id"`
	JudgeID  uint `gorm:"not null;index;uniqueIndex:idx_sensory_sample_judge" json:"judge_id"`

	// Сырые суб-атрибуты, каждый по шкале 0–10
	AcidityFruity float64 `gorm:"not null;default:0" json:"acidity_fruity"`
	AcidityAcetic float64 `gorm:"not null;default:0" json:"acidity_acetic"`
	AcidityLactic float64 `gorm:"not null;default:0" json:"acidity_lactic"`

	FruitFresh   float64 `gorm:"not null;default:0" json:"fruit_fresh"`
	FruitBrowned float64 `gorm:"not null;default:0" json:"fruit_browned"`
	FruitCitrus  float64 `gorm:"not null;default:0" json:"fruit_citrus"`

	FloralFlowers float64 `gorm:"not null;default:0" json:"floral_flowers"`
	FloralHerbal  float64 `gorm:"not null;default:0" json:"floral_herbal"`

	WoodLight float64 `gorm:"not null;default:0" json:"wood_light"`
	WoodDark  float64 `gorm:"not null;default:0" json:"wood_dark"`
	WoodResin float64 `gorm:"not null;default:0" json:"wood_resin"`

	SpiceTobacco float64 `gorm:"not null;default:0" json:"spice_tobacco"`
	SpicePepper  float64 `gorm:"not null;default:0" json:"spice_pepper"`
	SpiceUmami   float64 `gorm:"not null;default:0" json:"spice_umami"`

	NutKernel float64 `gorm:"not null;default:0" json:"nut_kernel"`
	NutSkin   float64 `gorm:"not null;default:0" json:"nut_skin"`

	RoastDegree float64 `gorm:"not null;default:0" json:"roast_degree"`
	RoastSmoky  float64 `gorm:"not null;default:0" json:"roast_smoky"`

	// Группа дефектов
	DefectMoldy         float64 `gorm:"not null;default:0" json:"defect_moldy"`
	DefectMusty         float64 `gorm:"not null;default:0" json:"defect_musty"`
	DefectOverFermented float64 `gorm:"not null;default:0" json:"defect_over_fermented"`
	DefectDirty         float64 `gorm:"not null;default:0" json:"defect_dirty"`

	// Вычисленные групповые итоги
	AcidityTotal float64 `gorm:"not null;default:0" json:"acidity_total"`
	FruitTotal   float64 `gorm:"not null;default:0" json:"fruit_total"`
	FloralTotal  float64 `gorm:"not null;default:0" json:"floral_total"`
	WoodTotal    float64 `gorm:"not null;default:0" json:"wood_total"`
	SpiceTotal   float64 `gorm:"not null;default:0" json:"spice_total"`
	NutTotal     float64 `gorm:"not null;default:0" json:"nut_total"`
	RoastTotal   float64 `gorm:"not null;default:0" json:"roast_total"`
	DefectsTotal float64 `gorm:"not null;default:0" json:"defects_total"`

	OverallQuality float64        `gorm:"not null;default:0" json:"overall_quality"`
	Verdict        string         `gorm:"size:20;not null;default:'approved'" json:"verdict"`
	Reasons        datatypes.JSON `gorm:"type:jsonb" json:"reasons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (SensoryEvaluation) TableName() string {
	return "sensory_evaluations"
}

// ValidateScores проверяет, что все суб-атрибуты лежат в шкале 0–10
func (e *SensoryEvaluation) ValidateScores() error {
	for _, v := range e.subScores() {
		if v < 0 || v > 10 {
			return fmt.Errorf("sub-attribute score %.2f is outside [0, 10]", v)
		}
	}
	return nil
}

func (e *SensoryEvaluation) subScores() []float64 {
	return []float64{
		e.AcidityFruity, e.AcidityAcetic, e.AcidityLactic,
		e.FruitFresh, e.FruitBrowned, e.FruitCitrus,
		e.FloralFlowers, e.FloralHerbal,
		e.WoodLight, e.WoodDark, e.WoodResin,
		e.SpiceTobacco, e.SpicePepper, e.SpiceUmami,
		e.NutKernel, e.NutSkin,
		e.RoastDegree, e.RoastSmoky,
		e.DefectMoldy, e.DefectMusty, e.DefectOverFermented, e.DefectDirty,
	}
}

// ComputeTotals вычисляет групповые итоги, итог по дефектам и общую оценку.
// Групповой итог — среднее суб-атрибутов группы; итог по дефектам — сумма
// дефектных суб-атрибутов, ограниченная интервалом [0, 10].
//
// Контракт по дефектам:
//   - defects_total >= 7: общая оценка = 0, вердикт disqualified;
//   - 3 <= defects_total < 7: пропорциональный штраф, общая оценка
//     умножается на (7 - defects_total) / 4;
//   - defects_total < 3: штрафа нет.
func (e *SensoryEvaluation) ComputeTotals() {
	e.AcidityTotal = round2((e.AcidityFruity + e.AcidityAcetic + e.AcidityLactic) / 3)
	e.FruitTotal = round2((e.FruitFresh + e.FruitBrowned + e.FruitCitrus) / 3)
	e.FloralTotal = round2((e.FloralFlowers + e.FloralHerbal) / 2)
	e.WoodTotal = round2((e.WoodLight + e.WoodDark + e.WoodResin) / 3)
	e.SpiceTotal = round2((e.SpiceTobacco + e.SpicePepper + e.SpiceUmami) / 3)
	e.NutTotal = round2((e.NutKernel + e.NutSkin) / 2)
	e.RoastTotal = round2((e.RoastDegree + e.RoastSmoky) / 2)

	defectsSum := e.DefectMoldy + e.DefectMusty + e.DefectOverFermented + e.DefectDirty
	e.DefectsTotal = round2(clamp(defectsSum, 0, 10))

	raw := (e.AcidityTotal + e.FruitTotal + e.FloralTotal +
		e.WoodTotal + e.SpiceTotal + e.NutTotal + e.RoastTotal) / 7

	switch {
	case e.DefectsTotal >= DefectAutoZero:
		e.OverallQuality = 0
		e.Verdict = VerdictDisqualified
	case e.DefectsTotal >= DefectPenaltyFloor:
		e.OverallQuality = round2(raw * (DefectAutoZero - e.DefectsTotal) / (DefectAutoZero - DefectPenaltyFloor))
		e.Verdict = VerdictApproved
	default:
		e.OverallQuality = round2(raw)
		e.Verdict = VerdictApproved
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
