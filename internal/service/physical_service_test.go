package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/contest-api/internal/config"
	"github.com/yourusername/contest-api/internal/domain/entity"
)

// cleanMeasurements возвращает измерения, проходящие все пороги по умолчанию
func cleanMeasurements() *entity.PhysicalEvaluation {
	return &entity.PhysicalEvaluation{
		HumidityPct:      6.5,
		BrokenGrainsPct:  2.0,
		FlatGrainsPct:    5.0,
		WellFermentedPct: 70.0,
		PurplePct:        5.0,
		SlatyPct:         3.0,
		InternalMoldPct:  0.0,
		OverFermentedPct: 2.0,
	}
}

func TestApplyPhysicalRules_AllPassed(t *testing.T) {
	eval := cleanMeasurements()

	verdict, reasons, warnings := ApplyPhysicalRules(eval, config.DefaultPhysicalThresholds())

	assert.Equal(t, entity.VerdictPassed, verdict, "Чистые измерения должны проходить")
	assert.Empty(t, reasons, "Причин дисквалификации быть не должно")
	assert.Empty(t, warnings, "Замечаний быть не должно")
}

func TestApplyPhysicalRules_BrokenGrainsDisqualify(t *testing.T) {
	eval := cleanMeasurements()
	eval.BrokenGrainsPct = 12.0

	verdict, reasons, _ := ApplyPhysicalRules(eval, config.DefaultPhysicalThresholds())

	assert.Equal(t, entity.VerdictDisqualified, verdict, "Превышение доли ломаных зерен дисквалифицирует")
	assert.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "ломаных зерен")
}

func TestApplyPhysicalRules_AccumulatesAllReasons(t *testing.T) {
	// Три независимых нарушения: запах, влажность, ферментация
	eval := cleanMeasurements()
	eval.AromaMoldy = true
	eval.HumidityPct = 9.5
	eval.WellFermentedPct = 30.0

	verdict, reasons, _ := ApplyPhysicalRules(eval, config.DefaultPhysicalThresholds())

	assert.Equal(t, entity.VerdictDisqualified, verdict)
	assert.Len(t, reasons, 3, "Правила не останавливаются на первом нарушении")

	joined := strings.Join(reasons, "; ")
	assert.Contains(t, joined, "плесень")
	assert.Contains(t, joined, "влажность")
	assert.Contains(t, joined, "ферментация")
}

func TestApplyPhysicalRules_HumidityBounds(t *testing.T) {
	thresholds := config.DefaultPhysicalThresholds()

	low := cleanMeasurements()
	low.HumidityPct = 3.0
	verdict, _, _ := ApplyPhysicalRules(low, thresholds)
	assert.Equal(t, entity.VerdictDisqualified, verdict, "Влажность ниже минимума дисквалифицирует")

	edge := cleanMeasurements()
	edge.HumidityPct = thresholds.HumidityMax
	verdict, _, _ = ApplyPhysicalRules(edge, thresholds)
	assert.Equal(t, entity.VerdictPassed, verdict, "Граница интервала включительная")
}

func TestApplyPhysicalRules_FlatGrainsWarningOnly(t *testing.T) {
	eval := cleanMeasurements()
	eval.FlatGrainsPct = 20.0

	verdict, reasons, warnings := ApplyPhysicalRules(eval, config.DefaultPhysicalThresholds())

	assert.Equal(t, entity.VerdictPassed, verdict, "Плоские зерна не дисквалифицируют")
	assert.Empty(t, reasons)
	assert.Len(t, warnings, 1, "Превышение ориентира дает замечание")
	assert.Contains(t, warnings[0], "плоских зерен")
}

func TestApplyPhysicalRules_AffectedGrainsZeroTolerance(t *testing.T) {
	eval := cleanMeasurements()
	eval.AffectedGrains = 1

	verdict, reasons, _ := ApplyPhysicalRules(eval, config.DefaultPhysicalThresholds())

	assert.Equal(t, entity.VerdictDisqualified, verdict, "Пораженные зерна не допускаются вовсе")
	assert.Contains(t, reasons[0], "насекомыми")
}

func TestApplyPhysicalRules_CustomThresholds(t *testing.T) {
	// Смягченные пороги должны пропускать то, что режут пороги по умолчанию
	thresholds := config.DefaultPhysicalThresholds()
	thresholds.BrokenGrainsMax = 20.0

	eval := cleanMeasurements()
	eval.BrokenGrainsPct = 12.0

	verdict, reasons, _ := ApplyPhysicalRules(eval, thresholds)

	assert.Equal(t, entity.VerdictPassed, verdict)
	assert.Empty(t, reasons)
}
