package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensoryEvaluation_ComputeTotals_NoDefects(t *testing.T) {
	// Arrange: все вкусовые суб-атрибуты 8.0, дефектов нет
	eval := &SensoryEvaluation{
		AcidityFruity: 8, AcidityAcetic: 8, AcidityLactic: 8,
		FruitFresh: 8, FruitBrowned: 8, FruitCitrus: 8,
		FloralFlowers: 8, FloralHerbal: 8,
		WoodLight: 8, WoodDark: 8, WoodResin: 8,
		SpiceTobacco: 8, SpicePepper: 8, SpiceUmami: 8,
		NutKernel: 8, NutSkin: 8,
		RoastDegree: 8, RoastSmoky: 8,
	}

	// Act
	eval.ComputeTotals()

	// Assert: без дефектов общая оценка равна среднему групповых итогов
	assert.InDelta(t, 8.0, eval.OverallQuality, 0.001)
	assert.Equal(t, VerdictApproved, eval.Verdict)
	assert.Zero(t, eval.DefectsTotal)
}

func TestSensoryEvaluation_ComputeTotals_DefectsClampedToTen(t *testing.T) {
	// Arrange: сумма дефектов 16 должна быть ограничена десятью
	eval := &SensoryEvaluation{
		DefectMoldy: 4, DefectMusty: 4, DefectOverFermented: 4, DefectDirty: 4,
	}

	// Act
	eval.ComputeTotals()

	// Assert
	assert.Equal(t, 10.0, eval.DefectsTotal, "итог по дефектам ограничен [0, 10]")
	assert.Zero(t, eval.OverallQuality, "дефекты >= 7 обнуляют общую оценку")
	assert.Equal(t, VerdictDisqualified, eval.Verdict)
}

func TestSensoryEvaluation_ComputeTotals_AutoZeroAtSeven(t *testing.T) {
	// Arrange: дефекты ровно на пороге автодисквалификации
	eval := &SensoryEvaluation{
		AcidityFruity: 9, AcidityAcetic: 9, AcidityLactic: 9,
		FruitFresh: 9, FruitBrowned: 9, FruitCitrus: 9,
		FloralFlowers: 9, FloralHerbal: 9,
		WoodLight: 9, WoodDark: 9, WoodResin: 9,
		SpiceTobacco: 9, SpicePepper: 9, SpiceUmami: 9,
		NutKernel: 9, NutSkin: 9,
		RoastDegree: 9, RoastSmoky: 9,
		DefectMoldy: 7,
	}

	// Act
	eval.ComputeTotals()

	// Assert: высокие вкусовые оценки не спасают от автодисквалификации
	assert.Zero(t, eval.OverallQuality)
	assert.Equal(t, VerdictDisqualified, eval.Verdict)
}

func TestSensoryEvaluation_ComputeTotals_ProportionalPenalty(t *testing.T) {
	// Arrange: дефекты 5.0 — середина штрафного интервала [3, 7)
	eval := &SensoryEvaluation{
		AcidityFruity: 8, AcidityAcetic: 8, AcidityLactic: 8,
		FruitFresh: 8, FruitBrowned: 8, FruitCitrus: 8,
		FloralFlowers: 8, FloralHerbal: 8,
		WoodLight: 8, WoodDark: 8, WoodResin: 8,
		SpiceTobacco: 8, SpicePepper: 8, SpiceUmami: 8,
		NutKernel: 8, NutSkin: 8,
		RoastDegree: 8, RoastSmoky: 8,
		DefectMoldy: 3, DefectMusty: 2,
	}

	// Act
	eval.ComputeTotals()

	// Assert: множитель (7-5)/4 = 0.5
	assert.Equal(t, 5.0, eval.DefectsTotal)
	assert.InDelta(t, 4.0, eval.OverallQuality, 0.001)
	assert.Equal(t, VerdictApproved, eval.Verdict,
		"штраф не дисквалифицирует образец сам по себе")
}

func TestSensoryEvaluation_ComputeTotals_NoPenaltyBelowFloor(t *testing.T) {
	// Arrange: дефекты 2.9 — чуть ниже порога штрафа
	eval := &SensoryEvaluation{
		AcidityFruity: 6, AcidityAcetic: 6, AcidityLactic: 6,
		FruitFresh: 6, FruitBrowned: 6, FruitCitrus: 6,
		FloralFlowers: 6, FloralHerbal: 6,
		WoodLight: 6, WoodDark: 6, WoodResin: 6,
		SpiceTobacco: 6, SpicePepper: 6, SpiceUmami: 6,
		NutKernel: 6, NutSkin: 6,
		RoastDegree: 6, RoastSmoky: 6,
		DefectMusty: 2.9,
	}

	// Act
	eval.ComputeTotals()

	// Assert
	assert.InDelta(t, 6.0, eval.OverallQuality, 0.001, "ниже порога штраф не применяется")
	assert.Equal(t, VerdictApproved, eval.Verdict)
}

func TestSensoryEvaluation_ValidateScores(t *testing.T) {
	// Arrange
	valid := &SensoryEvaluation{AcidityFruity: 10, DefectMoldy: 0}
	invalid := &SensoryEvaluation{FruitFresh: 10.5}
	negative := &SensoryEvaluation{WoodDark: -1}

	// Act & Assert
	require.NoError(t, valid.ValidateScores())
	require.Error(t, invalid.ValidateScores(), "оценка выше 10 недопустима")
	require.Error(t, negative.ValidateScores(), "отрицательная оценка недопустима")
}

func TestFinalEvaluation_ComputeWeighted(t *testing.T) {
	// Arrange: рубрика шоколада
	weights := FinalWeights{
		Appearance: 0.10,
		Aroma:      0.20,
		Texture:    0.20,
		Flavor:     0.35,
		Aftertaste: 0.15,
	}
	eval := &FinalEvaluation{
		Appearance: 8, Aroma: 7, Texture: 9, Flavor: 8, Aftertaste: 6,
	}

	// Act
	eval.ComputeWeighted(weights)

	// Assert: 0.8 + 1.4 + 1.8 + 2.8 + 0.9 = 7.7
	assert.InDelta(t, 7.7, eval.WeightedScore, 0.001)
}

func TestJudgeAssignment_DeriveProgress(t *testing.T) {
	// Arrange & Act & Assert
	assert.Equal(t, ProgressAssigned, DeriveProgress(nil),
		"без назначений прогресс — assigned")

	assert.Equal(t, ProgressAssigned, DeriveProgress([]JudgeAssignment{
		{Status: AssignmentStatusAssigned},
		{Status: AssignmentStatusAssigned},
	}), "никто не начал — assigned")

	assert.Equal(t, ProgressEvaluating, DeriveProgress([]JudgeAssignment{
		{Status: AssignmentStatusEvaluating},
		{Status: AssignmentStatusAssigned},
	}), "один начал — evaluating")

	assert.Equal(t, ProgressEvaluating, DeriveProgress([]JudgeAssignment{
		{Status: AssignmentStatusCompleted},
		{Status: AssignmentStatusAssigned},
	}), "один закончил, но не все — evaluating")

	assert.Equal(t, ProgressEvaluated, DeriveProgress([]JudgeAssignment{
		{Status: AssignmentStatusCompleted},
		{Status: AssignmentStatusCompleted},
	}), "все закончили — evaluated")
}
