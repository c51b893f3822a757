package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service"
)

// EvaluationHandler обрабатывает запросы физической, сенсорной и финальной оценки
type EvaluationHandler struct {
	physicalService *service.PhysicalService
	sensoryService  *service.SensoryService
	finalService    *service.FinalService
}

// NewEvaluationHandler создает новый обработчик оценок
func NewEvaluationHandler(
	physicalService *service.PhysicalService,
	sensoryService *service.SensoryService,
	finalService *service.FinalService,
) *EvaluationHandler {
	return &EvaluationHandler{
		physicalService: physicalService,
		sensoryService:  sensoryService,
		finalService:    finalService,
	}
}

// PhysicalEvaluationRequest представляет измерения физической оценки
type PhysicalEvaluationRequest struct {
	AromaMoldy        bool    `json:"aroma_moldy"`
	AromaSmoky        bool    `json:"aroma_smoky"`
	AromaChemical     bool    `json:"aroma_chemical"`
	HumidityPct       float64 `json:"humidity_pct" binding:"min=0,max=100"`
	BrokenGrainsPct   float64 `json:"broken_grains_pct" binding:"min=0,max=100"`
	ViolatedGrains    bool    `json:"violated_grains"`
	FlatGrainsPct     float64 `json:"flat_grains_pct" binding:"min=0,max=100"`
	AffectedGrains    int     `json:"affected_grains" binding:"min=0"`
	WellFermentedPct  float64 `json:"well_fermented_pct" binding:"min=0,max=100"`
	LightFermentedPct float64 `json:"light_fermented_pct" binding:"min=0,max=100"`
	PurplePct         float64 `json:"purple_pct" binding:"min=0,max=100"`
	SlatyPct          float64 `json:"slaty_pct" binding:"min=0,max=100"`
	InternalMoldPct   float64 `json:"internal_mold_pct" binding:"min=0,max=100"`
	OverFermentedPct  float64 `json:"over_fermented_pct" binding:"min=0,max=100"`
}

// SubmitPhysical сохраняет физическую оценку образца
func (h *EvaluationHandler) SubmitPhysical(c *gin.Context) {
	var req PhysicalEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sampleID := c.MustGet("sampleID").(uint)
	judgeID := c.MustGet("user_id").(uint)

	eval := &entity.PhysicalEvaluation{
		SampleID:          sampleID,
		AromaMoldy:        req.AromaMoldy,
		AromaSmoky:        req.AromaSmoky,
		AromaChemical:     req.AromaChemical,
		HumidityPct:       req.HumidityPct,
		BrokenGrainsPct:   req.BrokenGrainsPct,
		ViolatedGrains:    req.ViolatedGrains,
		FlatGrainsPct:     req.FlatGrainsPct,
		AffectedGrains:    req.AffectedGrains,
		WellFermentedPct:  req.WellFermentedPct,
		LightFermentedPct: req.LightFermentedPct,
		PurplePct:         req.PurplePct,
		SlatyPct:          req.SlatyPct,
		InternalMoldPct:   req.InternalMoldPct,
		OverFermentedPct:  req.OverFermentedPct,
	}

	result, err := h.physicalService.SubmitEvaluation(judgeID, eval)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPhysical возвращает физическую оценку образца
func (h *EvaluationHandler) GetPhysical(c *gin.Context) {
	sampleID := c.MustGet("sampleID").(uint)

	eval, err := h.physicalService.GetBySample(sampleID)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	c.JSON(http.StatusOK, eval)
}

// SensoryEvaluationRequest представляет суб-атрибуты сенсорной оценки (шкала 0–10)
type SensoryEvaluationRequest struct {
	AcidityFruity float64 `json:"acidity_fruity" binding:"min=0,max=10"`
	AcidityAcetic float64 `json:"acidity_acetic" binding:"min=0,max=10"`
	AcidityLactic float64 `json:"acidity_lactic" binding:"min=0,max=10"`

	FruitFresh   float64 `json:"fruit_fresh" binding:"min=0,max=10"`
	FruitBrowned float64 `json:"fruit_browned" binding:"min=0,max=10"`
	FruitCitrus  float64 `json:"fruit_citrus" binding:"min=0,max=10"`

	FloralFlowers float64 `json:"floral_flowers" binding:"min=0,max=10"`
	FloralHerbal  float64 `json:"floral_herbal" binding:"min=0,max=10"`

	WoodLight float64 `json:"wood_light" binding:"min=0,max=10"`
	WoodDark  float64 `json:"wood_dark" binding:"min=0,max=10"`
	WoodResin float64 `json:"wood_resin" binding:"min=0,max=10"`

	SpiceTobacco float64 `json:"spice_tobacco" binding:"min=0,max=10"`
	SpicePepper  float64 `json:"spice_pepper" binding:"min=0,max=10"`
	SpiceUmami   float64 `json:"spice_umami" binding:"min=0,max=10"`

	NutKernel float64 `json:"nut_kernel" binding:"min=0,max=10"`
	NutSkin   float64 `json:"nut_skin" binding:"min=0,max=10"`

	RoastDegree float64 `json:"roast_degree" binding:"min=0,max=10"`
	RoastSmoky  float64 `json:"roast_smoky" binding:"min=0,max=10"`

	DefectMoldy         float64 `json:"defect_moldy" binding:"min=0,max=10"`
	DefectMusty         float64 `json:"defect_musty" binding:"min=0,max=10"`
	DefectOverFermented float64 `json:"defect_over_fermented" binding:"min=0,max=10"`
	DefectDirty         float64 `json:"defect_dirty" binding:"min=0,max=10"`
}

// SubmitSensory сохраняет сенсорную оценку судьи.
// Итоговые баллы и вердикт вычисляет сервер, клиентские значения игнорируются.
func (h *EvaluationHandler) SubmitSensory(c *gin.Context) {
	var req SensoryEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sampleID := c.MustGet("sampleID").(uint)
	judgeID := c.MustGet("user_id").(uint)

	eval := &entity.SensoryEvaluation{
		SampleID:            sampleID,
		AcidityFruity:       req.AcidityFruity,
		AcidityAcetic:       req.AcidityAcetic,
		AcidityLactic:       req.AcidityLactic,
		FruitFresh:          req.FruitFresh,
		FruitBrowned:        req.FruitBrowned,
		FruitCitrus:         req.FruitCitrus,
		FloralFlowers:       req.FloralFlowers,
		FloralHerbal:        req.FloralHerbal,
		WoodLight:           req.WoodLight,
		WoodDark:            req.WoodDark,
		WoodResin:           req.WoodResin,
		SpiceTobacco:        req.SpiceTobacco,
		SpicePepper:         req.SpicePepper,
		SpiceUmami:          req.SpiceUmami,
		NutKernel:           req.NutKernel,
		NutSkin:             req.NutSkin,
		RoastDegree:         req.RoastDegree,
		RoastSmoky:          req.RoastSmoky,
		DefectMoldy:         req.DefectMoldy,
		DefectMusty:         req.DefectMusty,
		DefectOverFermented: req.DefectOverFermented,
		DefectDirty:         req.DefectDirty,
	}

	result, err := h.sensoryService.SubmitEvaluation(judgeID, eval)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMySensory возвращает сенсорную оценку текущего судьи по образцу
func (h *EvaluationHandler) GetMySensory(c *gin.Context) {
	sampleID := c.MustGet("sampleID").(uint)
	judgeID := c.MustGet("user_id").(uint)

	eval, err := h.sensoryService.GetBySampleAndJudge(sampleID, judgeID)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	c.JSON(http.StatusOK, eval)
}

// ListSensory возвращает все сенсорные оценки образца
func (h *EvaluationHandler) ListSensory(c *gin.Context) {
	sampleID := c.MustGet("sampleID").(uint)

	evals, err := h.sensoryService.ListBySample(sampleID)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"evaluations": evals})
}

// DeleteSensory удаляет сенсорную оценку текущего судьи
func (h *EvaluationHandler) DeleteSensory(c *gin.Context) {
	sampleID := c.MustGet("sampleID").(uint)
	judgeID := c.MustGet("user_id").(uint)

	if err := h.sensoryService.DeleteEvaluation(judgeID, sampleID); err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Evaluation deleted"})
}

// FinalEvaluationRequest представляет атрибуты финальной рубрики (шкала 0–10)
type FinalEvaluationRequest struct {
	Appearance float64 `json:"appearance" binding:"min=0,max=10"`
	Aroma      float64 `json:"aroma" binding:"min=0,max=10"`
	Texture    float64 `json:"texture" binding:"min=0,max=10"`
	Flavor     float64 `json:"flavor" binding:"min=0,max=10"`
	Aftertaste float64 `json:"aftertaste" binding:"min=0,max=10"`
}

// SubmitFinal сохраняет финальную оценку по взвешенной рубрике
func (h *EvaluationHandler) SubmitFinal(c *gin.Context) {
	var req FinalEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sampleID := c.MustGet("sampleID").(uint)
	evaluatorID := c.MustGet("user_id").(uint)

	eval := &entity.FinalEvaluation{
		SampleID:   sampleID,
		Appearance: req.Appearance,
		Aroma:      req.Aroma,
		Texture:    req.Texture,
		Flavor:     req.Flavor,
		Aftertaste: req.Aftertaste,
	}

	result, err := h.finalService.SubmitEvaluation(evaluatorID, eval)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListFinal возвращает финальные оценки образца
func (h *EvaluationHandler) ListFinal(c *gin.Context) {
	sampleID := c.MustGet("sampleID").(uint)

	evals, err := h.finalService.ListBySample(sampleID)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"evaluations": evals})
}

// handleEvaluationError обрабатывает ошибки сервисов оценки
func (h *EvaluationHandler) handleEvaluationError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrInvalidTransition) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in EvaluationHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
