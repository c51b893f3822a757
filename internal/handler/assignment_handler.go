package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service"
)

// AssignmentHandler обрабатывает запросы назначения судей
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler создает новый обработчик назначений
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// AssignJudgesRequest представляет запрос на массовое назначение судей
type AssignJudgesRequest struct {
	SampleIDs []uint `json:"sample_ids" binding:"required,min=1"`
	JudgeIDs  []uint `json:"judge_ids" binding:"required,min=1"`
}

// AssignJudges массово назначает судей на одобренные образцы
func (h *AssignmentHandler) AssignJudges(c *gin.Context) {
	var req AssignJudgesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.assignmentService.AssignJudges(req.SampleIDs, req.JudgeIDs)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": created})
}

// ListMyAssignments возвращает назначения текущего судьи
func (h *AssignmentHandler) ListMyAssignments(c *gin.Context) {
	judgeID := c.MustGet("user_id").(uint)

	assignments, err := h.assignmentService.ListByJudge(judgeID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

// StartEvaluation помечает назначение взятым в работу
func (h *AssignmentHandler) StartEvaluation(c *gin.Context) {
	sampleID := c.MustGet("sampleID").(uint)
	judgeID := c.MustGet("user_id").(uint)

	if err := h.assignmentService.StartEvaluation(sampleID, judgeID); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Evaluation started"})
}

// GetProgress возвращает производный прогресс оценки образца
func (h *AssignmentHandler) GetProgress(c *gin.Context) {
	sampleID := c.MustGet("sampleID").(uint)

	progress, assignments, err := h.assignmentService.Progress(sampleID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"progress":    progress,
		"assignments": assignments,
	})
}

// handleAssignmentError обрабатывает ошибки сервиса назначений
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in AssignmentHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
