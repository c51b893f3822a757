package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/yourusername/contest-api/internal/handler/dto"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service"
)

// SampleHandler обрабатывает запросы, связанные с образцами
type SampleHandler struct {
	sampleService *service.SampleService
}

// NewSampleHandler создает новый обработчик образцов
func NewSampleHandler(sampleService *service.SampleService) *SampleHandler {
	return &SampleHandler{sampleService: sampleService}
}

// CreateSampleRequest представляет запрос на создание черновика образца
type CreateSampleRequest struct {
	ContestID uint           `json:"contest_id" binding:"required"`
	Kind      string         `json:"kind" binding:"required"`
	Name      string         `json:"name" binding:"omitempty,max=100"`
	Details   datatypes.JSON `json:"details"`
}

// CreateSample создает черновик образца участника
func (h *SampleHandler) CreateSample(c *gin.Context) {
	var req CreateSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint)

	sample, err := h.sampleService.CreateSample(userID, req.ContestID, req.Kind, req.Name, req.Details)
	if err != nil {
		h.handleSampleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSampleResponse(sample, ""))
}

// UpdateSampleRequest представляет запрос на правку черновика
type UpdateSampleRequest struct {
	Name    string         `json:"name" binding:"omitempty,max=100"`
	Details datatypes.JSON `json:"details"`
}

// UpdateSample обновляет черновик образца
func (h *SampleHandler) UpdateSample(c *gin.Context) {
	var req UpdateSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sampleID := c.MustGet("sampleID").(uint)
	userID := c.MustGet("user_id").(uint)

	sample, err := h.sampleService.UpdateDraft(sampleID, userID, req.Name, req.Details)
	if err != nil {
		h.handleSampleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSampleResponse(sample, ""))
}

// SubmitSample отправляет черновик на конкурс
func (h *SampleHandler) SubmitSample(c *gin.Context) {
	sampleID := c.MustGet("sampleID").(uint)
	userID := c.MustGet("user_id").(uint)

	sample, err := h.sampleService.Submit(sampleID, userID)
	if err != nil {
		h.handleSampleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSampleResponse(sample, ""))
}

// ReceiveSample фиксирует физическое поступление образца
func (h *SampleHandler) ReceiveSample(c *gin.Context) {
	sampleID := c.MustGet("sampleID").(uint)

	sample, err := h.sampleService.Receive(sampleID)
	if err != nil {
		h.handleSampleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSampleResponse(sample, ""))
}

// GetSample возвращает образец с производным прогрессом оценки
func (h *SampleHandler) GetSample(c *gin.Context) {
	sampleID := c.MustGet("sampleID").(uint)

	sample, progress, err := h.sampleService.GetByID(sampleID)
	if err != nil {
		h.handleSampleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSampleResponse(sample, progress))
}

// TrackSample возвращает публичный статус образца по коду отслеживания.
// Эндпоинт доступен без аутентификации.
func (h *SampleHandler) TrackSample(c *gin.Context) {
	code := c.Param("code")

	status, err := h.sampleService.TrackByCode(code)
	if err != nil {
		h.handleSampleError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// ListContestSamples возвращает образцы конкурса
func (h *SampleHandler) ListContestSamples(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	samples, total, err := h.sampleService.ListByContest(contestID, page, perPage)
	if err != nil {
		h.handleSampleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedSamplesResponse(samples, total, page, perPage))
}

// ListMySamples возвращает образцы текущего участника
func (h *SampleHandler) ListMySamples(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	samples, total, err := h.sampleService.ListByOwner(userID, page, perPage)
	if err != nil {
		h.handleSampleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedSamplesResponse(samples, total, page, perPage))
}

// handleSampleError обрабатывает ошибки сервиса образцов
func (h *SampleHandler) handleSampleError(c *gin.Context, err error) {
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
		log.Printf("ERROR: Internal server error in SampleHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
