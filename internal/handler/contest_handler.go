package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service"
)

// ContestHandler обрабатывает запросы, связанные с конкурсами
type ContestHandler struct {
	contestService *service.ContestService
}

// NewContestHandler создает новый обработчик конкурсов
func NewContestHandler(contestService *service.ContestService) *ContestHandler {
	return &ContestHandler{contestService: contestService}
}

// CreateContestRequest представляет запрос на создание конкурса
type CreateContestRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	StartDate   string `json:"start_date" binding:"required"` // формат 2006-01-02
	EndDate     string `json:"end_date" binding:"required"`
}

// CreateContest обрабатывает запрос на создание конкурса
func (h *ContestHandler) CreateContest(c *gin.Context) {
	var req CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be in format YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be in format YYYY-MM-DD"})
		return
	}

	userID := c.MustGet("user_id").(uint)

	contest, err := h.contestService.CreateContest(userID, req.Name, req.Description, startDate, endDate)
	if err != nil {
		h.handleContestError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contest)
}

// GetContest возвращает информацию о конкурсе
func (h *ContestHandler) GetContest(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	contest, err := h.contestService.GetByID(contestID)
	if err != nil {
		h.handleContestError(c, err)
		return
	}

	c.JSON(http.StatusOK, contest)
}

// ListContests возвращает список конкурсов с пагинацией
func (h *ContestHandler) ListContests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	contests, total, err := h.contestService.List(page, perPage)
	if err != nil {
		h.handleContestError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contests": contests,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// OpenFinalStage открывает финальный этап конкурса
func (h *ContestHandler) OpenFinalStage(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)
	userID := c.MustGet("user_id").(uint)

	contest, err := h.contestService.OpenFinalStage(contestID, userID)
	if err != nil {
		h.handleContestError(c, err)
		return
	}

	c.JSON(http.StatusOK, contest)
}

// handleContestError обрабатывает ошибки сервиса конкурсов
func (h *ContestHandler) handleContestError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrDirectorActive) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in ContestHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
