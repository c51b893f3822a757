package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service"
)

// RankingHandler обрабатывает запросы рейтинга конкурса
type RankingHandler struct {
	rankingService *service.RankingService
}

// NewRankingHandler создает новый обработчик рейтинга
func NewRankingHandler(rankingService *service.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

// GetRanking возвращает рейтинг конкурса, упорядоченный по рангу
func (h *RankingHandler) GetRanking(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	results, err := h.rankingService.GetRanking(contestID)
	if err != nil {
		h.handleRankingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ExportRankingCSV отдает рейтинг конкурса файлом CSV
func (h *RankingHandler) ExportRankingCSV(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	results, err := h.rankingService.GetRanking(contestID)
	if err != nil {
		h.handleRankingError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"contest_%d_ranking.csv\"", contestID))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Место", "ID образца", "Средняя оценка", "Оценок", "Последняя оценка"})

	for _, r := range results {
		writer.Write([]string{
			strconv.Itoa(r.Rank),
			strconv.FormatUint(uint64(r.SampleID), 10),
			fmt.Sprintf("%.2f", r.AverageScore),
			strconv.Itoa(r.EvaluationsCount),
			r.LastEvaluatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// ExportRankingXLSX отдает рейтинг конкурса файлом Excel
func (h *RankingHandler) ExportRankingXLSX(c *gin.Context) {
	contestID := c.MustGet("contestID").(uint)

	results, err := h.rankingService.GetRanking(contestID)
	if err != nil {
		h.handleRankingError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"contest_%d_ranking.xlsx\"", contestID))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Рейтинг"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[RankingHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Место", "ID образца", "Средняя оценка", "Оценок", "Последняя оценка"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[RankingHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range results {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			r.Rank,
			r.SampleID,
			r.AverageScore,
			r.EvaluationsCount,
			r.LastEvaluatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[RankingHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[RankingHandler] Ошибка завершения StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		return
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[RankingHandler] Ошибка отправки файла: %v", err)
	}
}

// handleRankingError обрабатывает ошибки сервиса рейтинга
func (h *RankingHandler) handleRankingError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in RankingHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
