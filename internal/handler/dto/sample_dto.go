package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/yourusername/contest-api/internal/domain/entity"
)

// SampleResponse представляет образец вместе с производным прогрессом оценки
type SampleResponse struct {
	ID           uint           `json:"id"`
	ContestID    uint           `json:"contest_id"`
	UserID       uint           `json:"user_id"`
	Kind         string         `json:"kind"`
	Name         string         `json:"name"`
	TrackingCode string         `json:"tracking_code,omitempty"`
	Status       string         `json:"status"`
	Progress     string         `json:"progress,omitempty"` // агрегат по назначениям судей
	Details      datatypes.JSON `json:"details,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewSampleResponse строит ответ из сущности образца
func NewSampleResponse(sample *entity.Sample, progress string) *SampleResponse {
	return &SampleResponse{
		ID:           sample.ID,
		ContestID:    sample.ContestID,
		UserID:       sample.UserID,
		Kind:         sample.Kind,
		Name:         sample.Name,
		TrackingCode: sample.TrackingCodeValue(),
		Status:       sample.Status,
		Progress:     progress,
		Details:      sample.Details,
		CreatedAt:    sample.CreatedAt,
		UpdatedAt:    sample.UpdatedAt,
	}
}

// PaginatedSamplesResponse представляет пагинированный список образцов
type PaginatedSamplesResponse struct {
	Samples []*SampleResponse `json:"samples"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}

// NewPaginatedSamplesResponse строит пагинированный ответ
func NewPaginatedSamplesResponse(samples []entity.Sample, total int64, page, perPage int) *PaginatedSamplesResponse {
	items := make([]*SampleResponse, 0, len(samples))
	for i := range samples {
		items = append(items, NewSampleResponse(&samples[i], ""))
	}
	return &PaginatedSamplesResponse{
		Samples: items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}
